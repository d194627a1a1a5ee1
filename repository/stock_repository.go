package repository

import (
	"context"

	"roopshree-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockRepository defines data access for the stock ledger. Mutations that
// must be atomic with other writes take the caller's transaction handle.
type StockRepository interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*models.Stock, error)
	FindByProductIDForUpdate(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*models.Stock, error)
	Create(ctx context.Context, tx *gorm.DB, stock *models.Stock) error
	Save(ctx context.Context, tx *gorm.DB, stock *models.Stock) error
	AppendHistory(ctx context.Context, tx *gorm.DB, row *models.StockHistory) error
	HistoryByProductID(ctx context.Context, productID uuid.UUID) ([]models.StockHistory, error)
}

type GormStockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*models.Stock, error) {
	var stock models.Stock
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// FindByProductIDForUpdate locks the stock row for the duration of tx so
// concurrent adjustments to the same product serialize instead of losing
// updates.
func (r *GormStockRepository) FindByProductIDForUpdate(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*models.Stock, error) {
	var stock models.Stock
	if err := forUpdate(tx.WithContext(ctx)).
		Where("product_id = ?", productID).
		First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *GormStockRepository) Create(ctx context.Context, tx *gorm.DB, stock *models.Stock) error {
	return tx.WithContext(ctx).Create(stock).Error
}

func (r *GormStockRepository) Save(ctx context.Context, tx *gorm.DB, stock *models.Stock) error {
	return tx.WithContext(ctx).Save(stock).Error
}

func (r *GormStockRepository) AppendHistory(ctx context.Context, tx *gorm.DB, row *models.StockHistory) error {
	return tx.WithContext(ctx).Create(row).Error
}

func (r *GormStockRepository) HistoryByProductID(ctx context.Context, productID uuid.UUID) ([]models.StockHistory, error) {
	var rows []models.StockHistory
	if err := r.db.WithContext(ctx).
		Joins("JOIN stocks ON stocks.id = stock_histories.stock_id").
		Where("stocks.product_id = ?", productID).
		Order("stock_histories.created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
