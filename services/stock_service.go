package services

import (
	"context"
	"errors"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/models"
	"roopshree-backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the inventory ledger: it owns the current quantity per
// product and the append-only history of every change.
type StockService struct {
	db        *gorm.DB
	stockRepo repository.StockRepository
}

func NewStockService(db *gorm.DB, stockRepo repository.StockRepository) *StockService {
	return &StockService{db: db, stockRepo: stockRepo}
}

// Create binds a stock record to a product and seeds the first history row.
// Fails with Conflict when the product already has one.
func (s *StockService) Create(ctx context.Context, productID uuid.UUID, initialQuantity int, actorID uuid.UUID) (*models.Stock, error) {
	if initialQuantity < 0 {
		return nil, apperrors.InvalidInput("Initial quantity cannot be negative")
	}

	var stock *models.Stock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.stockRepo.FindByProductIDForUpdate(ctx, tx, productID); err == nil {
			return apperrors.Conflict("Stock already exists for this product")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		stock = &models.Stock{
			ID:           uuid.New(),
			ProductID:    productID,
			CurrentStock: initialQuantity,
		}
		if err := s.stockRepo.Create(ctx, tx, stock); err != nil {
			return err
		}

		actor := actorID
		return s.stockRepo.AppendHistory(ctx, tx, &models.StockHistory{
			ID:           uuid.New(),
			StockID:      stock.ID,
			FromQuantity: 0,
			ToQuantity:   initialQuantity,
			UpdatedBy:    &actor,
		})
	})
	if err != nil {
		return nil, wrapServiceErr(err)
	}
	return stock, nil
}

// Adjust sets the current quantity and records who changed it. The read,
// write and history append run in one transaction under a row lock.
func (s *StockService) Adjust(ctx context.Context, productID uuid.UUID, newQuantity int, actorID uuid.UUID) (*models.Stock, error) {
	if newQuantity < 0 {
		return nil, apperrors.InvalidInput("Stock quantity cannot be negative")
	}

	var stock *models.Stock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		stock, err = s.stockRepo.FindByProductIDForUpdate(ctx, tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("No stock record for this product")
			}
			return err
		}

		if stock.CurrentStock == newQuantity {
			return apperrors.InvalidInput("New quantity equals current stock")
		}

		old := stock.CurrentStock
		stock.CurrentStock = newQuantity
		if err := s.stockRepo.Save(ctx, tx, stock); err != nil {
			return err
		}

		actor := actorID
		return s.stockRepo.AppendHistory(ctx, tx, &models.StockHistory{
			ID:           uuid.New(),
			StockID:      stock.ID,
			FromQuantity: old,
			ToQuantity:   newQuantity,
			UpdatedBy:    &actor,
		})
	})
	if err != nil {
		return nil, wrapServiceErr(err)
	}
	return stock, nil
}

// Restock increments stock inside the caller's transaction. Used only by
// order cancellation; the history row carries no actor because the change is
// system-initiated.
func (s *StockService) Restock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, amount int) error {
	if amount <= 0 {
		return apperrors.InvalidInput("Restock amount must be positive")
	}

	stock, err := s.stockRepo.FindByProductIDForUpdate(ctx, tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("No stock record for this product")
		}
		return err
	}

	old := stock.CurrentStock
	stock.CurrentStock = old + amount
	if err := s.stockRepo.Save(ctx, tx, stock); err != nil {
		return err
	}

	return s.stockRepo.AppendHistory(ctx, tx, &models.StockHistory{
		ID:           uuid.New(),
		StockID:      stock.ID,
		FromQuantity: old,
		ToQuantity:   stock.CurrentStock,
	})
}

// Get returns the current stock record for a product.
func (s *StockService) Get(ctx context.Context, productID uuid.UUID) (*models.Stock, error) {
	stock, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No stock record for this product")
		}
		return nil, apperrors.Internal(err)
	}
	return stock, nil
}

// History returns the full adjustment ledger for a product, oldest first.
func (s *StockService) History(ctx context.Context, productID uuid.UUID) ([]models.StockHistory, error) {
	if _, err := s.stockRepo.FindByProductID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No stock record for this product")
		}
		return nil, apperrors.Internal(err)
	}

	rows, err := s.stockRepo.HistoryByProductID(ctx, productID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return rows, nil
}

// wrapServiceErr passes application errors through and wraps everything else
// as Internal so persistence details never reach the client.
func wrapServiceErr(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Internal(err)
}
