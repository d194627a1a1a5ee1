package repository

import (
	"context"

	"roopshree-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository covers the small back-office surfaces: banners, offers,
// wishlist entries and addresses.
type CatalogRepository interface {
	ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	CreateBanner(ctx context.Context, banner *models.Banner) error
	DeleteBanner(ctx context.Context, id uuid.UUID) error

	ListOffers(ctx context.Context, activeOnly bool) ([]models.Offer, error)
	CreateOffer(ctx context.Context, offer *models.Offer) error
	DeleteOffer(ctx context.Context, id uuid.UUID) error

	ListWishlist(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
	AddWishlist(ctx context.Context, entry *models.Wishlist) error
	RemoveWishlist(ctx context.Context, userID, productID uuid.UUID) error

	ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	FindAddress(ctx context.Context, id, userID uuid.UUID) (*models.Address, error)
	CreateAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, id, userID uuid.UUID) error
}

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	var banners []models.Banner
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *GormCatalogRepository) CreateBanner(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *GormCatalogRepository) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Banner{}, id)
}

func (r *GormCatalogRepository) ListOffers(ctx context.Context, activeOnly bool) ([]models.Offer, error) {
	var offers []models.Offer
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *GormCatalogRepository) CreateOffer(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *GormCatalogRepository) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Offer{}, id)
}

func (r *GormCatalogRepository) ListWishlist(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormCatalogRepository) AddWishlist(ctx context.Context, entry *models.Wishlist) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormCatalogRepository) RemoveWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormCatalogRepository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *GormCatalogRepository) FindAddress(ctx context.Context, id, userID uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *GormCatalogRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *GormCatalogRepository) DeleteAddress(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByID(db *gorm.DB, model interface{}, id uuid.UUID) error {
	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
