package repository

import (
	"context"
	"time"

	"roopshree-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpRepository manages durable delivery-confirmation codes. An order has at
// most one live code; Replace enforces that inside the caller's transaction.
type OtpRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.OrderOtp, error)
	Replace(ctx context.Context, tx *gorm.DB, otp *models.OrderOtp) error
	Delete(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type GormOtpRepository struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &GormOtpRepository{db: db}
}

func (r *GormOtpRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.OrderOtp, error) {
	var otp models.OrderOtp
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

// Replace removes any existing code for the order and inserts the new one.
// Must run inside tx so concurrent requests cannot leave two live codes.
func (r *GormOtpRepository) Replace(ctx context.Context, tx *gorm.DB, otp *models.OrderOtp) error {
	if err := tx.WithContext(ctx).
		Where("order_id = ?", otp.OrderID).
		Delete(&models.OrderOtp{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(otp).Error
}

func (r *GormOtpRepository) Delete(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) error {
	return tx.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderOtp{}).Error
}

// DeleteExpired sweeps every code past its expiry, system-wide.
func (r *GormOtpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.OrderOtp{})
	return res.RowsAffected, res.Error
}
