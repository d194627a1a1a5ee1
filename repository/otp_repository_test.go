package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"roopshree-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestOtp(orderID uuid.UUID, code string, expiresAt time.Time) *models.OrderOtp {
	return &models.OrderOtp{
		ID:        uuid.New(),
		OrderID:   orderID,
		Otp:       code,
		ExpiresAt: expiresAt,
		CreatedBy: uuid.New(),
	}
}

func TestOtpReplaceKeepsOneRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()
	orderID := uuid.New()
	expiry := time.Now().Add(5 * time.Minute)

	require.NoError(t, repo.Replace(ctx, db, newTestOtp(orderID, "1111", expiry)))
	require.NoError(t, repo.Replace(ctx, db, newTestOtp(orderID, "2222", expiry)))

	var count int64
	require.NoError(t, db.Model(&models.OrderOtp{}).Where("order_id = ?", orderID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	otp, err := repo.FindByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "2222", otp.Otp)
}

func TestOtpDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()
	orderID := uuid.New()

	require.NoError(t, repo.Replace(ctx, db, newTestOtp(orderID, "1111", time.Now().Add(time.Minute))))
	require.NoError(t, repo.Delete(ctx, db, orderID))

	_, err := repo.FindByOrderID(ctx, orderID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestOtpDeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOtpRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Replace(ctx, db, newTestOtp(uuid.New(), "1111", now.Add(-time.Minute))))
	require.NoError(t, repo.Replace(ctx, db, newTestOtp(uuid.New(), "2222", now.Add(-time.Second))))
	live := newTestOtp(uuid.New(), "3333", now.Add(time.Minute))
	require.NoError(t, repo.Replace(ctx, db, live))

	deleted, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	otp, err := repo.FindByOrderID(ctx, live.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "3333", otp.Otp)
}
