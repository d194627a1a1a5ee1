package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/models"
	"roopshree-backend/repository"
	"roopshree-backend/sender"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const otpLength = 4

// OtpService implements the delivery-confirmation handshake: the assigned
// agent requests a code, the customer receives it by mail, and the agent
// proves the handover happened by presenting it back.
type OtpService struct {
	db        *gorm.DB
	otpRepo   repository.OtpRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	email     sender.EmailSender
	ttl       time.Duration
	log       *zap.Logger

	// now is swappable in tests
	now func() time.Time
}

func NewOtpService(
	db *gorm.DB,
	otpRepo repository.OtpRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	email sender.EmailSender,
	ttl time.Duration,
	log *zap.Logger,
) *OtpService {
	return &OtpService{
		db:        db,
		otpRepo:   otpRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		email:     email,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
	}
}

// Request issues a fresh code for the order, replacing any previous one, and
// mails it to the customer. Only the assigned delivery agent may call it, and
// only while the order is out for delivery.
//
// The customer's email is checked before anything is written. If the send
// itself fails after commit, the row is kept: the code is still valid and the
// agent can retry, which simply regenerates it.
func (s *OtpService) Request(ctx context.Context, orderID uuid.UUID, actor models.Identity) (*models.OrderOtp, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}

	if order.DeliveryBoyID == nil || *order.DeliveryBoyID != actor.UserID {
		return nil, apperrors.Forbidden("Only the assigned delivery agent can request a code")
	}
	if order.Status != models.OrderOutOfDelivery {
		return nil, apperrors.InvalidState("Order is not out for delivery")
	}

	customer, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Customer not found")
		}
		return nil, apperrors.Internal(err)
	}
	if customer.Email == "" {
		return nil, apperrors.DeliveryFailure("Customer has no email on file", nil)
	}

	otp := &models.OrderOtp{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Otp:       GenerateRandomCode(otpLength),
		ExpiresAt: s.now().Add(s.ttl),
		CreatedBy: actor.UserID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.otpRepo.Replace(ctx, tx, otp)
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	subject, body := sender.BuildDeliveryOtpEmail(otp.Otp)
	if _, err := s.email.SendEmail(ctx, customer.Email, subject, body); err != nil {
		s.log.Error("Delivery OTP email failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, apperrors.DeliveryFailure("Failed to send the confirmation code", err)
	}

	return otp, nil
}

// Verify checks the presented code and, on match, completes the order and
// burns the code in one transaction.
func (s *OtpService) Verify(ctx context.Context, orderID uuid.UUID, code string, actor models.Identity) (*models.Order, error) {
	// Lazy housekeeping before every verification.
	s.DeleteExpired(ctx)

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}

	if order.DeliveryBoyID == nil || *order.DeliveryBoyID != actor.UserID {
		return nil, apperrors.Forbidden("Only the assigned delivery agent can verify a code")
	}

	otp, err := s.otpRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No active code for this order")
		}
		return nil, apperrors.Internal(err)
	}

	// The sweep normally clears stale codes, but never trust ordering:
	// re-check expiry against the clock before accepting anything.
	if !s.now().Before(otp.ExpiresAt) {
		return nil, apperrors.NotFound("No active code for this order")
	}

	if otp.Otp != code {
		return nil, apperrors.InvalidInput("Incorrect code")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if locked.Status != models.OrderOutOfDelivery {
			return apperrors.InvalidState("Order is not out for delivery")
		}

		locked.Status = models.OrderDelivered
		if err := s.orderRepo.Save(ctx, tx, locked); err != nil {
			return err
		}
		order = locked

		return s.otpRepo.Delete(ctx, tx, orderID)
	})
	if err != nil {
		return nil, wrapServiceErr(err)
	}

	return order, nil
}

// DeleteExpired sweeps stale codes. Best-effort: failures are logged, never
// surfaced to the caller of the triggering operation.
func (s *OtpService) DeleteExpired(ctx context.Context) {
	deleted, err := s.otpRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		s.log.Warn("OTP expiry sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.log.Info("Expired OTPs removed", zap.Int64("count", deleted))
	}
}

// GenerateRandomCode returns a numeric code of the given length.
func GenerateRandomCode(length int) string {
	code := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// Fallback to 0 in the unlikely event of entropy failure
			code += "0"
			continue
		}
		code += n.String()
	}
	return code
}
