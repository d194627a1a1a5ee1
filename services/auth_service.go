package services

import (
	"context"
	"errors"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/models"
	"roopshree-backend/repository"
	"roopshree-backend/sender"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const signupCodeLength = 6

// AuthService handles registration, login and email verification.
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      *TokenService
	signupCodes *SignupCache
	email       sender.EmailSender
	log         *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens *TokenService,
	signupCodes *SignupCache,
	email sender.EmailSender,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		signupCodes: signupCodes,
		email:       email,
		log:         log,
	}
}

// Register creates an unverified account and mails a verification code. The
// code lives in the in-process cache, not the database.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, apperrors.InvalidInput("Name and email are required")
	}
	if len(password) < 8 {
		return nil, apperrors.InvalidInput("Password must be at least 8 characters long")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("Email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		ID:            uuid.New(),
		Email:         email,
		Name:          name,
		Password:      string(hashedPassword),
		Role:          models.RoleUser,
		EmailVerified: false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	code := GenerateRandomCode(signupCodeLength)
	s.signupCodes.Put(email, code)

	subject, body := sender.BuildVerificationEmail(code)
	if _, err := s.email.SendEmail(ctx, email, subject, body); err != nil {
		// Account exists; the user can request a fresh code.
		s.log.Error("Verification email failed", zap.String("email", email), zap.Error(err))
		return nil, apperrors.DeliveryFailure("Failed to send verification email", err)
	}

	return user, nil
}

// VerifyEmail consumes the signup code and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal(err)
	}

	if !s.signupCodes.Consume(email, code) {
		return apperrors.InvalidInput("Invalid or expired verification code")
	}

	user.EmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ResendVerification issues a fresh signup code for an unverified account.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal(err)
	}
	if user.EmailVerified {
		return apperrors.InvalidState("Email is already verified")
	}

	code := GenerateRandomCode(signupCodeLength)
	s.signupCodes.Put(email, code)

	subject, body := sender.BuildVerificationEmail(code)
	if _, err := s.email.SendEmail(ctx, email, subject, body); err != nil {
		return apperrors.DeliveryFailure("Failed to send verification email", err)
	}
	return nil
}

// Login checks credentials and returns a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthenticated("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthenticated("Invalid email or password")
	}

	if !user.EmailVerified {
		return nil, apperrors.Forbidden("Email not verified")
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID.String(), user.Name, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return nil, apperrors.Unauthenticated("Invalid refresh token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, apperrors.Unauthenticated("Invalid refresh token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apperrors.Unauthenticated("Invalid refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Unauthenticated("User not found")
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID.String(), user.Name, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return pair, nil
}
