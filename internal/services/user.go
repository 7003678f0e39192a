package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopbay/storefront-platform/internal/config"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	repository "github.com/shopbay/storefront-platform/internal/repositories"
	"github.com/shopbay/storefront-platform/pkg/sendgrid"
	"golang.org/x/crypto/bcrypt"
)

// UserService adapts the identity flows into the uniform result shape and
// keeps provider details (bcrypt, JWT, SendGrid) out of the handlers.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.ProfileResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}

type userService struct {
	repo         repository.UserRepository
	rateLimiter  repository.RateLimitRepository
	emailService sendgrid.EmailService
	security     config.Security
	baseURL      string
}

func NewUserService(repo repository.UserRepository, rateLimiter repository.RateLimitRepository, emailService sendgrid.EmailService, security config.Security, baseURL string) UserService {
	return &userService{
		repo:         repo,
		rateLimiter:  rateLimiter,
		emailService: emailService,
		security:     security,
		baseURL:      baseURL,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, appErrors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {

		if repository.IsUniqueViolation(err) {
			return nil, appErrors.DuplicateEntryError("Email already registered")
		}

		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	// Verification email delivery is best effort; the account exists either
	// way and the user can ask for a resend.
	if err := s.sendVerificationEmail(ctx, user); err != nil {
		slog.Warn("Failed to send verification email",
			slog.String("userId", user.ID.String()), slog.String("error", err.Error()))
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	tokenString, err := s.issueToken(user, models.TokenPurposeSession, s.security.TokenTTL)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(s.security.TokenTTL.Seconds()),
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*models.ProfileResponse, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("User not found").WithError(err)
	}

	return &models.ProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.IsEmailVerified(),
		CreatedAt:     user.CreatedAt,
	}, nil
}

// VerifyEmail validates a purpose-scoped token and stamps the verification
// timestamp. Verifying an already-verified account succeeds.
func (s *userService) VerifyEmail(ctx context.Context, token string) error {

	claims := &models.Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return []byte(s.security.JWTKey), nil
	})

	if err != nil || !parsed.Valid || claims.Purpose != models.TokenPurposeVerifyEmail {
		return appErrors.UnauthorizedError("Invalid or expired verification token")
	}

	if err := s.repo.MarkEmailVerified(ctx, claims.UserID); err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("User not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to verify email").WithError(err)
	}

	return nil
}

func (s *userService) ResendVerification(ctx context.Context, email string) error {

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return appErrors.NotFoundError("No account found for this email").WithError(err)
	}

	if user.IsEmailVerified() {
		return appErrors.BadRequestError("Email is already verified")
	}

	if err := s.sendVerificationEmail(ctx, user); err != nil {
		return appErrors.ThirdPartyError("Failed to send verification email").WithError(err)
	}

	return nil
}

func (s *userService) sendVerificationEmail(ctx context.Context, user *models.User) error {

	token, err := s.issueToken(user, models.TokenPurposeVerifyEmail, s.security.VerificationTokenTTL)
	if err != nil {
		return err
	}

	verifyURL := fmt.Sprintf("%s/api/v1/users/verify-email?token=%s", s.baseURL, token)

	return s.emailService.SendVerificationEmail(ctx, user.Email, user.Name, verifyURL)
}

func (s *userService) issueToken(user *models.User, purpose string, ttl time.Duration) (string, error) {

	claims := &models.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.security.JWTKey))
}
