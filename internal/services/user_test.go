package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/shopbay/storefront-platform/internal/config"
	appErrors "github.com/shopbay/storefront-platform/internal/errors"
	"github.com/shopbay/storefront-platform/internal/models"
	"github.com/shopbay/storefront-platform/internal/repositories/mocks"
	service "github.com/shopbay/storefront-platform/internal/services"
	sendgridpkg "github.com/shopbay/storefront-platform/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type emailServiceMock struct {
	mock.Mock
}

func (m *emailServiceMock) Send(ctx context.Context, msg *sendgridpkg.Message) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

func (m *emailServiceMock) SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error {
	args := m.Called(ctx, to, name, verifyURL)

	return args.Error(0)
}

func (m *emailServiceMock) GetSendGridClient() *sendgrid.Client {
	return nil
}

var testSecurity = config.Security{
	JWTKey:               "test-signing-key",
	TokenTTL:             24 * time.Hour,
	VerificationTokenTTL: 48 * time.Hour,
}

const testBaseURL = "http://localhost:8080"

func setupUserServiceTest(t *testing.T) (service.UserService, *mocks.UserRepository, *mocks.RateLimitRepository, *emailServiceMock) {
	t.Helper()

	repo := &mocks.UserRepository{}
	rateLimiter := &mocks.RateLimitRepository{}
	emailService := &emailServiceMock{}

	userService := service.NewUserService(repo, rateLimiter, emailService, testSecurity, testBaseURL)
	require.NotNil(t, userService, "NewUserService should return a non-nil service")

	return userService, repo, rateLimiter, emailService
}

func issueTestToken(t *testing.T, userID uuid.UUID, purpose string, ttl time.Duration) string {
	t.Helper()

	claims := &models.Claims{
		UserID:  userID,
		Email:   "ada@example.com",
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecurity.JWTKey))
	require.NoError(t, err)

	return token
}

func TestUserService_Register(t *testing.T) {
	ctx := t.Context()
	req := &models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret!"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, repo, _, emailService := setupUserServiceTest(t)

		repo.On("GetUserByEmail", ctx, req.Email).Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*models.User)
				user.ID = uuid.New()
			}).
			Return(nil).Once()
		emailService.On("SendVerificationEmail", ctx, req.Email, req.Name, mock.AnythingOfType("string")).Return(nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, req.Email, user.Email)
		assert.NotEqual(t, req.Password, user.Password, "Password must be stored hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)))
		repo.AssertExpectations(t)
		emailService.AssertExpectations(t)
	})

	t.Run("Success - Email Delivery Failure Does Not Fail Registration", func(t *testing.T) {
		// Arrange
		userService, repo, _, emailService := setupUserServiceTest(t)

		repo.On("GetUserByEmail", ctx, req.Email).Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()
		emailService.On("SendVerificationEmail", ctx, req.Email, req.Name, mock.AnythingOfType("string")).
			Return(errors.New("sendgrid unavailable")).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		require.NoError(t, err, "Verification email delivery is best effort")
		require.NotNil(t, user)
		repo.AssertExpectations(t)
		emailService.AssertExpectations(t)
	})

	t.Run("Failure - Email Already Registered", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)

		repo.On("GetUserByEmail", ctx, req.Email).Return(&models.User{ID: uuid.New(), Email: req.Email}, nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		dbError := errors.New("database insertion error")

		repo.On("GetUserByEmail", ctx, req.Email).Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(dbError).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		repo.AssertExpectations(t)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := t.Context()
	req := &models.LoginRequest{Email: "ada@example.com", Password: "s3cret!"}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:       uuid.New(),
		Name:     "Ada",
		Email:    req.Email,
		Password: string(hashed),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, repo, rateLimiter, _ := setupUserServiceTest(t)

		rateLimiter.On("CheckLoginRateLimit", ctx, req.Email).Return(true, 4, 0, nil).Once()
		repo.On("GetUserByEmail", ctx, req.Email).Return(storedUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, int((24 * time.Hour).Seconds()), resp.ExpiresIn)

		claims := &models.Claims{}
		parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
			return []byte(testSecurity.JWTKey), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, storedUser.ID, claims.UserID)
		assert.Equal(t, models.TokenPurposeSession, claims.Purpose, "Login tokens carry the session purpose")
		repo.AssertExpectations(t)
		rateLimiter.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		userService, repo, rateLimiter, _ := setupUserServiceTest(t)

		rateLimiter.On("CheckLoginRateLimit", ctx, req.Email).Return(true, 3, 0, nil).Once()
		repo.On("GetUserByEmail", ctx, req.Email).Return(storedUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: req.Email, Password: "wrong"})

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
		assert.Equal(t, 3, resp.RemainingTries)
		assert.Empty(t, resp.Token)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Email Gets The Same Message", func(t *testing.T) {
		// Arrange
		userService, repo, rateLimiter, _ := setupUserServiceTest(t)

		rateLimiter.On("CheckLoginRateLimit", ctx, "ghost@example.com").Return(true, 4, 0, nil).Once()
		repo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message, "Unknown emails and wrong passwords are indistinguishable")
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userService, repo, rateLimiter, _ := setupUserServiceTest(t)

		rateLimiter.On("CheckLoginRateLimit", ctx, req.Email).Return(false, 0, 300, nil).Once()

		// Act
		resp, err := userService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 300, resp.RetryAfter)
		repo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
		rateLimiter.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limiter Error", func(t *testing.T) {
		// Arrange
		userService, _, rateLimiter, _ := setupUserServiceTest(t)

		rateLimiter.On("CheckLoginRateLimit", ctx, req.Email).Return(false, 0, 0, errors.New("redis unavailable")).Once()

		// Act
		resp, err := userService.Login(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
		rateLimiter.AssertExpectations(t)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		verifiedAt := time.Now().Add(-time.Hour)

		repo.On("GetUserByID", ctx, userID).Return(&models.User{
			ID:              userID,
			Name:            "Ada",
			Email:           "ada@example.com",
			EmailVerifiedAt: &verifiedAt,
			CreatedAt:       time.Now().Add(-24 * time.Hour),
		}, nil).Once()

		// Act
		profile, err := userService.GetProfile(ctx, userID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, userID, profile.ID)
		assert.True(t, profile.EmailVerified)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		repo.On("GetUserByID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		profile, err := userService.GetProfile(ctx, userID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, profile)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		repo.AssertExpectations(t)
	})
}

func TestUserService_VerifyEmail(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		token := issueTestToken(t, userID, models.TokenPurposeVerifyEmail, time.Hour)

		repo.On("MarkEmailVerified", ctx, userID).Return(nil).Once()

		// Act
		err := userService.VerifyEmail(ctx, token)

		// Assert
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Session Token Rejected", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		token := issueTestToken(t, userID, models.TokenPurposeSession, time.Hour)

		// Act
		err := userService.VerifyEmail(ctx, token)

		// Assert
		require.Error(t, err, "A session token must not verify an email")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		repo.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		token := issueTestToken(t, userID, models.TokenPurposeVerifyEmail, -time.Hour)

		// Act
		err := userService.VerifyEmail(ctx, token)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		repo.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Garbage Token", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)

		// Act
		err := userService.VerifyEmail(ctx, "not-a-token")

		// Assert
		require.Error(t, err)
		repo.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown User", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		token := issueTestToken(t, userID, models.TokenPurposeVerifyEmail, time.Hour)

		repo.On("MarkEmailVerified", ctx, userID).Return(sql.ErrNoRows).Once()

		// Act
		err := userService.VerifyEmail(ctx, token)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		repo.AssertExpectations(t)
	})
}

func TestUserService_ResendVerification(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, repo, _, emailService := setupUserServiceTest(t)
		user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}

		repo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
		emailService.On("SendVerificationEmail", ctx, user.Email, user.Name, mock.AnythingOfType("string")).Return(nil).Once()

		// Act
		err := userService.ResendVerification(ctx, user.Email)

		// Assert
		require.NoError(t, err)
		repo.AssertExpectations(t)
		emailService.AssertExpectations(t)
	})

	t.Run("Failure - Already Verified", func(t *testing.T) {
		// Arrange
		userService, repo, _, emailService := setupUserServiceTest(t)
		verifiedAt := time.Now()
		user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", EmailVerifiedAt: &verifiedAt}

		repo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		// Act
		err := userService.ResendVerification(ctx, user.Email)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		emailService.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		userService, repo, _, _ := setupUserServiceTest(t)
		repo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows).Once()

		// Act
		err := userService.ResendVerification(ctx, "ghost@example.com")

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Delivery Error", func(t *testing.T) {
		// Arrange
		userService, repo, _, emailService := setupUserServiceTest(t)
		user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}

		repo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
		emailService.On("SendVerificationEmail", ctx, user.Email, user.Name, mock.AnythingOfType("string")).
			Return(errors.New("sendgrid unavailable")).Once()

		// Act
		err := userService.ResendVerification(ctx, user.Email)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
		repo.AssertExpectations(t)
		emailService.AssertExpectations(t)
	})
}
