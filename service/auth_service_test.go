// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"meetbook-api/config"
	"meetbook-api/logger"
	"meetbook-api/model"
	"meetbook-api/repository"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()

	// The services read secrets from the global config; tests set them
	// directly instead of depending on a config file.
	config.AppConfig.JWT.AccessSecret = "test-access-secret"
	config.AppConfig.JWT.RefreshSecret = "test-refresh-secret"
	config.AppConfig.JWT.AccessTokenTTL = 15 * time.Minute
	config.AppConfig.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	config.AppConfig.Agora.AppID = "970CA35de60c44645bbae8a215061b33"
	config.AppConfig.Agora.AppCertificate = "5CFd2fd1755d40ecb72977518be15d3b"

	os.Exit(m.Run())
}

// mockUserRepo is a mock for repository.IUserRepository.
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetAllUsers() ([]*model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("authService.CheckPasswordHash() should have returned true for a matching password, but got false.")
	}

	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("authService.CheckPasswordHash() should have returned false for a non-matching password, but got true.")
	}
}

func TestAuthService_TokenLifecycle(t *testing.T) {
	authService := NewAuthService(nil)

	t.Run("access token round trip", func(t *testing.T) {
		token, err := authService.GenerateToken(42, TokenKindAccess)
		assert.NoError(t, err)

		userID, err := authService.VerifyToken(token, TokenKindAccess)
		assert.NoError(t, err)
		assert.Equal(t, 42, userID)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		// Independent secrets: a token of one kind must not verify as
		// the other.
		token, err := authService.GenerateToken(42, TokenKindAccess)
		assert.NoError(t, err)

		_, err = authService.VerifyToken(token, TokenKindRefresh)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		originalTTL := config.AppConfig.JWT.AccessTokenTTL
		config.AppConfig.JWT.AccessTokenTTL = -time.Minute
		token, err := authService.GenerateToken(42, TokenKindAccess)
		config.AppConfig.JWT.AccessTokenTTL = originalTTL
		assert.NoError(t, err)

		userID, err := authService.VerifyToken(token, TokenKindAccess)
		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.Zero(t, userID)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := authService.VerifyToken("not-a-jwt", TokenKindAccess)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "a@x.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.AnythingOfType("*model.User")).Return(nil).Once()

		authService := NewAuthService(mockRepo)
		user, err := authService.Register("a@x.com", "secret1", "Alice Anderson")

		assert.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
		assert.NotEqual(t, "secret1", user.Password)
		assert.True(t, authService.CheckPasswordHash("secret1", user.Password))
		mockRepo.AssertExpectations(t)
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com"}, nil).Once()

		authService := NewAuthService(mockRepo)
		_, err := authService.Register("a@x.com", "secret1", "Alice Anderson")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("lost the check-then-insert race", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "a@x.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.AnythingOfType("*model.User")).Return(repository.ErrDuplicateEmail).Once()

		authService := NewAuthService(mockRepo)
		_, err := authService.Register("a@x.com", "secret1", "Alice Anderson")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService := NewAuthService(nil)
	hashed, _ := authService.HashPassword("secret1")
	stored := &model.User{ID: 1, Email: "a@x.com", Password: hashed}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "a@x.com").Return(stored, nil).Once()

		user, err := NewAuthService(mockRepo).Login("a@x.com", "secret1")

		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "a@x.com").Return(stored, nil).Once()

		_, err := NewAuthService(mockRepo).Login("a@x.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByEmail", "nobody@x.com").Return(nil, sql.ErrNoRows).Once()

		_, err := NewAuthService(mockRepo).Login("nobody@x.com", "secret1")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
