package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"meetbook-api/config"
	"meetbook-api/logger"
	"meetbook-api/model"
	"meetbook-api/repository"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// TokenKind selects which signing secret and lifetime a session token
// uses. Access and refresh tokens are signed with independent secrets so
// that compromise of one cannot forge the other.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthService handles registration, login and the session token
// lifecycle.
type AuthService struct {
	userRepo    repository.IUserRepository
	googleOAuth *oauth2.Config
}

func NewAuthService(userRepo repository.IUserRepository) *AuthService {
	cfg := config.AppConfig.Google
	return &AuthService{
		userRepo: userRepo,
		googleOAuth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new user with a bcrypt-hashed password. The
// email-in-use check here gives callers a clean conflict message; the
// unique constraint on users.email is what actually settles the race.
func (s *AuthService) Register(email, password, name string) (*model.User, error) {
	if _, err := s.userRepo.GetUserByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	hashed, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashed,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// Login verifies a user's credentials. Unknown email and wrong password
// both return ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func secretFor(kind TokenKind) []byte {
	if kind == TokenKindRefresh {
		return []byte(config.AppConfig.JWT.RefreshSecret)
	}
	return []byte(config.AppConfig.JWT.AccessSecret)
}

func ttlFor(kind TokenKind) time.Duration {
	if kind == TokenKindRefresh {
		return config.AppConfig.JWT.RefreshTokenTTL
	}
	return config.AppConfig.JWT.AccessTokenTTL
}

// GenerateToken mints a signed session token of the given kind for the
// given user.
func (s *AuthService) GenerateToken(userID int, kind TokenKind) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttlFor(kind))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretFor(kind))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign session token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// VerifyToken validates a session token of the given kind and returns
// the user id it is bound to. Expiry is reported as ErrTokenExpired;
// every other failure (bad signature, malformed token, wrong algorithm)
// is ErrTokenInvalid.
func (s *AuthService) VerifyToken(tokenString string, kind TokenKind) (int, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secretFor(kind), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin exchanges an authorization code with Google, fetches the
// account's profile, and finds or creates the matching user. Users
// created this way get a random bcrypt-hashed password; they can only
// sign in through Google until a password reset flow exists.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*model.User, error) {
	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		logger.Log.WithError(err).Warn("Google code exchange failed")
		return nil, ErrInvalidCredentials
	}

	resp, err := s.googleOAuth.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch Google user info")
		return nil, ErrInvalidCredentials
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Log.WithField("status", resp.StatusCode).WithField("body", string(body)).
			Warn("Google user info request rejected")
		return nil, ErrInvalidCredentials
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}

	user, err := s.userRepo.GetUserByEmail(info.Email)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// First Google sign-in: provision the account.
	randomPassword := make([]byte, 32)
	if _, err := rand.Read(randomPassword); err != nil {
		return nil, err
	}
	hashed, err := s.HashPassword(hex.EncodeToString(randomPassword))
	if err != nil {
		return nil, err
	}

	user = &model.User{
		Name:     info.Name,
		Email:    info.Email,
		Password: hashed,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User provisioned via Google sign-in")
	return user, nil
}
