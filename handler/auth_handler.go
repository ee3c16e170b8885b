package handler

import (
	"database/sql"
	"encoding/json"
	"meetbook-api/common"
	"meetbook-api/logger"
	"meetbook-api/model"
	"meetbook-api/service"
	"net/http"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// issueSession mints the access/refresh pair for a user and attaches
// both as cookies.
func (h *AuthHandler) issueSession(w http.ResponseWriter, userID int) *common.AppError {
	accessToken, err := h.authService.GenerateToken(userID, service.TokenKindAccess)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create session", err)
	}
	refreshToken, err := h.authService.GenerateToken(userID, service.TokenKindRefresh)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create session", err)
	}

	setSessionCookies(w, accessToken, refreshToken)
	return nil
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Registration payload"
// @Success      201 {object} model.User
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.authService.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		if err == service.ErrUserExists {
			return common.NewAppError(http.StatusConflict, "User already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
	}

	if appErr := h.issueSession(w, user.ID); appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": user})
	return nil
}

// Login godoc
// @Summary      Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Login payload"
// @Success      200 {object} model.User
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return common.NewAppError(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not log in", err)
	}

	if appErr := h.issueSession(w, user.ID); appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": user})
	return nil
}

// GoogleLogin exchanges a Google authorization code for a session,
// provisioning the user on first sign-in.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.GoogleLoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.authService.GoogleLogin(r.Context(), req.Code)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return common.NewAppError(http.StatusUnauthorized, "Google sign-in failed", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not log in with Google", err)
	}

	if appErr := h.issueSession(w, user.ID); appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": user})
	return nil
}

// Refresh rotates the session: a valid refresh token yields a new
// access token and a new refresh token. A missing cookie is 401; every
// verification failure collapses into a single 403 so the response does
// not reveal whether the token was expired, malformed or forged.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		return common.NewAppError(http.StatusUnauthorized, "Refresh token missing", nil)
	}

	userID, err := h.authService.VerifyToken(cookie.Value, service.TokenKindRefresh)
	if err != nil {
		return common.NewAppError(http.StatusForbidden, "Invalid refresh token", err)
	}

	if appErr := h.issueSession(w, userID); appErr != nil {
		return appErr
	}

	logger.Log.WithField("user_id", userID).Info("Session refreshed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	return nil
}

// Logout clears the session cookies.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	clearSessionCookies(w)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	return nil
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid session", nil)
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load profile", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": user})
	return nil
}
