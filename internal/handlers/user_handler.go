package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/logger"
	"fittrack/internal/models"
	"fittrack/internal/services"
)

// UserHandler handles account registration, login, password reset and the
// current user's account.
type UserHandler struct {
	userService   services.UserServicer
	tokenService  services.TokenServicer
	auditService  services.AuditServicer
	authTokenTTL  time.Duration
	resetTokenTTL time.Duration
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userService services.UserServicer,
	tokenService services.TokenServicer,
	auditService services.AuditServicer,
	authTokenTTL, resetTokenTTL time.Duration,
) *UserHandler {
	return &UserHandler{
		userService:   userService,
		tokenService:  tokenService,
		auditService:  auditService,
		authTokenTTL:  authTokenTTL,
		resetTokenTTL: resetTokenTTL,
	}
}

// RegisterRequest represents the registration request payload. Field rules
// are enforced by the user service so every failure is reported together.
type RegisterRequest struct {
	FirstName   string `json:"firstName" example:"Alice"`
	LastName    string `json:"lastName" example:"Smith"`
	Email       string `json:"email" example:"alice@example.com"`
	Password    string `json:"password" example:"password123"`
	AccountType string `json:"accountType,omitempty" example:"user"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PasswordResetRequest asks for a password reset token.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest sets a new password using a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the request payload for updating the current user.
type UpdateUserRequest struct {
	FirstName           *string            `json:"firstName"`
	LastName            *string            `json:"lastName"`
	PreferredUnitSystem *models.UnitSystem `json:"preferredUnitSystem" binding:"omitempty,unit_system"`
}

// TokenResponse carries a newly issued authentication token.
type TokenResponse struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	AuthenticationToken TokenResponse `json:"authenticationToken"`
	User                *models.User  `json:"user"`
}

// Register handles user registration
// @Summary     Register a new user
// @Description Create an account. accountType is accepted but new accounts are always regular users.
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     200 {object} MessageResponse "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		AccountType: req.AccountType,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, services.AuditUserRegister, "user", user.ID, c.ClientIP(),
		map[string]interface{}{"email": user.Email})

	c.JSON(http.StatusOK, MessageResponse{Message: "User created successfully"})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate with email and password and receive a bearer token
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} LoginResponse "Authenticated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plaintext, token, err := h.tokenService.Issue(user.ID, h.authTokenTTL, models.ScopeAuthentication)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if n, err := h.tokenService.DeleteExpired(user.ID); err != nil {
		logger.Get().Warnw("failed to prune expired tokens", "user_id", user.ID, "error", err)
	} else if n > 0 {
		logger.Get().Debugw("pruned expired tokens", "user_id", user.ID, "count", n)
	}

	h.auditService.Log(user.ID, services.AuditUserLogin, "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, LoginResponse{
		AuthenticationToken: TokenResponse{Token: plaintext, Expiry: token.Expiry},
		User:                user,
	})
}

// RequestPasswordReset issues a password reset token
// @Summary     Request a password reset
// @Description Always answers 202 so that registered emails cannot be discovered
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request body PasswordResetRequest true "Account email"
// @Success     202 {object} MessageResponse "Request accepted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/user/password-reset [post]
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	accepted := MessageResponse{Message: "If that address is registered, a password reset token has been sent"}

	user, err := h.userService.GetUserByEmail(req.Email)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUserNotFound.Code {
			c.JSON(http.StatusAccepted, accepted)
			return
		}
		respondWithError(c, err)
		return
	}

	plaintext, token, err := h.tokenService.Issue(user.ID, h.resetTokenTTL, models.ScopePasswordReset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// No mailer is configured; operators pick the token up from the debug log.
	logger.Get().Debugw("password reset token issued",
		"user_id", user.ID,
		"token", plaintext,
		"expiry", token.Expiry,
	)

	c.JSON(http.StatusAccepted, accepted)
}

// ResetPassword sets a new password from a reset token
// @Summary     Reset password
// @Description Set a new password using a password reset token. Signs out every session.
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request body ResetPasswordRequest true "Reset token and new password"
// @Success     200 {object} MessageResponse "Password reset"
// @Failure     400 {object} ErrorResponse "Invalid input or token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/user/password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.tokenService.UserForToken(models.ScopePasswordReset, req.Token)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrInvalidToken.Code {
			respondWithError(c, apperrors.WithFields(apperrors.ErrValidation, []apperrors.FieldError{
				{Field: "token", Message: "invalid or expired password reset token"},
			}))
			return
		}
		respondWithError(c, err)
		return
	}

	if err := h.userService.ResetPassword(user.ID, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, services.AuditUserPasswordReset, "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Your password was successfully reset"})
}

// GetCurrentUser returns the authenticated user
// @Summary     Get current user
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "Current user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/user [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateCurrentUser updates the authenticated user's names and unit system
// @Summary     Update current user
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateUserRequest true "Fields to change"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/user [put]
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		PreferredUnitSystem: req.PreferredUnitSystem,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteCurrentUser deletes the authenticated user and everything they own
// @Summary     Delete current user
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Account deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/user [delete]
func (h *UserHandler) DeleteCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUserDelete, "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}
