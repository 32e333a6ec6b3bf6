package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hotel-management/internal/auth"
	"hotel-management/internal/db"
	"hotel-management/internal/domain"
	"hotel-management/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	tokens *auth.TokenIssuer
	logger *logrus.Logger
}

func NewHandler(users service.UserService, tokens *auth.TokenIssuer, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestIDMiddleware())

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/positions", h.listPositions)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	authed := api.Group("", auth.Middleware(h.tokens))
	{
		authed.POST("/profile/complete", h.completeProfile)
		authed.GET("/me", h.me)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserRole string `json:"user_role"`
}

type userResponse struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	UserRole         string `json:"user_role"`
	ProfileCompleted bool   `json:"profile_completed"`
}

type positionResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type guestProfileResponse struct {
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	DateOfBirth string         `json:"date_of_birth"`
	Address     string         `json:"address"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

type staffProfileResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	PositionID  int64  `json:"position_id"`
	HireDate    string `json:"hire_date"`
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		UserRole:         string(user.Role),
		ProfileCompleted: user.ProfileCompleted,
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.UserRole,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (h *Handler) completeProfile(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authentication credentials"})
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON in request body"})
		return
	}
	if _, found := payload["user_id"]; found {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify user_id"})
		return
	}

	role, err := h.users.CompleteProfile(c.Request.Context(), principal.UserID, payload)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": string(role) + " profile completed successfully",
	})
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authentication credentials"})
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), principal.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"user": userToResponse(profile.User)}
	if profile.Guest != nil {
		resp["guest_profile"] = guestProfileResponse{
			FirstName:   profile.Guest.FirstName,
			LastName:    profile.Guest.LastName,
			DateOfBirth: profile.Guest.DateOfBirth,
			Address:     profile.Guest.Address,
			Preferences: profile.Guest.Preferences,
		}
	}
	if profile.Staff != nil {
		resp["staff_profile"] = staffProfileResponse{
			FirstName:   profile.Staff.FirstName,
			LastName:    profile.Staff.LastName,
			DateOfBirth: profile.Staff.DateOfBirth,
			Address:     profile.Staff.Address,
			PositionID:  profile.Staff.PositionID,
			HireDate:    profile.Staff.HireDate,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listPositions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	positions, err := h.users.ListPositions(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]positionResponse, len(positions))
	for i, p := range positions {
		resp[i] = positionResponse{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	c.JSON(http.StatusOK, gin.H{"positions": resp})
}

// writeError maps domain errors to response codes. Store failures are
// logged and surfaced as a generic error without internal detail.
func (h *Handler) writeError(c *gin.Context, err error) {
	var missing *service.MissingFieldError
	var invalid *service.InvalidFieldError
	var validation *db.ValidationError
	var query *db.QueryError

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &query):
		h.logger.WithField("request_id", c.GetString("request_id")).Errorf("query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		h.logger.WithField("request_id", c.GetString("request_id")).Errorf("unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
