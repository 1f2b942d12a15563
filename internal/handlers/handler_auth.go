package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/salesync/salesync_backend/internal/dto"
	"github.com/salesync/salesync_backend/internal/middleware"
	"github.com/salesync/salesync_backend/pkg/config"
)

// AuthHandler exchanges the shared service API key for a bearer token.
type AuthHandler struct {
	apiKey      string
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		apiKey:      cfg.ServiceAPIKey,
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public token route, rate limited by IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := NewAuthHandler(cfg)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	auth := r.Group("/auth")
	{
		auth.POST("/token", middleware.RateLimit(ipLimiter), h.IssueToken)
	}
}

// IssueToken godoc
// @Summary Exchange the service API key for a JWT
// @Description Validates the shared API key and issues a bearer token for the named client
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.TokenRequest true "Client credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Failed to issue token"
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		logger.Warn("Invalid API key presented", slog.String("client_id", req.ClientID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   req.ClientID,
		Issuer:    h.jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("Token issued", slog.String("client_id", req.ClientID))
	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int(h.jwtDuration.Seconds()),
	})
}
