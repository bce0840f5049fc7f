/*
Package auth implements email/password authentication with stateless JWT
access tokens. Logout also tears down the caller's inactivity monitor so
no check-ins fire for a signed-out account.
*/
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"FitMind_V0.1/internal/database"
	"FitMind_V0.1/internal/utility"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenDuration = 24 * time.Hour
)

var (
	queries  *database.Queries
	onLogout func(userID string)
)

type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        database.User `json:"user"`
}

type SignupRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// InitAuth wires the package to the database pool and registers the hook
// invoked on logout (used to reset the user's inactivity monitor).
func InitAuth(dbpool *pgxpool.Pool, logoutHook func(userID string)) error {
	if os.Getenv("SESSION_SECRET") == "" {
		return fmt.Errorf("SESSION_SECRET environment variable is not set")
	}
	queries = database.New(dbpool)
	onLogout = logoutHook
	return nil
}

/* =================================================================================
							HANDLERS
================================================================================= */

// SignupHandler handles POST /auth/signup
func SignupHandler(c echo.Context) error {
	ctx := c.Request().Context()

	if err := utility.CheckIPRateLimit(c.RealIP()); err != nil {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	}

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email, username and a password of at least 8 characters are required"})
	}

	if _, err := queries.GetUserByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "An account with this email already exists"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Error().Err(err).Msg("Failed to check existing user")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Signup failed"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Signup failed"})
	}

	user, err := queries.CreateUser(ctx, database.CreateUserParams{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: pgtype.Text{String: string(hashedPassword), Valid: true},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Signup failed"})
	}

	token, err := generateAccessToken(&user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate access token")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Signup failed"})
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(AccessTokenDuration.Seconds()),
		User:        user,
	})
}

// LoginHandler handles POST /auth/login
func LoginHandler(c echo.Context) error {
	ctx := c.Request().Context()

	if err := utility.CheckIPRateLimit(c.RealIP()); err != nil {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := queries.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		}
		log.Error().Err(err).Msg("Failed to look up user")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Login failed"})
	}

	if !user.PasswordHash.Valid {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash.String), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := generateAccessToken(&user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate access token")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Login failed"})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(AccessTokenDuration.Seconds()),
		User:        user,
	})
}

// LogoutHandler handles POST /auth/logout. Stateless tokens cannot be
// revoked server-side; the point of this endpoint is the monitor teardown.
func LogoutHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if ok && userID != "" && onLogout != nil {
		onLogout(userID)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

/* =================================================================================
							MIDDLEWARE
================================================================================= */

func JwtAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionSecret := os.Getenv("SESSION_SECRET")
		token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(sessionSecret), nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(*JwtCustomClaims)
		if !ok || claims.UserID == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		}

		c.Set("user_id", claims.UserID)
		return next(c)
	}
}

/* =================================================================================
							HELPERS
================================================================================= */

func generateAccessToken(user *database.User) (string, error) {
	userID, err := utility.PgtypeUUIDToString(user.UserID)
	if err != nil {
		return "", err
	}

	claims := &JwtCustomClaims{
		UserID:   userID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SESSION_SECRET")))
}
