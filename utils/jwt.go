package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/models"
)

// TokenClaims is what the middleware extracts from a validated bearer token.
type TokenClaims struct {
	UserID uint
	Role   string
}

func GenerateJWTToken(user *models.User, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.Email,
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ExtractTokenClaims validates the Authorization header and returns the
// claims. Both "Bearer <token>" and a bare token are accepted.
func ExtractTokenClaims(c *fiber.Ctx, cfg *config.Config) (TokenClaims, error) {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return TokenClaims{}, apperrors.ErrUnauthorized
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, apperrors.ErrUnauthorized
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return TokenClaims{}, apperrors.ErrUnauthorized
	}
	role, _ := claims["role"].(string)

	return TokenClaims{UserID: uint(userID), Role: role}, nil
}
