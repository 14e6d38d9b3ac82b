package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// RequireAuth validates the bearer token, checks the account is still
// active, and stores the user id and role on the request context.
func RequireAuth(cfg *config.Config, users *repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractTokenClaims(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "missing or invalid token")
		}
		user, err := users.ByID(claims.UserID)
		if err != nil {
			return utils.Unauthorized(c, "missing or invalid token")
		}
		if !user.IsActive {
			return utils.Forbidden(c, "account is inactive")
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireTeacher allows teachers and admins only. Must run after RequireAuth.
func RequireTeacher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role != models.RoleTeacher && role != models.RoleAdmin {
			return utils.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}

// RequireAdmin allows admins only. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role != models.RoleAdmin {
			return utils.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's id stored by RequireAuth.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

// IsAdmin reports whether the authenticated user is an admin.
func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals(LocalRole).(string)
	return role == models.RoleAdmin
}
