package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

// UserController serves the admin-only account management endpoints.
type UserController struct {
	Users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) List(c *fiber.Ctx) error {
	users, err := uc.Users.List()
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(users)
}

// SetActive activates or deactivates an account.
func (uc *UserController) SetActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.IsActive == nil {
		return utils.BadRequest(c, "is_active is required")
	}
	user, err := uc.Users.SetActive(uint(id), *input.IsActive)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(user)
}
