package controllers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

type AuthController struct {
	Users *repositories.UserRepository
	Cfg   *config.Config
}

func NewAuthController(users *repositories.UserRepository, cfg *config.Config) *AuthController {
	return &AuthController{Users: users, Cfg: cfg}
}

type registerInput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "email and password are required")
	}
	role := input.Role
	if role == "" {
		role = models.RoleTeacher
	}
	if !models.ValidRole(role) {
		return utils.BadRequest(c, "unknown role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.FromError(c, err)
	}

	user := models.User{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: string(hashed),
		Role:           role,
		IsActive:       true,
	}
	if err := ac.Users.Create(&user); err != nil {
		return utils.FromError(c, err)
	}
	return utils.Created(c, user)
}

// Token godoc
// @Summary Obtain a JWT access token (OAuth2 password grant)
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Router /auth/token [post]
func (ac *AuthController) Token(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return utils.BadRequest(c, "username and password are required")
	}

	user, err := ac.Users.ByEmail(email)
	if err != nil {
		return utils.Unauthorized(c, "incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return utils.Unauthorized(c, "incorrect email or password")
	}
	if !user.IsActive {
		return utils.Forbidden(c, "account is inactive")
	}

	token, err := utils.GenerateJWTToken(user, ac.Cfg)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, err := ac.Users.ByID(middleware.UserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(user)
}
