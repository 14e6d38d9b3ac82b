package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

type ProgressionController struct {
	Repo *repositories.ProgressionRepository
}

func NewProgressionController(repo *repositories.ProgressionRepository) *ProgressionController {
	return &ProgressionController{Repo: repo}
}

func (pc *ProgressionController) List(c *fiber.Ctx) error {
	list, err := pc.Repo.ByUser(middleware.UserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (pc *ProgressionController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid progression id")
	}
	p, err := pc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(p)
}

func (pc *ProgressionController) Create(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "title is required")
	}
	p := models.Progression{
		Title:       input.Title,
		Description: input.Description,
		UserID:      middleware.UserID(c),
	}
	if err := pc.Repo.Create(&p); err != nil {
		return utils.FromError(c, err)
	}
	return utils.Created(c, p)
}

func (pc *ProgressionController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid progression id")
	}
	existing, err := pc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this progression")
	}

	var patch repositories.ProgressionPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	p, err := pc.Repo.Update(uint(id), patch)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(p)
}

func (pc *ProgressionController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid progression id")
	}
	existing, err := pc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this progression")
	}
	if err := pc.Repo.Delete(uint(id)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}
