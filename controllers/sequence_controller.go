package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

type SequenceController struct {
	Repo *repositories.SequenceRepository
}

func NewSequenceController(repo *repositories.SequenceRepository) *SequenceController {
	return &SequenceController{Repo: repo}
}

func (sc *SequenceController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid sequence id")
	}
	s, err := sc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(s)
}

func (sc *SequenceController) ByProgression(c *fiber.Ctx) error {
	progressionID, err := c.ParamsInt("progression_id")
	if err != nil {
		return utils.BadRequest(c, "invalid progression id")
	}
	list, err := sc.Repo.ByProgression(uint(progressionID))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (sc *SequenceController) Create(c *fiber.Ctx) error {
	var input struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		ProgressionID uint   `json:"progression_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.Title == "" || input.ProgressionID == 0 {
		return utils.BadRequest(c, "title and progression_id are required")
	}
	s := models.Sequence{
		Title:         input.Title,
		Description:   input.Description,
		ProgressionID: input.ProgressionID,
		UserID:        middleware.UserID(c),
	}
	if err := sc.Repo.Create(&s); err != nil {
		return utils.FromError(c, err)
	}
	return utils.Created(c, s)
}

func (sc *SequenceController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid sequence id")
	}
	existing, err := sc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this sequence")
	}

	var patch repositories.SequencePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	s, err := sc.Repo.Update(uint(id), patch)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(s)
}

func (sc *SequenceController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid sequence id")
	}
	existing, err := sc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this sequence")
	}
	if err := sc.Repo.Delete(uint(id)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}
