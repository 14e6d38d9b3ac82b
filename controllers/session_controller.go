package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

type SessionController struct {
	Repo *repositories.SessionRepository
}

func NewSessionController(repo *repositories.SessionRepository) *SessionController {
	return &SessionController{Repo: repo}
}

func (sc *SessionController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid session id")
	}
	s, err := sc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(s)
}

func (sc *SessionController) BySequence(c *fiber.Ctx) error {
	sequenceID, err := c.ParamsInt("sequence_id")
	if err != nil {
		return utils.BadRequest(c, "invalid sequence id")
	}
	list, err := sc.Repo.BySequence(uint(sequenceID))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (sc *SessionController) Create(c *fiber.Ctx) error {
	var input struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Date        *time.Time `json:"date"`
		Duration    int        `json:"duration"`
		Notes       string     `json:"notes"`
		SequenceID  uint       `json:"sequence_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.Title == "" || input.SequenceID == 0 {
		return utils.BadRequest(c, "title and sequence_id are required")
	}
	s := models.Session{
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		Notes:       input.Notes,
		SequenceID:  input.SequenceID,
		UserID:      middleware.UserID(c),
	}
	if input.Date != nil {
		s.Date = *input.Date
	} else {
		s.Date = time.Now()
	}
	if err := sc.Repo.Create(&s); err != nil {
		return utils.FromError(c, err)
	}
	return utils.Created(c, s)
}

func (sc *SessionController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid session id")
	}
	existing, err := sc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this session")
	}

	var patch repositories.SessionPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	s, err := sc.Repo.Update(uint(id), patch)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(s)
}

func (sc *SessionController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid session id")
	}
	existing, err := sc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this session")
	}
	if err := sc.Repo.Delete(uint(id)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}
