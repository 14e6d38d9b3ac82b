package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

// ObjectiveController serves objective CRUD plus the association endpoints
// that tie objectives to sequences and sessions.
type ObjectiveController struct {
	Repo      *repositories.ObjectiveRepository
	Sequences *repositories.SequenceRepository
	Sessions  *repositories.SessionRepository
}

func NewObjectiveController(
	repo *repositories.ObjectiveRepository,
	sequences *repositories.SequenceRepository,
	sessions *repositories.SessionRepository,
) *ObjectiveController {
	return &ObjectiveController{Repo: repo, Sequences: sequences, Sessions: sessions}
}

func (oc *ObjectiveController) List(c *fiber.Ctx) error {
	list, err := oc.Repo.List()
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (oc *ObjectiveController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	o, err := oc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(o)
}

func (oc *ObjectiveController) Create(c *fiber.Ctx) error {
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
	o := models.Objective{
		Title:       input.Title,
		Description: input.Description,
		UserID:      middleware.UserID(c),
	}
	if err := oc.Repo.Create(&o); err != nil {
		return utils.FromError(c, err)
	}
	return utils.Created(c, o)
}

func (oc *ObjectiveController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	existing, err := oc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this objective")
	}

	var patch repositories.ObjectivePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	o, err := oc.Repo.Update(uint(id), patch)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(o)
}

func (oc *ObjectiveController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	existing, err := oc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this objective")
	}
	if err := oc.Repo.Delete(uint(id)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}

// --- Sequence <-> Objective ---

func (oc *ObjectiveController) LinkToSequence(c *fiber.Ctx) error {
	sequenceID, err := c.ParamsInt("sequence_id")
	if err != nil {
		return utils.BadRequest(c, "invalid sequence id")
	}
	objectiveID, err := c.ParamsInt("objective_id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	if err := oc.Sequences.LinkObjective(uint(sequenceID), uint(objectiveID)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}

func (oc *ObjectiveController) UnlinkFromSequence(c *fiber.Ctx) error {
	sequenceID, err := c.ParamsInt("sequence_id")
	if err != nil {
		return utils.BadRequest(c, "invalid sequence id")
	}
	objectiveID, err := c.ParamsInt("objective_id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	if err := oc.Sequences.UnlinkObjective(uint(sequenceID), uint(objectiveID)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}

func (oc *ObjectiveController) BySequence(c *fiber.Ctx) error {
	sequenceID, err := c.ParamsInt("sequence_id")
	if err != nil {
		return utils.BadRequest(c, "invalid sequence id")
	}
	list, err := oc.Repo.BySequence(uint(sequenceID))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (oc *ObjectiveController) SequencesOf(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	list, err := oc.Repo.SequencesOf(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

// --- Session <-> Objective ---

func (oc *ObjectiveController) LinkToSession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("session_id")
	if err != nil {
		return utils.BadRequest(c, "invalid session id")
	}
	objectiveID, err := c.ParamsInt("objective_id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	if err := oc.Sessions.LinkObjective(uint(sessionID), uint(objectiveID)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}

func (oc *ObjectiveController) UnlinkFromSession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("session_id")
	if err != nil {
		return utils.BadRequest(c, "invalid session id")
	}
	objectiveID, err := c.ParamsInt("objective_id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	if err := oc.Sessions.UnlinkObjective(uint(sessionID), uint(objectiveID)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}

func (oc *ObjectiveController) BySession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("session_id")
	if err != nil {
		return utils.BadRequest(c, "invalid session id")
	}
	list, err := oc.Repo.BySession(uint(sessionID))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (oc *ObjectiveController) SessionsOf(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid objective id")
	}
	list, err := oc.Repo.SessionsOf(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}
