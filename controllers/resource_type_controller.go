package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/utils"
)

// ResourceTypeController exposes the read-only type registry.
type ResourceTypeController struct {
	Registry *repositories.TypeRegistry
}

func NewResourceTypeController(registry *repositories.TypeRegistry) *ResourceTypeController {
	return &ResourceTypeController{Registry: registry}
}

func (tc *ResourceTypeController) ListTypes(c *fiber.Ctx) error {
	types, err := tc.Registry.Types()
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(types)
}

func (tc *ResourceTypeController) GetType(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid type id")
	}
	t, err := tc.Registry.Type(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(t)
}

// ListSubTypes returns every sub type, or only those under one type when the
// type_id query parameter is present.
func (tc *ResourceTypeController) ListSubTypes(c *fiber.Ctx) error {
	typeID := c.QueryInt("type_id", 0)
	if typeID < 0 {
		return utils.BadRequest(c, "invalid type_id")
	}
	subTypes, err := tc.Registry.SubTypes(uint(typeID))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(subTypes)
}

func (tc *ResourceTypeController) GetSubType(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid sub type id")
	}
	st, err := tc.Registry.SubType(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(st)
}

func (tc *ResourceTypeController) SubTypesOfType(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid type id")
	}
	if _, err := tc.Registry.Type(uint(id)); err != nil {
		return utils.FromError(c, err)
	}
	subTypes, err := tc.Registry.SubTypes(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(subTypes)
}
