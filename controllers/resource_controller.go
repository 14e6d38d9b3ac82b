package controllers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/services"
	"github.com/flashfrancais/backend/utils"
)

// ResourceController serves the resource endpoints. Create and Update accept
// multipart/form-data so a file part can ride along with the fields; plain
// JSON bodies work too for AI-sourced resources.
type ResourceController struct {
	Repo *repositories.ResourceRepository
}

func NewResourceController(repo *repositories.ResourceRepository) *ResourceController {
	return &ResourceController{Repo: repo}
}

func (rc *ResourceController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid resource id")
	}
	res, err := rc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(res)
}

func (rc *ResourceController) List(c *fiber.Ctx) error {
	list, err := rc.Repo.ByUser(middleware.UserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (rc *ResourceController) BySession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("session_id")
	if err != nil {
		return utils.BadRequest(c, "invalid session id")
	}
	list, err := rc.Repo.BySession(uint(sessionID))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (rc *ResourceController) Standalone(c *fiber.Ctx) error {
	list, err := rc.Repo.Standalone(middleware.UserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(list)
}

func (rc *ResourceController) Create(c *fiber.Ctx) error {
	input := repositories.CreateResourceInput{UserID: middleware.UserID(c)}
	var upload *services.Upload

	if isMultipart(c) {
		input.Title = c.FormValue("title")
		input.Description = c.FormValue("description")
		input.SourceType = c.FormValue("source_type")
		typeID, err := formUint(c, "type_id")
		if err != nil {
			return utils.BadRequest(c, "invalid type_id")
		}
		input.TypeID = typeID
		subTypeID, err := formUint(c, "sub_type_id")
		if err != nil {
			return utils.BadRequest(c, "invalid sub_type_id")
		}
		input.SubTypeID = subTypeID
		if s := c.FormValue("content"); s != "" {
			input.Content = &s
		}
		ids, err := formSessionIDs(c)
		if err != nil {
			return utils.BadRequest(c, "invalid session_ids")
		}
		input.SessionIDs = ids

		fh, err := c.FormFile("file")
		if err == nil && fh != nil {
			u, cleanup, fileErr := openUpload(fh)
			if fileErr != nil {
				return utils.BadRequest(c, "cannot read uploaded file")
			}
			defer cleanup()
			upload = u
		}
	} else {
		var body struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			TypeID      uint    `json:"type_id"`
			SubTypeID   uint    `json:"sub_type_id"`
			SourceType  string  `json:"source_type"`
			Content     *string `json:"content"`
			SessionIDs  []uint  `json:"session_ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return utils.BadRequest(c, "cannot parse JSON")
		}
		input.Title = body.Title
		input.Description = body.Description
		input.TypeID = body.TypeID
		input.SubTypeID = body.SubTypeID
		input.SourceType = body.SourceType
		input.Content = body.Content
		input.SessionIDs = body.SessionIDs
	}

	if input.Title == "" {
		return utils.BadRequest(c, "title is required")
	}

	res, err := rc.Repo.Create(input, upload)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Created(c, res)
}

func (rc *ResourceController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid resource id")
	}
	existing, err := rc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this resource")
	}

	var patch repositories.ResourcePatch
	var upload *services.Upload

	if isMultipart(c) {
		if s, ok := formValue(c, "title"); ok {
			patch.Title = &s
		}
		if s, ok := formValue(c, "description"); ok {
			patch.Description = &s
		}
		if _, ok := formValue(c, "type_id"); ok {
			v, err := formUint(c, "type_id")
			if err != nil {
				return utils.BadRequest(c, "invalid type_id")
			}
			patch.TypeID = &v
		}
		if _, ok := formValue(c, "sub_type_id"); ok {
			v, err := formUint(c, "sub_type_id")
			if err != nil {
				return utils.BadRequest(c, "invalid sub_type_id")
			}
			patch.SubTypeID = &v
		}
		if s, ok := formValue(c, "content"); ok {
			patch.Content = &s
		}
		if _, ok := formValue(c, "session_ids"); ok {
			ids, err := formSessionIDs(c)
			if err != nil {
				return utils.BadRequest(c, "invalid session_ids")
			}
			patch.SessionIDs = &ids
		}

		fh, err := c.FormFile("file")
		if err == nil && fh != nil {
			u, cleanup, fileErr := openUpload(fh)
			if fileErr != nil {
				return utils.BadRequest(c, "cannot read uploaded file")
			}
			defer cleanup()
			upload = u
		}
	} else {
		var body struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			TypeID      *uint   `json:"type_id"`
			SubTypeID   *uint   `json:"sub_type_id"`
			Content     *string `json:"content"`
			SessionIDs  *[]uint `json:"session_ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return utils.BadRequest(c, "cannot parse JSON")
		}
		patch.Title = body.Title
		patch.Description = body.Description
		patch.TypeID = body.TypeID
		patch.SubTypeID = body.SubTypeID
		patch.Content = body.Content
		patch.SessionIDs = body.SessionIDs
	}

	res, err := rc.Repo.Update(uint(id), patch, upload)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(res)
}

func (rc *ResourceController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid resource id")
	}
	existing, err := rc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this resource")
	}
	if err := rc.Repo.Delete(uint(id)); err != nil {
		return utils.FromError(c, err)
	}
	return utils.NoContent(c)
}

func (rc *ResourceController) ReplaceSessions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid resource id")
	}
	existing, err := rc.Repo.ByID(uint(id))
	if err != nil {
		return utils.FromError(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return utils.Forbidden(c, "not the owner of this resource")
	}

	var body struct {
		SessionIDs []uint `json:"session_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	res, err := rc.Repo.ReplaceSessions(uint(id), body.SessionIDs)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(res)
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// formValue distinguishes an absent field from an empty one, which matters
// for partial updates.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", false
	}
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func formUint(c *fiber.Ctx, key string) (uint, error) {
	v, err := strconv.ParseUint(c.FormValue(key), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// formSessionIDs parses the session_ids field, which clients send either as a
// JSON array ("[1,2]") or a comma separated list ("1,2").
func formSessionIDs(c *fiber.Ctx) ([]uint, error) {
	raw := strings.TrimSpace(c.FormValue("session_ids"))
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var ids []uint
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, err
		}
		return ids, nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}

func openUpload(fh *multipart.FileHeader) (*services.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	u := &services.Upload{
		Name: fh.Filename,
		MIME: fh.Header.Get("Content-Type"),
		Size: fh.Size,
		Data: f,
	}
	return u, func() { f.Close() }, nil
}
