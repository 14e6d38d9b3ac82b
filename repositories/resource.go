package repositories

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/services"
)

// ResourceRepository owns the resource lifecycle: payload exclusivity between
// uploaded files and AI content, session link management, and keeping the
// uploads directory consistent with the table.
//
// Policy for file side effects: new files are written before the transaction
// (with a compensating delete if it fails), old files are removed after the
// transaction commits. The database is authoritative; file cleanup failures
// are logged and never surfaced.
type ResourceRepository struct {
	DB    *gorm.DB
	Store *services.FileStore
	Cfg   *config.Config
	Log   *zap.SugaredLogger
}

func NewResourceRepository(db *gorm.DB, store *services.FileStore, cfg *config.Config, log *zap.SugaredLogger) *ResourceRepository {
	return &ResourceRepository{DB: db, Store: store, Cfg: cfg, Log: log}
}

type CreateResourceInput struct {
	Title       string
	Description string
	TypeID      uint
	SubTypeID   uint
	SourceType  string
	Content     *string
	SessionIDs  []uint
	UserID      uint
}

type ResourcePatch struct {
	Title       *string
	Description *string
	TypeID      *uint
	SubTypeID   *uint
	Content     *string
	SessionIDs  *[]uint
}

func (r *ResourceRepository) ByID(id uint) (*models.Resource, error) {
	var res models.Resource
	err := r.DB.Preload("Type").Preload("SubType").Preload("Sessions").First(&res, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("resource %d", id)
		}
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) ByUser(userID uint) ([]models.Resource, error) {
	var list []models.Resource
	err := r.DB.Preload("Type").Preload("SubType").Preload("Sessions").
		Where("user_id = ?", userID).Order("id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// BySession lists the resources linked to one session.
func (r *ResourceRepository) BySession(sessionID uint) ([]models.Resource, error) {
	if err := requireAll(r.DB, &models.Session{}, "session", []uint{sessionID}); err != nil {
		return nil, err
	}
	var ids []uint
	err := r.DB.Table("session_resource").Where("session_id = ?", sessionID).Pluck("resource_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Resource{}, nil
	}
	var list []models.Resource
	err = r.DB.Preload("Type").Preload("SubType").Preload("Sessions").
		Where("id IN ?", ids).Order("id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Standalone lists resources that are linked to no session at all.
func (r *ResourceRepository) Standalone(userID uint) ([]models.Resource, error) {
	var list []models.Resource
	err := r.DB.Preload("Type").Preload("SubType").Preload("Sessions").
		Where("user_id = ?", userID).
		Where("id NOT IN (SELECT resource_id FROM session_resource)").
		Order("id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// checkTaxonomy validates that both ids exist and that the sub-type really
// belongs to the type. The two-level hierarchy is enforced here because the
// schema carries no cross-column constraint for it.
func (r *ResourceRepository) checkTaxonomy(typeID, subTypeID uint) error {
	if err := requireAll(r.DB, &models.ResourceType{}, "resource type", []uint{typeID}); err != nil {
		return err
	}
	var st models.ResourceSubType
	if err := r.DB.First(&st, subTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("resource sub-type %d", subTypeID)
		}
		return err
	}
	if st.TypeID != typeID {
		return apperrors.InvalidInputf("sub-type %d does not belong to type %d", subTypeID, typeID)
	}
	return nil
}

func (r *ResourceRepository) sessionsFor(ids []uint) ([]models.Session, error) {
	ids = normalizeIDs(ids)
	if err := requireAll(r.DB, &models.Session{}, "session", ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var sessions []models.Session
	if err := r.DB.Where("id IN ?", ids).Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Create validates the input, persists the upload when the source is a file,
// and writes the row plus its session links in one transaction. A failed
// transaction removes the file it just stored.
func (r *ResourceRepository) Create(input CreateResourceInput, upload *services.Upload) (*models.Resource, error) {
	if !models.ValidSourceType(input.SourceType) {
		return nil, apperrors.InvalidInputf("source_type must be either %q or %q", models.SourceFile, models.SourceAI)
	}
	if err := requireAll(r.DB, &models.User{}, "user", []uint{input.UserID}); err != nil {
		return nil, err
	}
	if err := r.checkTaxonomy(input.TypeID, input.SubTypeID); err != nil {
		return nil, err
	}
	sessions, err := r.sessionsFor(input.SessionIDs)
	if err != nil {
		return nil, err
	}

	res := models.Resource{
		Title:       input.Title,
		Description: input.Description,
		TypeID:      input.TypeID,
		SubTypeID:   input.SubTypeID,
		UserID:      input.UserID,
		SourceType:  input.SourceType,
	}

	var storedPath string
	switch input.SourceType {
	case models.SourceFile:
		if upload == nil {
			return nil, apperrors.InvalidInputf("a file upload is required when source_type is %q", models.SourceFile)
		}
		if err := upload.Validate(r.Cfg); err != nil {
			return nil, err
		}
		name := services.SanitizeFilename(upload.Name)
		storedPath, err = r.Store.Save(input.UserID, name, upload.Data)
		if err != nil {
			return nil, err
		}
		res.FileName = &name
		res.FilePath = &storedPath
		res.FileSize = &upload.Size
		res.FileType = &upload.MIME
	case models.SourceAI:
		if upload != nil {
			r.Log.Warnw("ignoring file upload on ai-sourced resource", "title", input.Title)
		}
		content := ""
		if input.Content != nil {
			content = *input.Content
		}
		res.Content = &content
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&res).Error; err != nil {
			return err
		}
		if len(sessions) > 0 {
			if err := tx.Model(&res).Association("Sessions").Replace(sessions); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if storedPath != "" {
			r.Store.RemoveLogged(storedPath)
		}
		return nil, err
	}

	return r.ByID(res.ID)
}

// Update applies a partial patch. Supplying a new file always switches the
// resource to the file source and clears the AI payload; the previous file is
// removed only after the transaction commits. Supplying content (without a
// file) switches to the ai source and clears the file payload.
func (r *ResourceRepository) Update(id uint, patch ResourcePatch, upload *services.Upload) (*models.Resource, error) {
	res, err := r.ByID(id)
	if err != nil {
		return nil, err
	}

	typeID := res.TypeID
	if patch.TypeID != nil {
		typeID = *patch.TypeID
	}
	subTypeID := res.SubTypeID
	if patch.SubTypeID != nil {
		subTypeID = *patch.SubTypeID
	}
	if typeID != res.TypeID || subTypeID != res.SubTypeID {
		if err := r.checkTaxonomy(typeID, subTypeID); err != nil {
			return nil, err
		}
	}

	var sessions []models.Session
	if patch.SessionIDs != nil {
		sessions, err = r.sessionsFor(*patch.SessionIDs)
		if err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.TypeID != nil {
		updates["type_id"] = *patch.TypeID
	}
	if patch.SubTypeID != nil {
		updates["sub_type_id"] = *patch.SubTypeID
	}

	var oldPath string
	if res.FilePath != nil {
		oldPath = *res.FilePath
	}
	var newPath string

	switch {
	case upload != nil:
		if err := upload.Validate(r.Cfg); err != nil {
			return nil, err
		}
		name := services.SanitizeFilename(upload.Name)
		newPath, err = r.Store.Save(res.UserID, name, upload.Data)
		if err != nil {
			return nil, err
		}
		updates["source_type"] = models.SourceFile
		updates["file_name"] = name
		updates["file_path"] = newPath
		updates["file_size"] = upload.Size
		updates["file_type"] = upload.MIME
		updates["content"] = nil
	case patch.Content != nil:
		updates["source_type"] = models.SourceAI
		updates["content"] = *patch.Content
		updates["file_name"] = nil
		updates["file_path"] = nil
		updates["file_size"] = nil
		updates["file_type"] = nil
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(res).Updates(updates).Error; err != nil {
				return err
			}
		}
		if patch.SessionIDs != nil {
			if err := tx.Model(res).Association("Sessions").Replace(sessions); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if newPath != "" && newPath != oldPath {
			r.Store.RemoveLogged(newPath)
		}
		return nil, err
	}

	// The row now points elsewhere (or nowhere); drop the stale file.
	switch {
	case upload != nil && oldPath != "" && oldPath != newPath:
		r.Store.RemoveLogged(oldPath)
	case patch.Content != nil && upload == nil && oldPath != "":
		r.Store.RemoveLogged(oldPath)
	}

	return r.ByID(id)
}

// Delete removes the row and its session links. For file-backed resources the
// stored file is deleted first, best-effort: a cleanup failure never stops
// the row removal.
func (r *ResourceRepository) Delete(id uint) error {
	res, err := r.ByID(id)
	if err != nil {
		return err
	}
	if res.SourceType == models.SourceFile && res.FilePath != nil {
		r.Store.RemoveLogged(*res.FilePath)
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(res).Association("Sessions").Clear(); err != nil {
			return err
		}
		return tx.Delete(res).Error
	})
}

// ReplaceSessions sets the session links of a resource to exactly the given
// set; an empty set detaches the resource from every session.
func (r *ResourceRepository) ReplaceSessions(resourceID uint, sessionIDs []uint) (*models.Resource, error) {
	return r.Update(resourceID, ResourcePatch{SessionIDs: &sessionIDs}, nil)
}
