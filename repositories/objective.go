package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/models"
)

type ObjectiveRepository struct {
	DB *gorm.DB
}

func NewObjectiveRepository(db *gorm.DB) *ObjectiveRepository {
	return &ObjectiveRepository{DB: db}
}

type ObjectivePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r *ObjectiveRepository) ByID(id uint) (*models.Objective, error) {
	var o models.Objective
	if err := r.DB.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("objective %d", id)
		}
		return nil, err
	}
	return &o, nil
}

func (r *ObjectiveRepository) List() ([]models.Objective, error) {
	var list []models.Objective
	if err := r.DB.Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ObjectiveRepository) Create(o *models.Objective) error {
	if err := requireAll(r.DB, &models.User{}, "user", []uint{o.UserID}); err != nil {
		return err
	}
	if err := r.DB.Create(o).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.Conflictf("objective with title %q already exists", o.Title)
		}
		return err
	}
	return nil
}

func (r *ObjectiveRepository) Update(id uint, patch ObjectivePatch) (*models.Objective, error) {
	o, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) > 0 {
		if err := r.DB.Model(o).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, apperrors.Conflictf("objective with title %q already exists", *patch.Title)
			}
			return nil, err
		}
	}
	return r.ByID(id)
}

// Delete removes the objective together with its sequence and session links.
// The row is deleted for real: a soft-deleted row would keep holding the
// unique title and block recreating an objective with the same name.
func (r *ObjectiveRepository) Delete(id uint) error {
	o, err := r.ByID(id)
	if err != nil {
		return err
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(o).Association("Sequences").Clear(); err != nil {
			return err
		}
		if err := tx.Model(o).Association("Sessions").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(o).Error
	})
}

func (r *ObjectiveRepository) BySequence(sequenceID uint) ([]models.Objective, error) {
	if err := requireAll(r.DB, &models.Sequence{}, "sequence", []uint{sequenceID}); err != nil {
		return nil, err
	}
	var seq models.Sequence
	if err := r.DB.Preload("Objectives").First(&seq, sequenceID).Error; err != nil {
		return nil, err
	}
	return seq.Objectives, nil
}

func (r *ObjectiveRepository) BySession(sessionID uint) ([]models.Objective, error) {
	if err := requireAll(r.DB, &models.Session{}, "session", []uint{sessionID}); err != nil {
		return nil, err
	}
	var sess models.Session
	if err := r.DB.Preload("Objectives").First(&sess, sessionID).Error; err != nil {
		return nil, err
	}
	return sess.Objectives, nil
}

func (r *ObjectiveRepository) SequencesOf(objectiveID uint) ([]models.Sequence, error) {
	o, err := r.ByID(objectiveID)
	if err != nil {
		return nil, err
	}
	var sequences []models.Sequence
	if err := r.DB.Model(o).Association("Sequences").Find(&sequences); err != nil {
		return nil, err
	}
	return sequences, nil
}

func (r *ObjectiveRepository) SessionsOf(objectiveID uint) ([]models.Session, error) {
	o, err := r.ByID(objectiveID)
	if err != nil {
		return nil, err
	}
	var sessions []models.Session
	if err := r.DB.Model(o).Association("Sessions").Find(&sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
