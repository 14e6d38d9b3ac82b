package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/models"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

type SessionPatch struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Date         *time.Time `json:"date"`
	Duration     *int       `json:"duration"`
	Notes        *string    `json:"notes"`
	SequenceID   *uint      `json:"sequence_id"`
	ObjectiveIDs *[]uint    `json:"objective_ids"`
	ResourceIDs  *[]uint    `json:"resource_ids"`
}

func (r *SessionRepository) ByID(id uint) (*models.Session, error) {
	var s models.Session
	err := r.DB.Preload("Objectives").Preload("Resources").First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("session %d", id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) BySequence(sequenceID uint) ([]models.Session, error) {
	if err := requireAll(r.DB, &models.Sequence{}, "sequence", []uint{sequenceID}); err != nil {
		return nil, err
	}
	var list []models.Session
	if err := r.DB.Preload("Objectives").Where("sequence_id = ?", sequenceID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SessionRepository) Create(s *models.Session) error {
	if err := requireAll(r.DB, &models.User{}, "user", []uint{s.UserID}); err != nil {
		return err
	}
	if err := requireAll(r.DB, &models.Sequence{}, "sequence", []uint{s.SequenceID}); err != nil {
		return err
	}
	return r.DB.Create(s).Error
}

// Update applies the supplied fields. Present ObjectiveIDs or ResourceIDs
// lists fully replace the corresponding links.
func (r *SessionRepository) Update(id uint, patch SessionPatch) (*models.Session, error) {
	s, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if patch.SequenceID != nil {
		if err := requireAll(r.DB, &models.Sequence{}, "sequence", []uint{*patch.SequenceID}); err != nil {
			return nil, err
		}
	}

	var objectives []models.Objective
	if patch.ObjectiveIDs != nil {
		ids := normalizeIDs(*patch.ObjectiveIDs)
		if err := requireAll(r.DB, &models.Objective{}, "objective", ids); err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			if err := r.DB.Where("id IN ?", ids).Find(&objectives).Error; err != nil {
				return nil, err
			}
		}
	}
	var resources []models.Resource
	if patch.ResourceIDs != nil {
		ids := normalizeIDs(*patch.ResourceIDs)
		if err := requireAll(r.DB, &models.Resource{}, "resource", ids); err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			if err := r.DB.Where("id IN ?", ids).Find(&resources).Error; err != nil {
				return nil, err
			}
		}
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.Date != nil {
			updates["date"] = *patch.Date
		}
		if patch.Duration != nil {
			updates["duration"] = *patch.Duration
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if patch.SequenceID != nil {
			updates["sequence_id"] = *patch.SequenceID
		}
		if len(updates) > 0 {
			if err := tx.Model(s).Updates(updates).Error; err != nil {
				return err
			}
		}
		if patch.ObjectiveIDs != nil {
			if err := tx.Model(s).Association("Objectives").Replace(objectives); err != nil {
				return err
			}
		}
		if patch.ResourceIDs != nil {
			if err := tx.Model(s).Association("Resources").Replace(resources); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ByID(id)
}

func (r *SessionRepository) Delete(id uint) error {
	s, err := r.ByID(id)
	if err != nil {
		return err
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(s).Association("Objectives").Clear(); err != nil {
			return err
		}
		if err := tx.Model(s).Association("Resources").Clear(); err != nil {
			return err
		}
		return tx.Delete(s).Error
	})
}

// LinkObjective attaches an objective to a session; linking twice is a no-op.
func (r *SessionRepository) LinkObjective(sessionID, objectiveID uint) error {
	s, err := r.ByID(sessionID)
	if err != nil {
		return err
	}
	var o models.Objective
	if err := r.DB.First(&o, objectiveID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("objective %d", objectiveID)
		}
		return err
	}
	for _, existing := range s.Objectives {
		if existing.ID == objectiveID {
			return nil
		}
	}
	return r.DB.Model(s).Association("Objectives").Append(&o)
}

// UnlinkObjective detaches an objective; unlinking an absent pair is a no-op.
func (r *SessionRepository) UnlinkObjective(sessionID, objectiveID uint) error {
	s, err := r.ByID(sessionID)
	if err != nil {
		return err
	}
	var o models.Objective
	if err := r.DB.First(&o, objectiveID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("objective %d", objectiveID)
		}
		return err
	}
	return r.DB.Model(s).Association("Objectives").Delete(&o)
}

// ReplaceResources sets the resource links to exactly the given set.
func (r *SessionRepository) ReplaceResources(sessionID uint, resourceIDs []uint) (*models.Session, error) {
	return r.Update(sessionID, SessionPatch{ResourceIDs: &resourceIDs})
}
