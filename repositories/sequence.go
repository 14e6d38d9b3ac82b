package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/models"
)

type SequenceRepository struct {
	DB *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{DB: db}
}

type SequencePatch struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	ProgressionID *uint   `json:"progression_id"`
	ObjectiveIDs  *[]uint `json:"objective_ids"`
}

func (r *SequenceRepository) ByID(id uint) (*models.Sequence, error) {
	var s models.Sequence
	if err := r.DB.Preload("Objectives").First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("sequence %d", id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SequenceRepository) ByProgression(progressionID uint) ([]models.Sequence, error) {
	if err := requireAll(r.DB, &models.Progression{}, "progression", []uint{progressionID}); err != nil {
		return nil, err
	}
	var list []models.Sequence
	if err := r.DB.Preload("Objectives").Where("progression_id = ?", progressionID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SequenceRepository) Create(s *models.Sequence) error {
	if err := requireAll(r.DB, &models.User{}, "user", []uint{s.UserID}); err != nil {
		return err
	}
	if err := requireAll(r.DB, &models.Progression{}, "progression", []uint{s.ProgressionID}); err != nil {
		return err
	}
	return r.DB.Create(s).Error
}

// Update applies the supplied fields. A present ObjectiveIDs list fully
// replaces the objective links; an empty list detaches all of them.
func (r *SequenceRepository) Update(id uint, patch SequencePatch) (*models.Sequence, error) {
	s, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if patch.ProgressionID != nil {
		if err := requireAll(r.DB, &models.Progression{}, "progression", []uint{*patch.ProgressionID}); err != nil {
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

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.ProgressionID != nil {
			updates["progression_id"] = *patch.ProgressionID
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
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ByID(id)
}

func (r *SequenceRepository) Delete(id uint) error {
	s, err := r.ByID(id)
	if err != nil {
		return err
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(s).Association("Objectives").Clear(); err != nil {
			return err
		}
		return tx.Delete(s).Error
	})
}

// LinkObjective attaches an objective to a sequence; linking twice is a no-op.
func (r *SequenceRepository) LinkObjective(sequenceID, objectiveID uint) error {
	s, err := r.ByID(sequenceID)
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
func (r *SequenceRepository) UnlinkObjective(sequenceID, objectiveID uint) error {
	s, err := r.ByID(sequenceID)
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

// ReplaceObjectives sets the objective links to exactly the given set.
func (r *SequenceRepository) ReplaceObjectives(sequenceID uint, objectiveIDs []uint) (*models.Sequence, error) {
	return r.Update(sequenceID, SequencePatch{ObjectiveIDs: &objectiveIDs})
}
