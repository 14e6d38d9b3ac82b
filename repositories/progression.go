package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/models"
)

type ProgressionRepository struct {
	DB *gorm.DB
}

func NewProgressionRepository(db *gorm.DB) *ProgressionRepository {
	return &ProgressionRepository{DB: db}
}

type ProgressionPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r *ProgressionRepository) ByID(id uint) (*models.Progression, error) {
	var p models.Progression
	if err := r.DB.Preload("Sequences").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("progression %d", id)
		}
		return nil, err
	}
	return &p, nil
}

// ByUser lists the progressions owned by one user.
func (r *ProgressionRepository) ByUser(userID uint) ([]models.Progression, error) {
	var list []models.Progression
	if err := r.DB.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProgressionRepository) Create(p *models.Progression) error {
	if err := requireAll(r.DB, &models.User{}, "user", []uint{p.UserID}); err != nil {
		return err
	}
	return r.DB.Create(p).Error
}

// Update applies only the supplied fields. Ownership is immutable.
func (r *ProgressionRepository) Update(id uint, patch ProgressionPatch) (*models.Progression, error) {
	p, err := r.ByID(id)
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
		if err := r.DB.Model(p).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.ByID(id)
}

func (r *ProgressionRepository) Delete(id uint) error {
	p, err := r.ByID(id)
	if err != nil {
		return err
	}
	return r.DB.Delete(p).Error
}
