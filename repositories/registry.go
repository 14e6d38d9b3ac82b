package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/models"
)

// TypeRegistry reads the fixed resource taxonomy. The CRUD API exposes no
// mutation path; rows are installed by the seeding step.
type TypeRegistry struct {
	DB *gorm.DB
}

func NewTypeRegistry(db *gorm.DB) *TypeRegistry {
	return &TypeRegistry{DB: db}
}

func (r *TypeRegistry) Types() ([]models.ResourceType, error) {
	var types []models.ResourceType
	if err := r.DB.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *TypeRegistry) Type(id uint) (*models.ResourceType, error) {
	var t models.ResourceType
	if err := r.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("resource type %d", id)
		}
		return nil, err
	}
	return &t, nil
}

func (r *TypeRegistry) TypeByKey(key string) (*models.ResourceType, error) {
	var t models.ResourceType
	if err := r.DB.Where("key = ?", key).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("resource type %s", key)
		}
		return nil, err
	}
	return &t, nil
}

// SubTypes lists subtypes, optionally filtered by parent type. typeID == 0
// means no filter.
func (r *TypeRegistry) SubTypes(typeID uint) ([]models.ResourceSubType, error) {
	query := r.DB.Order("id")
	if typeID != 0 {
		query = query.Where("type_id = ?", typeID)
	}
	var subs []models.ResourceSubType
	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *TypeRegistry) SubType(id uint) (*models.ResourceSubType, error) {
	var st models.ResourceSubType
	if err := r.DB.First(&st, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("resource sub-type %d", id)
		}
		return nil, err
	}
	return &st, nil
}

func (r *TypeRegistry) SubTypeByKey(key string) (*models.ResourceSubType, error) {
	var st models.ResourceSubType
	if err := r.DB.Where("key = ?", key).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("resource sub-type %s", key)
		}
		return nil, err
	}
	return &st, nil
}
