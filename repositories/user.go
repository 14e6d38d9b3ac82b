package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/models"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %d", id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user with email %s", email)
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetActive flips the account's active flag. Deactivated users keep their
// rows but fail the middleware check on their next request.
func (r *UserRepository) SetActive(id uint, active bool) (*models.User, error) {
	user, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.Model(user).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	return r.ByID(id)
}

func (r *UserRepository) Create(user *models.User) error {
	if err := r.DB.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.Conflictf("email %s is already registered", user.Email)
		}
		return err
	}
	return nil
}
