package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/models"
)

// InitDB opens the Postgres connection, migrates the schema and seeds the
// reference data.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.Env == "production" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table, including the three junction tables
// derived from the many2many tags.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Progression{},
		&models.Sequence{},
		&models.Session{},
		&models.Objective{},
		&models.ResourceType{},
		&models.ResourceSubType{},
		&models.Resource{},
	)
}

// Seed installs the fixed resource taxonomy and a default admin account.
// It is idempotent: existing rows are left untouched.
func Seed(db *gorm.DB) error {
	types := []struct {
		key, value string
		subTypes   []struct{ key, value string }
	}{
		{"EXERCICE", "Exercice", []struct{ key, value string }{
			{"QCM", "QCM"},
			{"DICTEE", "DICTEE"},
			{"QOEUVRE", "Questions sur une oeuvre"},
			{"QTEXTE", "Questions sur un texte"},
		}},
		{"MULTIMEDIA", "Multimédia", nil},
		{"LECON", "Leçon", []struct{ key, value string }{
			{"FORMAT1", "Format court"},
			{"FORMAT2", "Format long"},
		}},
		{"OEUVRE", "Oeuvre", []struct{ key, value string }{
			{"TEXTE", "Extrait de texte"},
			{"OEUVRE", "Oeuvre complète"},
		}},
	}

	for _, t := range types {
		var rt models.ResourceType
		err := db.Where("key = ?", t.key).First(&rt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rt = models.ResourceType{Key: t.key, Value: t.value}
			if err := db.Create(&rt).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		for _, st := range t.subTypes {
			var sub models.ResourceSubType
			err := db.Where("key = ?", st.key).First(&sub).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sub = models.ResourceSubType{Key: st.key, Value: st.value, TypeID: rt.ID}
				if err := db.Create(&sub).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
	}

	return seedAdmin(db)
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:          "admin@flashfrancais.com",
		FirstName:      "Administrateur",
		LastName:       "Système",
		HashedPassword: string(hashed),
		Role:           models.RoleAdmin,
		IsActive:       true,
	}
	return db.Create(&admin).Error
}
