package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/services"
	"github.com/flashfrancais/backend/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))
	require.NoError(t, utils.Seed(db))
	return db
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:                      "test",
		SecretKey:                "testsecret",
		AccessTokenExpireMinutes: 30,
		AIProvider:               "openai",
		AITimeout:                time.Second,
		MaxUploadSize:            1 << 20,
		AllowedMIMETypes:         []string{"text/plain", "application/pdf", "image/png"},
		UploadsBaseDir:           t.TempDir(),
		MediaURLPrefix:           "/media/uploads",
	}
}

func newResourceRepo(t *testing.T, db *gorm.DB) (*ResourceRepository, *config.Config) {
	t.Helper()
	cfg := newTestConfig(t)
	log := zap.NewNop().Sugar()
	store := services.NewFileStore(cfg, log)
	return NewResourceRepository(db, store, cfg, log), cfg
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := models.User{
		Email:          email,
		FirstName:      "Marie",
		LastName:       "Dupont",
		HashedPassword: "not-a-real-hash",
		Role:           models.RoleTeacher,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

// createHierarchy seeds one progression, sequence and session for the user.
func createHierarchy(t *testing.T, db *gorm.DB, userID uint) (*models.Progression, *models.Sequence, *models.Session) {
	t.Helper()
	p := models.Progression{Title: "Quatrième", UserID: userID}
	require.NoError(t, db.Create(&p).Error)
	seq := models.Sequence{Title: "La poésie lyrique", UserID: userID, ProgressionID: p.ID}
	require.NoError(t, db.Create(&seq).Error)
	sess := models.Session{Title: "Séance 1", Date: time.Now(), Duration: 55, UserID: userID, SequenceID: seq.ID}
	require.NoError(t, db.Create(&sess).Error)
	return &p, &seq, &sess
}

func taxonomy(t *testing.T, db *gorm.DB, typeKey, subTypeKey string) (uint, uint) {
	t.Helper()
	registry := NewTypeRegistry(db)
	rt, err := registry.TypeByKey(typeKey)
	require.NoError(t, err)
	st, err := registry.SubTypeByKey(subTypeKey)
	require.NoError(t, err)
	return rt.ID, st.ID
}
