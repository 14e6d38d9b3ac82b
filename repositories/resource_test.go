package repositories

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/models"
	"github.com/flashfrancais/backend/services"
)

func textUpload(name, content string) *services.Upload {
	return &services.Upload{
		Name: name,
		MIME: "text/plain",
		Size: int64(len(content)),
		Data: bytes.NewReader([]byte(content)),
	}
}

func TestResourceCreateWithFile(t *testing.T) {
	db := newTestDB(t)
	repo, cfg := newResourceRepo(t, db)
	user := createTestUser(t, db, "file@test.fr")
	typeID, subTypeID := taxonomy(t, db, "EXERCICE", "QCM")

	res, err := repo.Create(CreateResourceInput{
		Title:      "Dictée n°3",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceFile,
		UserID:     user.ID,
	}, textUpload("dictée n°3.txt", "le contenu"))
	require.NoError(t, err)

	assert.Equal(t, models.SourceFile, res.SourceType)
	require.NotNil(t, res.FileName)
	require.NotNil(t, res.FilePath)
	assert.Nil(t, res.Content)
	assert.Equal(t, int64(len("le contenu")), *res.FileSize)
	assert.Equal(t, "text/plain", *res.FileType)

	data, err := os.ReadFile(filepath.Join(cfg.UploadsBaseDir, *res.FilePath))
	require.NoError(t, err)
	assert.Equal(t, "le contenu", string(data))
}

func TestResourceCreateFileRequiresUpload(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "nofile@test.fr")
	typeID, subTypeID := taxonomy(t, db, "EXERCICE", "QCM")

	_, err := repo.Create(CreateResourceInput{
		Title:      "Sans fichier",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceFile,
		UserID:     user.ID,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestResourceCreateWithAIContent(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "ai@test.fr")
	typeID, subTypeID := taxonomy(t, db, "LECON", "FORMAT1")

	content := "Le passé simple s'emploie..."
	res, err := repo.Create(CreateResourceInput{
		Title:      "Leçon générée",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceAI,
		Content:    &content,
		UserID:     user.ID,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.SourceAI, res.SourceType)
	require.NotNil(t, res.Content)
	assert.Equal(t, content, *res.Content)
	assert.Nil(t, res.FileName)
	assert.Nil(t, res.FilePath)
	assert.Nil(t, res.FileSize)
	assert.Nil(t, res.FileType)
}

func TestResourceCreateAIIgnoresStrayUpload(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "stray@test.fr")
	typeID, subTypeID := taxonomy(t, db, "LECON", "FORMAT1")

	res, err := repo.Create(CreateResourceInput{
		Title:      "IA avec fichier parasite",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceAI,
		UserID:     user.ID,
	}, textUpload("parasite.txt", "x"))
	require.NoError(t, err)
	assert.Nil(t, res.FilePath)
	require.NotNil(t, res.Content)
	assert.Equal(t, "", *res.Content)
}

func TestResourceCreateRejectsUnknownSourceType(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "badsource@test.fr")
	typeID, subTypeID := taxonomy(t, db, "EXERCICE", "QCM")

	_, err := repo.Create(CreateResourceInput{
		Title:      "Mauvaise source",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: "url",
		UserID:     user.ID,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestResourceCreateRejectsSubTypeOfAnotherType(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "mismatch@test.fr")
	typeID, _ := taxonomy(t, db, "EXERCICE", "QCM")
	_, wrongSubTypeID := taxonomy(t, db, "LECON", "FORMAT1")

	_, err := repo.Create(CreateResourceInput{
		Title:      "Hiérarchie incohérente",
		TypeID:     typeID,
		SubTypeID:  wrongSubTypeID,
		SourceType: models.SourceAI,
		UserID:     user.ID,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestResourceCreateRejectsOversizedUpload(t *testing.T) {
	db := newTestDB(t)
	repo, cfg := newResourceRepo(t, db)
	cfg.MaxUploadSize = 4
	user := createTestUser(t, db, "big@test.fr")
	typeID, subTypeID := taxonomy(t, db, "EXERCICE", "QCM")

	_, err := repo.Create(CreateResourceInput{
		Title:      "Trop gros",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceFile,
		UserID:     user.ID,
	}, textUpload("big.txt", "cinq octets et plus"))
	assert.ErrorIs(t, err, apperrors.ErrTooLarge)
}

func TestResourceCreateWithSessionLinks(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "links@test.fr")
	_, _, sess := createHierarchy(t, db, user.ID)
	typeID, subTypeID := taxonomy(t, db, "OEUVRE", "TEXTE")

	res, err := repo.Create(CreateResourceInput{
		Title:      "Extrait des Misérables",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceFile,
		SessionIDs: []uint{sess.ID, sess.ID}, // duplicates collapse
		UserID:     user.ID,
	}, textUpload("extrait.txt", "Jean Valjean"))
	require.NoError(t, err)
	assert.Equal(t, []uint{sess.ID}, res.SessionIDs())
}

func TestResourceCreateUnknownSessionListsMissingIDs(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "missing@test.fr")
	typeID, subTypeID := taxonomy(t, db, "OEUVRE", "TEXTE")

	_, err := repo.Create(CreateResourceInput{
		Title:      "Séance fantôme",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceAI,
		SessionIDs: []uint{404, 405},
		UserID:     user.ID,
	}, nil)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "405")
}

func TestResourceUpdateContentSwitchesToAI(t *testing.T) {
	db := newTestDB(t)
	repo, cfg := newResourceRepo(t, db)
	user := createTestUser(t, db, "switch@test.fr")
	typeID, subTypeID := taxonomy(t, db, "EXERCICE", "QCM")

	res, err := repo.Create(CreateResourceInput{
		Title:      "Fiche",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceFile,
		UserID:     user.ID,
	}, textUpload("fiche.txt", "v1"))
	require.NoError(t, err)
	oldPath := filepath.Join(cfg.UploadsBaseDir, *res.FilePath)

	content := "version générée"
	updated, err := repo.Update(res.ID, ResourcePatch{Content: &content}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.SourceAI, updated.SourceType)
	require.NotNil(t, updated.Content)
	assert.Equal(t, content, *updated.Content)
	assert.Nil(t, updated.FileName)
	assert.Nil(t, updated.FilePath)

	_, statErr := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(statErr), "stale file should be removed")
}

func TestResourceUpdateUploadSwitchesToFile(t *testing.T) {
	db := newTestDB(t)
	repo, cfg := newResourceRepo(t, db)
	user := createTestUser(t, db, "tofile@test.fr")
	typeID, subTypeID := taxonomy(t, db, "LECON", "FORMAT2")

	content := "texte initial"
	res, err := repo.Create(CreateResourceInput{
		Title:      "Leçon",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceAI,
		Content:    &content,
		UserID:     user.ID,
	}, nil)
	require.NoError(t, err)

	updated, err := repo.Update(res.ID, ResourcePatch{}, textUpload("leçon.pdf", "pdf bytes"))
	require.NoError(t, err)

	assert.Equal(t, models.SourceFile, updated.SourceType)
	assert.Nil(t, updated.Content)
	require.NotNil(t, updated.FilePath)
	_, statErr := os.Stat(filepath.Join(cfg.UploadsBaseDir, *updated.FilePath))
	assert.NoError(t, statErr)
}

func TestResourceUpdateNewFileRemovesOldFile(t *testing.T) {
	db := newTestDB(t)
	repo, cfg := newResourceRepo(t, db)
	user := createTestUser(t, db, "refile@test.fr")
	typeID, subTypeID := taxonomy(t, db, "EXERCICE", "DICTEE")

	res, err := repo.Create(CreateResourceInput{
		Title:      "Dictée",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceFile,
		UserID:     user.ID,
	}, textUpload("v1.txt", "premier jet"))
	require.NoError(t, err)
	oldPath := filepath.Join(cfg.UploadsBaseDir, *res.FilePath)

	updated, err := repo.Update(res.ID, ResourcePatch{}, textUpload("v2.txt", "second jet"))
	require.NoError(t, err)
	assert.NotEqual(t, *res.FilePath, *updated.FilePath)

	_, statErr := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestResourceReplaceSessionsEmptyDetachesAll(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "detach@test.fr")
	_, _, sess := createHierarchy(t, db, user.ID)
	typeID, subTypeID := taxonomy(t, db, "OEUVRE", "OEUVRE")

	res, err := repo.Create(CreateResourceInput{
		Title:      "Oeuvre complète",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceAI,
		SessionIDs: []uint{sess.ID},
		UserID:     user.ID,
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)

	updated, err := repo.ReplaceSessions(res.ID, []uint{})
	require.NoError(t, err)
	assert.Empty(t, updated.Sessions)
}

func TestResourceDeleteRemovesFileAndLinks(t *testing.T) {
	db := newTestDB(t)
	repo, cfg := newResourceRepo(t, db)
	user := createTestUser(t, db, "delete@test.fr")
	_, _, sess := createHierarchy(t, db, user.ID)
	typeID, subTypeID := taxonomy(t, db, "EXERCICE", "QTEXTE")

	res, err := repo.Create(CreateResourceInput{
		Title:      "Questions",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceFile,
		SessionIDs: []uint{sess.ID},
		UserID:     user.ID,
	}, textUpload("questions.txt", "1. Qui parle ?"))
	require.NoError(t, err)
	storedPath := filepath.Join(cfg.UploadsBaseDir, *res.FilePath)

	require.NoError(t, repo.Delete(res.ID))

	_, err = repo.ByID(res.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var count int64
	require.NoError(t, db.Table("session_resource").Where("resource_id = ?", res.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, statErr := os.Stat(storedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestResourceStandaloneAndBySession(t *testing.T) {
	db := newTestDB(t)
	repo, _ := newResourceRepo(t, db)
	user := createTestUser(t, db, "lists@test.fr")
	_, _, sess := createHierarchy(t, db, user.ID)
	typeID, subTypeID := taxonomy(t, db, "OEUVRE", "TEXTE")

	linked, err := repo.Create(CreateResourceInput{
		Title:      "Lié",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceAI,
		SessionIDs: []uint{sess.ID},
		UserID:     user.ID,
	}, nil)
	require.NoError(t, err)

	loose, err := repo.Create(CreateResourceInput{
		Title:      "Isolé",
		TypeID:     typeID,
		SubTypeID:  subTypeID,
		SourceType: models.SourceAI,
		UserID:     user.ID,
	}, nil)
	require.NoError(t, err)

	bySession, err := repo.BySession(sess.ID)
	require.NoError(t, err)
	require.Len(t, bySession, 1)
	assert.Equal(t, linked.ID, bySession[0].ID)

	standalone, err := repo.Standalone(user.ID)
	require.NoError(t, err)
	require.Len(t, standalone, 1)
	assert.Equal(t, loose.ID, standalone[0].ID)
}
