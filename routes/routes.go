package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/controllers"
	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/repositories"
	"github.com/flashfrancais/backend/services"
	"github.com/flashfrancais/backend/services/ai"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger) {
	users := repositories.NewUserRepository(db)
	progressions := repositories.NewProgressionRepository(db)
	sequences := repositories.NewSequenceRepository(db)
	sessions := repositories.NewSessionRepository(db)
	objectives := repositories.NewObjectiveRepository(db)
	registry := repositories.NewTypeRegistry(db)
	store := services.NewFileStore(cfg, log)
	resources := repositories.NewResourceRepository(db, store, cfg, log)

	// Uploaded files are public once their path is known.
	app.Static(cfg.MediaURLPrefix, cfg.UploadsBaseDir)

	api := app.Group("/api/v1")

	// Auth routes
	authController := controllers.NewAuthController(users, cfg)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/token", authController.Token)

	// Everything below requires a valid token; writes additionally need
	// the teacher (or admin) role.
	requireAuth := middleware.RequireAuth(cfg, users)
	requireTeacher := middleware.RequireTeacher()
	api.Get("/auth/me", requireAuth, authController.Me)

	// Admin routes
	userController := controllers.NewUserController(users)
	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.Get("/users", userController.List)
	admin.Put("/users/:id/active", userController.SetActive)

	// Progression routes
	progressionController := controllers.NewProgressionController(progressions)
	prog := api.Group("/progressions", requireAuth)
	prog.Get("/", progressionController.List)
	prog.Post("/", requireTeacher, progressionController.Create)
	prog.Get("/:id", progressionController.Get)
	prog.Put("/:id", requireTeacher, progressionController.Update)
	prog.Delete("/:id", requireTeacher, progressionController.Delete)

	// Sequence routes
	sequenceController := controllers.NewSequenceController(sequences)
	seq := api.Group("/sequences", requireAuth)
	seq.Post("/", requireTeacher, sequenceController.Create)
	seq.Get("/by_progression/:progression_id", sequenceController.ByProgression)
	seq.Get("/:id", sequenceController.Get)
	seq.Put("/:id", requireTeacher, sequenceController.Update)
	seq.Delete("/:id", requireTeacher, sequenceController.Delete)

	// Session routes
	sessionController := controllers.NewSessionController(sessions)
	sess := api.Group("/sessions", requireAuth)
	sess.Post("/", requireTeacher, sessionController.Create)
	sess.Get("/by_sequence/:sequence_id", sessionController.BySequence)
	sess.Get("/:id", sessionController.Get)
	sess.Put("/:id", requireTeacher, sessionController.Update)
	sess.Delete("/:id", requireTeacher, sessionController.Delete)

	// Objective routes, including the sequence and session links
	objectiveController := controllers.NewObjectiveController(objectives, sequences, sessions)
	obj := api.Group("/objectives", requireAuth)
	obj.Get("/", objectiveController.List)
	obj.Post("/", requireTeacher, objectiveController.Create)
	obj.Get("/by_sequence/:sequence_id", objectiveController.BySequence)
	obj.Get("/by_session/:session_id", objectiveController.BySession)
	obj.Post("/sequences/:sequence_id/objectives/:objective_id", requireTeacher, objectiveController.LinkToSequence)
	obj.Delete("/sequences/:sequence_id/objectives/:objective_id", requireTeacher, objectiveController.UnlinkFromSequence)
	obj.Post("/sessions/:session_id/objectives/:objective_id", requireTeacher, objectiveController.LinkToSession)
	obj.Delete("/sessions/:session_id/objectives/:objective_id", requireTeacher, objectiveController.UnlinkFromSession)
	obj.Get("/:id", objectiveController.Get)
	obj.Put("/:id", requireTeacher, objectiveController.Update)
	obj.Delete("/:id", requireTeacher, objectiveController.Delete)
	obj.Get("/:id/sequences", objectiveController.SequencesOf)
	obj.Get("/:id/sessions", objectiveController.SessionsOf)

	// Resource routes
	resourceController := controllers.NewResourceController(resources)
	res := api.Group("/resources", requireAuth)
	res.Get("/", resourceController.List)
	res.Post("/", requireTeacher, resourceController.Create)
	res.Get("/standalone", resourceController.Standalone)
	res.Get("/by_session/:session_id", resourceController.BySession)
	res.Get("/:id", resourceController.Get)
	res.Put("/:id", requireTeacher, resourceController.Update)
	res.Delete("/:id", requireTeacher, resourceController.Delete)
	res.Put("/:id/sessions", requireTeacher, resourceController.ReplaceSessions)

	// Type registry routes (read only)
	typeController := controllers.NewResourceTypeController(registry)
	rt := api.Group("/resource_types", requireAuth)
	rt.Get("/types", typeController.ListTypes)
	rt.Get("/types/:id", typeController.GetType)
	rt.Get("/types/:id/subtypes", typeController.SubTypesOfType)
	rt.Get("/subtypes", typeController.ListSubTypes)
	rt.Get("/subtypes/:id", typeController.GetSubType)

	// AI routes
	aiController := controllers.NewAIController(ai.NewGateway(cfg, log))
	api.Post("/ai/chat", requireAuth, aiController.Chat)
}
