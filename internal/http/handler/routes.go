package handler

import (
	"github.com/gofiber/fiber/v2"

	"webnote/internal/service"
	"webnote/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// The wildcard note routes go last; Fiber matches in registration order, so
// every fixed path (health, upload, assets) must be registered before
// "/:note" or it would be read as a note ID.
func RegisterRoutes(app *fiber.App, store storage.Storage, noteSvc service.NoteService, attSvc service.AttachmentService, staticRoot string) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", Root())

	app.Post("/upload", UploadAttachment(attSvc))
	app.Get("/_tmp/:file", ServeAttachment(attSvc))

	for _, asset := range rootAssets {
		app.Get("/"+asset, StaticAsset(staticRoot))
	}
	app.Get("/js/:file", PublicJS(staticRoot))

	app.Get("/:note", GetNote(noteSvc))
	app.Post("/:note", SaveNote(noteSvc))
}
