package handler

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// rootAssets are the frontend files served directly from STATIC_ROOT.
var rootAssets = []string{
	"styles.css",
	"clippy.svg",
	"favicon.ico",
	"script.js",
	"copy.js",
	"markdown.js",
	"history.js",
}

// StaticAsset serves the request path as a file under staticRoot. Only the
// fixed rootAssets routes point here, so the path is never user-controlled.
func StaticAsset(staticRoot string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rel := strings.TrimPrefix(c.Path(), "/")
		setNoCache(c)
		return c.SendFile(filepath.Join(staticRoot, rel))
	}
}

// PublicJS serves bundled third-party scripts from STATIC_ROOT/public/js.
func PublicJS(staticRoot string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := filepath.Base(c.Params("file"))
		if name == "." || name == string(filepath.Separator) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
		}
		setNoCache(c)
		return c.SendFile(filepath.Join(staticRoot, "public", "js", name))
	}
}
