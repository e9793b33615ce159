package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"webnote/internal/noteid"
	"webnote/internal/service"
)

// setNoCache marks a response as uncacheable. Note content changes on every
// save and the editor always wants the latest bytes.
func setNoCache(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
}

// redirectFresh sends the client to a newly generated note ID.
func redirectFresh(c *fiber.Ctx) error {
	return c.Redirect("/"+noteid.New(), fiber.StatusFound)
}

// hasQuery reports whether the query key is present, even with no value
// (e.g. /abc12?raw).
func hasQuery(c *fiber.Ctx, key string) bool {
	return c.Request().URI().QueryArgs().Has(key)
}

// Root redirects to a fresh random note.
//
// @Summary Open a new note
// @Success 302
// @Router / [get]
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return redirectFresh(c)
	}
}

// GetNote serves a note. With ?raw, or for curl/Wget clients, it returns the
// note's exact bytes as text/plain; an unknown ID reads as empty content.
// With ?render it returns the note rendered from Markdown to HTML. Otherwise
// it serves the editor page.
//
// @Summary Read a note
// @Param note path string true "note ID"
// @Param raw query string false "return raw note bytes"
// @Param render query string false "return note rendered as HTML"
// @Produce html
// @Success 200
// @Router /{note} [get]
func GetNote(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("note")
		if !noteid.Valid(id) {
			return redirectFresh(c)
		}
		setNoCache(c)

		if hasQuery(c, "render") {
			html, err := noteSvc.Render(c.UserContext(), id)
			if err != nil {
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
			c.Type("html", "utf-8")
			return c.Send(html)
		}

		note, err := noteSvc.Get(c.UserContext(), id)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		ua := c.Get(fiber.HeaderUserAgent)
		isCLI := strings.HasPrefix(ua, "curl") || strings.HasPrefix(ua, "Wget")
		if hasQuery(c, "raw") || isCLI {
			c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
			return c.Send(note.Content)
		}

		return renderNotePage(c, note)
	}
}

// SaveNote overwrites a note's content. Form bodies (urlencoded or
// multipart) use the "text" field as the auto-save script sends it; any
// other body is taken verbatim. Empty content deletes the note.
//
// @Summary Save a note
// @Param note path string true "note ID"
// @Param text formData string false "note content"
// @Success 200
// @Failure 403 {object} errorPayload
// @Router /{note} [post]
func SaveNote(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("note")
		if !noteid.Valid(id) {
			return redirectFresh(c)
		}

		content := noteContent(c)
		if err := noteSvc.Save(c.UserContext(), id, content); err != nil {
			switch {
			case errors.Is(err, service.ErrContentTooLarge):
				return writeError(c, fiber.StatusForbidden, "FILE_TOO_LARGE", "content exceeds the size limit")
			case errors.Is(err, service.ErrFileLimitReached):
				return writeError(c, fiber.StatusForbidden, "FILE_LIMIT_REACHED", "file limit reached")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

// noteContent extracts the new note content from the request.
func noteContent(c *fiber.Ctx) []byte {
	ct := c.Get(fiber.HeaderContentType)
	if strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		return []byte(c.FormValue("text"))
	}
	return c.Body()
}
