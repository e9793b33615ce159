package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"webnote/internal/service"
	"webnote/internal/storage"
)

// UploadAttachment stores an uploaded file (multipart field "file") and
// returns its access URL.
//
// @Summary Upload an attachment
// @Accept multipart/form-data
// @Param file formData file true "file to store"
// @Produce json
// @Success 200 {object} model.Attachment
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Router /upload [post]
func UploadAttachment(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		att, err := attSvc.Upload(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrContentTooLarge):
				return writeError(c, fiber.StatusForbidden, "FILE_TOO_LARGE", "file exceeds the size limit")
			case errors.Is(err, service.ErrFileLimitReached):
				return writeError(c, fiber.StatusForbidden, "FILE_LIMIT_REACHED", "file limit reached")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(att)
	}
}

// ServeAttachment streams a stored upload by name.
//
// @Summary Download an attachment
// @Param file path string true "stored file name"
// @Success 200
// @Failure 404 {object} errorPayload
// @Router /_tmp/{file} [get]
func ServeAttachment(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("file")
		rc, info, err := attSvc.Open(c.UserContext(), name)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		setNoCache(c)
		c.Set(fiber.HeaderContentType, info.ContentType)
		// SendStream closes rc once the body has been written.
		return c.SendStream(rc, int(info.Size))
	}
}
