package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"webnote/internal/model"
	"webnote/internal/noteid"
	"webnote/internal/service"
	serviceMocks "webnote/internal/service/mocks"
	"webnote/internal/storage"
	storeMocks "webnote/internal/storage/mocks"
)

func TestHealthCheck(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	app := fiber.New()
	app.Get("/health", HealthCheck(mStore))

	t.Run("healthy", func(t *testing.T) {
		mStore.On("Ping", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		mStore.On("Ping", mock.Anything).Return(errors.New("save path gone")).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoot(t *testing.T) {
	app := fiber.New()
	app.Get("/", Root())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusFound, resp.StatusCode)

	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/"))
	assert.True(t, noteid.Valid(strings.TrimPrefix(loc, "/")))
	assert.Len(t, strings.TrimPrefix(loc, "/"), noteid.Length)
}

func TestGetNote(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoteService)
	app := fiber.New()
	app.Get("/:note", GetNote(mockSvc))

	t.Run("raw returns exact bytes", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "abc12").
			Return(&model.Note{ID: "abc12", Content: []byte("hello\nworld")}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/abc12?raw", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
		assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "hello\nworld", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("curl gets raw without query param", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "abc12").
			Return(&model.Note{ID: "abc12", Content: []byte("cli")}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/abc12", nil)
		req.Header.Set("User-Agent", "curl/8.5.0")
		resp, _ := app.Test(req)

		assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "cli", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown note reads as empty, not an error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "nosuch").
			Return(&model.Note{ID: "nosuch"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/nosuch?raw", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Empty(t, body)
		mockSvc.AssertExpectations(t)
	})

	t.Run("editor page escapes content", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "abc12").
			Return(&model.Note{ID: "abc12", Content: []byte("<b>bold</b>")}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/abc12", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "webnote · abc12")
		assert.Contains(t, string(body), "&lt;b&gt;bold&lt;/b&gt;")
		assert.NotContains(t, string(body), "<b>bold</b>")
		mockSvc.AssertExpectations(t)
	})

	t.Run("render returns markdown html", func(t *testing.T) {
		mockSvc.On("Render", mock.Anything, "abc12").
			Return([]byte("<h1>Hi</h1>"), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/abc12?render", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "<h1>Hi</h1>", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id redirects to a fresh note", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/a.b", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.True(t, noteid.Valid(strings.TrimPrefix(resp.Header.Get("Location"), "/")))
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "abc12").
			Return(nil, errors.New("disk fail")).Once()

		req := httptest.NewRequest(http.MethodGet, "/abc12?raw", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSaveNote(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoteService)
	app := fiber.New()
	app.Post("/:note", SaveNote(mockSvc))

	t.Run("form field", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, "abc12", []byte("hello")).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/abc12", strings.NewReader("text=hello"))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("raw body", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, "abc12", []byte("plain bytes")).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/abc12", strings.NewReader("plain bytes"))
		req.Header.Set("Content-Type", "text/plain")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty form field deletes", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, "abc12", []byte{}).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/abc12", strings.NewReader("text="))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("content too large", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, "abc12", mock.Anything).
			Return(service.ErrContentTooLarge).Once()

		req := httptest.NewRequest(http.MethodPost, "/abc12", strings.NewReader("text=huge"))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "FILE_TOO_LARGE", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("file limit reached", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, "abc12", mock.Anything).
			Return(service.ErrFileLimitReached).Once()

		req := httptest.NewRequest(http.MethodPost, "/abc12", strings.NewReader("text=x"))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "FILE_LIMIT_REACHED", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id redirects without saving", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/a.b", strings.NewReader("text=x"))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, "abc12", mock.Anything).
			Return(errors.New("disk fail")).Once()

		req := httptest.NewRequest(http.MethodPost, "/abc12", strings.NewReader("text=x"))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func multipartFile(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	part.Write([]byte(content))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadAttachment(t *testing.T) {
	mockSvc := new(serviceMocks.MockAttachmentService)
	app := fiber.New()
	app.Post("/upload", UploadAttachment(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, ct := multipartFile(t, "photo.png", "binary")

		expected := &model.Attachment{
			Name:    "1700000000_photo.png",
			URL:     "/_tmp/1700000000_photo.png",
			IsImage: true,
		}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "photo.png", int64(6)).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Attachment
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.URL, result.URL)
		assert.True(t, result.IsImage)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("over size limit", func(t *testing.T) {
		body, ct := multipartFile(t, "big.bin", "xxxxxxxx")
		mockSvc.On("Upload", mock.Anything, mock.Anything, "big.bin", mock.Anything).
			Return(nil, service.ErrContentTooLarge).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("file limit reached", func(t *testing.T) {
		body, ct := multipartFile(t, "extra.txt", "x")
		mockSvc.On("Upload", mock.Anything, mock.Anything, "extra.txt", mock.Anything).
			Return(nil, service.ErrFileLimitReached).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_LIMIT_REACHED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		body, ct := multipartFile(t, "x.txt", "x")
		mockSvc.On("Upload", mock.Anything, mock.Anything, "x.txt", mock.Anything).
			Return(nil, errors.New("disk full")).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestServeAttachment(t *testing.T) {
	mockSvc := new(serviceMocks.MockAttachmentService)
	app := fiber.New()
	app.Get("/_tmp/:file", ServeAttachment(mockSvc))

	t.Run("success", func(t *testing.T) {
		rc := io.NopCloser(strings.NewReader("data"))
		info := storage.FileInfo{Name: "1700000000_x.txt", Size: 4, ContentType: "text/plain; charset=utf-8"}
		mockSvc.On("Open", mock.Anything, "1700000000_x.txt").Return(rc, info, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/_tmp/1700000000_x.txt", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
		assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "data", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Open", mock.Anything, "nope.bin").
			Return(nil, storage.FileInfo{}, storage.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/_tmp/nope.bin", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mStore := new(storeMocks.MockStorage)
	mockNotes := new(serviceMocks.MockNoteService)
	mockAtt := new(serviceMocks.MockAttachmentService)
	RegisterRoutes(app, mStore, mockNotes, mockAtt, t.TempDir())

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("fixed routes win over the note wildcard", func(t *testing.T) {
		mStore.On("Ping", mock.Anything).Return(nil).Once()

		// "health" would be a valid note ID; the fixed route must match first.
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mStore.AssertExpectations(t)
	})

	t.Run("missing static asset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/styles.css", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
