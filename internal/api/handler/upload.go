package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// maxUploadBytes caps a single media file. Requests beyond it fail fast
// instead of buffering unbounded payloads.
const maxUploadBytes = 10 << 20 // 10 MiB

// readUpload buffers one multipart file into a ports.FileUpload so the
// service layer can fan uploads out concurrently.
func readUpload(fh *multipart.FileHeader) (ports.FileUpload, error) {
	if fh.Size > maxUploadBytes {
		return ports.FileUpload{}, echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return ports.FileUpload{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return ports.FileUpload{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	if int64(len(content)) > maxUploadBytes {
		return ports.FileUpload{}, echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return ports.FileUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	}, nil
}
