package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// Product mutations arrive as multipart/form-data so text fields and image
// files travel in one request. The helpers below pull typed values out of
// the form; presence matters for partial updates, so each returns an ok
// flag alongside the value.

func formValue(c echo.Context, name string) (string, bool) {
	params, err := c.FormParams()
	if err != nil {
		return "", false
	}
	values, ok := params[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}

func formFloat(c echo.Context, name string) (float64, bool, error) {
	raw, ok := formValue(c, name)
	if !ok || raw == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return f, true, nil
}

// structuredMinimumOrder is the JSON object form of the minimum-order field.
type structuredMinimumOrder struct {
	Value   float64 `json:"value"`
	Enabled *bool   `json:"enabled"`
}

// parseMinimumOrder accepts either a bare number ("5") or a JSON object
// ('{"value":5,"enabled":false}') in the minimum_order_quantity field.
func parseMinimumOrder(c echo.Context) (*ports.MinimumOrderInput, error) {
	raw, ok := formValue(c, "minimum_order_quantity")
	if !ok || raw == "" {
		return nil, nil
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return &ports.MinimumOrderInput{Value: f}, nil
	}

	var structured structuredMinimumOrder
	if err := json.Unmarshal([]byte(raw), &structured); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "minimum_order_quantity must be a number or an object")
	}
	return &ports.MinimumOrderInput{Value: structured.Value, Enabled: structured.Enabled}, nil
}

// formImages buffers the uploaded image files, if any.
func formImages(c echo.Context) ([]ports.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		return nil, nil
	}

	files := make([]ports.FileUpload, 0, len(headers))
	for _, fh := range headers {
		file, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
