package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// multipartState decodes the JSON "state" field of a multipart step submission
func multipartState(form *multipart.Form) (*domain.OrderDraft, error) {
	raw := firstValue(form, "state")
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var draft domain.OrderDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	return &draft, nil
}

// multipartJSON decodes the JSON form field name into out
func multipartJSON(form *multipart.Form, name string, out interface{}) error {
	raw := firstValue(form, name)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func multipartBool(form *multipart.Form, name string) bool {
	v, _ := strconv.ParseBool(firstValue(form, name))
	return v
}

func firstValue(form *multipart.Form, name string) string {
	if vs := form.Value[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// document reads the file attached under field. Reads stop one byte past the size
// limit so an oversized file is still reported as too large.
func document(form *multipart.Form, field string) (*service.Document, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &service.Document{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func bindMultipart(c *gin.Context) (*multipart.Form, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return form, true
}
