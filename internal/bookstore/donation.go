package bookstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/dtroode/bookswap-agent/internal/model"
)

type uploadResponse struct {
	Message string `json:"message"`
}

// UploadBook submits a donation as a multipart form. picture may be nil.
func (c *Client) UploadBook(ctx context.Context, id model.Identity, form model.DonationForm, book model.Asset, picture *model.Asset) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"title", form.Title},
		{"author", form.Author},
		{"description", form.Description},
		{"user_id", id.UserID},
		{"price", strconv.FormatFloat(form.Price, 'f', -1, 64)},
		{"quantity", strconv.Itoa(form.Quantity)},
		{"category_id", form.CategoryID},
		{"subcategory_id", form.SubcategoryID},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return "", fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	if err := writeFile(w, "book_file", book); err != nil {
		return "", err
	}
	if picture != nil {
		if err := writeFile(w, "book_picture", *picture); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var resp uploadResponse
	err := c.do(ctx, call{
		operation:   "upload_book",
		method:      http.MethodPost,
		path:        "booksops/uploadbooksdata",
		bearer:      id.Bearer,
		body:        &buf,
		contentType: w.FormDataContentType(),
		mutation:    true,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func writeFile(w *multipart.Writer, field string, asset model.Asset) error {
	part, err := w.CreateFormFile(field, asset.Name)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, asset.Content); err != nil {
		return fmt.Errorf("failed to copy %s: %w", field, err)
	}
	return nil
}
