// Package proofs stores payment receipts and returns the reference kept on
// the expense.
package proofs

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/acerto/acerto/internal/apperr"
)

// Store persists a receipt and returns a reference that can be shown to
// group members.
type Store interface {
	Put(ctx context.Context, expenseID, contentType string, data []byte) (string, error)
}

var allowedTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// Check validates a receipt before upload and returns its normalized
// content type. An empty contentType is sniffed from data.
func Check(contentType string, data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", apperr.Validation("Selecione um comprovante.")
	}
	if int64(len(data)) > maxBytes {
		return "", apperr.Validation("O comprovante excede o tamanho máximo permitido.")
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "" {
		ct, _, _ = strings.Cut(http.DetectContentType(data), ";")
	}
	if _, ok := allowedTypes[ct]; !ok {
		return "", apperr.Validation("Formato de comprovante não suportado.")
	}
	return ct, nil
}

var _ Store = (*Inline)(nil)

// Inline encodes receipts as data URLs so the reference carries the file.
type Inline struct {
	MaxBytes int64
}

func NewInline(maxBytes int64) *Inline {
	return &Inline{MaxBytes: maxBytes}
}

func (s *Inline) Put(ctx context.Context, expenseID, contentType string, data []byte) (string, error) {
	ct, err := Check(contentType, data, s.MaxBytes)
	if err != nil {
		return "", err
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
