package proofs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/config"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        []byte
		max         int64
		want        string
		wantErr     bool
	}{
		{"explicit png", "image/png", pngHeader, 1 << 20, "image/png", false},
		{"params are dropped", "Image/JPEG; charset=binary", []byte("x"), 1 << 20, "image/jpeg", false},
		{"sniffed png", "", pngHeader, 1 << 20, "image/png", false},
		{"pdf", "application/pdf", []byte("%PDF-1.4"), 1 << 20, "application/pdf", false},
		{"empty", "image/png", nil, 1 << 20, "", true},
		{"too large", "image/png", pngHeader, 4, "", true},
		{"unsupported", "text/plain", []byte("hello"), 1 << 20, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(tt.contentType, tt.data, tt.max)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInlinePut(t *testing.T) {
	s := NewInline(1 << 20)

	ref, err := s.Put(context.Background(), "exp-1", "image/png", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,YWJj", ref)

	_, err = s.Put(context.Background(), "exp-1", "text/html", []byte("<p>"))
	assert.Error(t, err)
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "proofs/exp-1/abc.pdf", objectName("exp-1", "abc", "application/pdf"))
	assert.True(t, strings.HasSuffix(objectName("exp-1", "abc", "image/jpeg"), ".jpg"))
}

func TestNewMinIO(t *testing.T) {
	// Construction does not contact the server.
	m, err := NewMinIO(config.MinIOConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "proofs",
	}, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "proofs", m.bucket)

	// Validation happens before any network call.
	_, err = m.Put(context.Background(), "exp-1", "text/plain", []byte("x"))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
