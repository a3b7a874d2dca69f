package upload

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainerrors "bizdir/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newMultipartContext(t *testing.T, field, filename string, content []byte) echo.Context {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("businessName", "Cafe"))
	if filename != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/businesses", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestImage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		maxSize  int64
		wantErr  error
		wantNil  bool
	}{
		{
			name:     "png accepted",
			filename: "logo.PNG",
			content:  pngHeader,
			maxSize:  1 << 20,
		},
		{
			name:    "no file",
			maxSize: 1 << 20,
			wantNil: true,
		},
		{
			name:     "text extension rejected",
			filename: "notes.txt",
			content:  pngHeader,
			maxSize:  1 << 20,
			wantErr:  domainerrors.ErrInvalidImage,
		},
		{
			name:     "image extension with text content rejected",
			filename: "fake.png",
			content:  []byte("just some text pretending to be an image"),
			maxSize:  1 << 20,
			wantErr:  domainerrors.ErrInvalidImage,
		},
		{
			name:     "too large",
			filename: "big.png",
			content:  append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...),
			maxSize:  32,
			wantErr:  domainerrors.ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMultipartContext(t, FieldProfileImage, tt.filename, tt.content)

			img, err := Image(c, FieldProfileImage, tt.maxSize)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, img)

				return
			}

			require.NotNil(t, img)
			assert.Equal(t, tt.filename, img.Filename)
			assert.Equal(t, "image/png", img.ContentType)
			assert.Equal(t, int64(len(tt.content)), img.Size)

			data, err := io.ReadAll(img.Data)
			require.NoError(t, err)
			assert.Equal(t, tt.content, data)
		})
	}
}

func TestIsMultipart(t *testing.T) {
	c := newMultipartContext(t, FieldProfileImage, "", nil)
	assert.True(t, IsMultipart(c))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	assert.False(t, IsMultipart(echo.New().NewContext(req, httptest.NewRecorder())))
}
