package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		input           string
		wantContentType string
		wantBody        string
		wantErr         bool
	}{
		{"png data uri", "data:image/png;base64,aGVsbG8=", "image/png", "hello", false},
		{"jpeg data uri", "data:image/jpeg;base64,aGk=", "image/jpeg", "hi", false},
		{"bare base64 defaults to png", "aGk=", "image/png", "hi", false},
		{"missing comma", "data:image/png;base64", "", "", true},
		{"invalid base64", "data:image/png;base64,%%%", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, raw, err := decodeDataURI(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantContentType, contentType)
			assert.Equal(t, tt.wantBody, string(raw))
		})
	}
}

func TestExtensionFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".gif", extensionFor("image/gif"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".png", extensionFor("application/octet-stream"))
}
