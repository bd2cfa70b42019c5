package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScanDirectory(t *testing.T) {
	t.Run("existing directory passes", func(t *testing.T) {
		assert.NoError(t, ValidateScanDirectory(t.TempDir()))
	})

	t.Run("missing path fails", func(t *testing.T) {
		err := ValidateScanDirectory(filepath.Join(t.TempDir(), "does-not-exist"))
		assert.True(t, errors.Is(err, ErrInvalidDirectory))
	})

	t.Run("empty path fails", func(t *testing.T) {
		err := ValidateScanDirectory("")
		assert.True(t, errors.Is(err, ErrInvalidDirectory))
	})

	t.Run("regular file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		err := ValidateScanDirectory(path)
		assert.True(t, errors.Is(err, ErrInvalidDirectory))
	})
}

func TestValidateScanURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https url", url: "https://example.com", wantErr: false},
		{name: "http url", url: "http://example.com/page", wantErr: false},
		{name: "empty", url: "", wantErr: true},
		{name: "no scheme", url: "example.com", wantErr: true},
		{name: "wrong scheme", url: "ftp://example.com", wantErr: true},
		{name: "scheme only", url: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScanURL(tt.url)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidURL))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseMaxFileSize(t *testing.T) {
	size, err := ParseMaxFileSize("10MB")
	require.NoError(t, err)
	assert.Equal(t, int64(10*1000*1000), size)

	_, err = ParseMaxFileSize("not-a-size")
	assert.Error(t, err)
}
