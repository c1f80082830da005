package filestorage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

func newStore(t *testing.T) (*LocalPhotoStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "photos")
	store, err := NewLocalPhotoStore(LocalConfig{
		Dir:           dir,
		BaseURL:       "/photos/",
		DefaultMale:   "/static/male.png",
		DefaultFemale: "/static/female.png",
		Size:          32,
	})
	require.NoError(t, err)
	return store, dir
}

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf
}

func TestLocalPhotoStore_DefaultsPerGender(t *testing.T) {
	store, _ := newStore(t)

	assert.False(t, store.Has(1001))
	assert.Equal(t, "/static/female.png", store.URL(1001, domain.GenderFemale))
	assert.Equal(t, "/static/male.png", store.URL(1001, domain.GenderMale))
	assert.Equal(t, "/static/male.png", store.URL(1001, domain.NormalizeGender("other")))
}

func TestLocalPhotoStore_SaveNormalisesAndReplaces(t *testing.T) {
	store, dir := newStore(t)

	url, err := store.Save(1001, pngBytes(t, 120, 60))
	require.NoError(t, err)
	assert.Equal(t, "/photos/1001.png", url)
	assert.True(t, store.Has(1001))
	assert.Equal(t, url, store.URL(1001, domain.GenderFemale))

	f, err := os.Open(filepath.Join(dir, "1001.png"))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 32, cfg.Height)

	_, err = store.Save(1001, pngBytes(t, 10, 10))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasSuffix(entries[0].Name(), ".tmp"))
}

func TestLocalPhotoStore_RejectsNonImage(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Save(7, strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.False(t, store.Has(7))
}

func TestLocalPhotoStore_Delete(t *testing.T) {
	store, _ := newStore(t)

	assert.NoError(t, store.Delete(55))

	_, err := store.Save(55, pngBytes(t, 40, 40))
	require.NoError(t, err)
	require.NoError(t, store.Delete(55))
	assert.False(t, store.Has(55))
}
