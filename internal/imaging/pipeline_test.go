package imaging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu   sync.Mutex
	puts []fakePut
	err  error
}

type fakePut struct {
	key          string
	contentType  string
	cacheControl string
	size         int
}

func (f *fakeStore) Put(ctx context.Context, key string, body []byte, contentType, cacheControl string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	f.puts = append(f.puts, fakePut{key: key, contentType: contentType, cacheControl: cacheControl, size: len(body)})
	f.mu.Unlock()
	return "https://cdn.test/" + key, nil
}

func TestIngestPersistsUnderPresetPath(t *testing.T) {
	store := &fakeStore{}
	pipe := NewPipeline(store)

	result, err := pipe.Ingest(context.Background(), "Boat Trip.PNG", bytes.NewReader(flatPNG(t, 500, 400)), PresetInline)
	require.NoError(t, err)

	require.Len(t, store.puts, 1)
	put := store.puts[0]

	assert.True(t, strings.HasPrefix(put.key, "content/boat-trip-"), "key %q", put.key)
	assert.True(t, strings.HasSuffix(put.key, ".jpg"), "key %q", put.key)
	assert.Equal(t, TargetContentType, put.contentType)
	assert.Equal(t, CacheControlImmutable, put.cacheControl)
	assert.Greater(t, put.size, 0)

	assert.Equal(t, put.key, result.Key)
	assert.Equal(t, "https://cdn.test/"+put.key, result.URL)
	assert.Equal(t, 500, result.Artifact.Width)
	assert.Equal(t, 400, result.Artifact.Height)
}

func TestIngestDistinctKeysForSameFilename(t *testing.T) {
	store := &fakeStore{}
	pipe := NewPipeline(store)

	keys := map[string]bool{}
	for i := 0; i < 5; i++ {
		result, err := pipe.Ingest(context.Background(), "photo.png", bytes.NewReader(flatPNG(t, 50, 50)), PresetIcon)
		require.NoError(t, err)
		assert.False(t, keys[result.Key], "duplicate key %q", result.Key)
		keys[result.Key] = true
	}
}

func TestIngestDecodeFailureSkipsStore(t *testing.T) {
	store := &fakeStore{}
	pipe := NewPipeline(store)

	_, err := pipe.Ingest(context.Background(), "bad.bin", strings.NewReader("not an image"), PresetInline)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Empty(t, store.puts)
}

func TestIngestPersistFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("bucket gone")}
	pipe := NewPipeline(store)

	_, err := pipe.Ingest(context.Background(), "photo.png", bytes.NewReader(flatPNG(t, 50, 50)), PresetInline)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
}

func TestPresetByName(t *testing.T) {
	for _, name := range []string{"icon", "inline", "hero"} {
		preset, ok := PresetByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, preset.Name)
		assert.Greater(t, preset.MaxWidth, 0)
		assert.Greater(t, preset.Quality, 0.0)
		assert.LessOrEqual(t, preset.Quality, 1.0)
	}

	_, ok := PresetByName("gigantic")
	assert.False(t, ok)
}

func TestPresetProfiles(t *testing.T) {
	// Icons trade size for fidelity; heroes the reverse
	assert.Less(t, PresetIcon.MaxWidth, PresetInline.MaxWidth)
	assert.Less(t, PresetInline.MaxWidth, PresetHero.MaxWidth)
	assert.Greater(t, PresetIcon.Quality, PresetHero.Quality)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "boat-trip", slugify("Boat Trip"))
	assert.Equal(t, "img-2024-01", slugify("IMG_2024.01"))
	assert.Equal(t, "", slugify("日本語"))
}
