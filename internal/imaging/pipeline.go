package imaging

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"atlas/internal/events"
	"atlas/internal/utils/logger"

	"github.com/google/uuid"
)

// CacheControlImmutable is set on every persisted artifact. Object keys are
// unique per upload, so a year-long immutable cache is safe.
const CacheControlImmutable = "public, max-age=31536000, immutable"

// Preset fixes (path, maxWidth, quality) for one asset class.
type Preset struct {
	Name     string
	Path     string
	MaxWidth int
	Quality  float64
}

var (
	// PresetIcon suits small icon-like assets: low resolution, high quality.
	PresetIcon = Preset{Name: "icon", Path: "icons", MaxWidth: 256, Quality: 0.9}
	// PresetInline suits medium inline content imagery.
	PresetInline = Preset{Name: "inline", Path: "content", MaxWidth: 1280, Quality: 0.8}
	// PresetHero suits large hero imagery: high resolution, moderate quality.
	PresetHero = Preset{Name: "hero", Path: "hero", MaxWidth: 1920, Quality: 0.75}
)

// PresetByName resolves an asset-class name to its preset.
func PresetByName(name string) (Preset, bool) {
	switch name {
	case PresetIcon.Name:
		return PresetIcon, true
	case PresetInline.Name:
		return PresetInline, true
	case PresetHero.Name:
		return PresetHero, true
	default:
		return Preset{}, false
	}
}

// BlobStore persists encoded artifacts and returns a durable fetchable URL.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte, contentType, cacheControl string) (string, error)
}

// Result is returned to the caller after a successful ingestion. The caller
// stores the URL in its own document; nothing else is retained here.
type Result struct {
	URL      string
	Key      string
	Artifact *Artifact
}

// Pipeline runs decode, resize, encode, persist as one all-or-nothing
// operation per file.
type Pipeline struct {
	store BlobStore
	log   *logger.Logger
}

func NewPipeline(store BlobStore) *Pipeline {
	return &Pipeline{
		store: store,
		log:   logger.New("imaging"),
	}
}

// Ingest transcodes the file under the preset's profile and persists the
// artifact. Any stage failure aborts the whole upload; no partial artifact is
// returned. ctx cancellation propagates into every stage.
func (p *Pipeline) Ingest(ctx context.Context, filename string, r io.Reader, preset Preset) (*Result, error) {
	artifact, err := Transcode(ctx, r, preset.MaxWidth, preset.Quality)
	if err != nil {
		return nil, err
	}

	key := objectKey(preset.Path, filename)
	url, err := p.store.Put(ctx, key, artifact.Data, TargetContentType, CacheControlImmutable)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersist, err)
	}

	// Cosmetic progress signal; never load-bearing.
	p.log.Success("optimized %s: %d -> %d bytes (%.1f%% saved) -> %s",
		filename, artifact.SourceBytes, artifact.EncodedBytes, artifact.SavedPercent(), url)
	events.Emit("uploads.completed", &Result{URL: url, Key: key, Artifact: artifact})

	return &Result{URL: url, Key: key, Artifact: artifact}, nil
}

// objectKey derives a collision-free blob key from the original filename stem,
// a high-resolution timestamp, and a short random suffix for uploads landing
// on the same tick.
func objectKey(path, filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = slugify(stem)
	if stem == "" {
		stem = "image"
	}
	return fmt.Sprintf("%s/%s-%d-%s.jpg", path, stem, time.Now().UnixNano(), uuid.New().String()[:8])
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
