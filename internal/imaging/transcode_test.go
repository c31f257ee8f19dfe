package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyPNG builds a PNG full of deterministic pseudo-noise. Noise defeats
// PNG's lossless compression, so the lossy JPEG re-encode is reliably smaller.
func noisyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func flatPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTranscodeDownscalesPreservingAspect(t *testing.T) {
	src := flatPNG(t, 800, 600)

	artifact, err := Transcode(context.Background(), bytes.NewReader(src), 400, 0.8)
	require.NoError(t, err)

	assert.Equal(t, 400, artifact.Width)
	assert.Equal(t, 300, artifact.Height)
	assert.Equal(t, TargetFormat, artifact.Format)
	assert.Equal(t, int64(len(src)), artifact.SourceBytes)
	assert.Equal(t, int64(len(artifact.Data)), artifact.EncodedBytes)

	// Output must itself decode as a JPEG of the reported size
	decoded, format, err := image.Decode(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

func TestTranscodeRoundsOddAspect(t *testing.T) {
	src := flatPNG(t, 1000, 333)

	artifact, err := Transcode(context.Background(), bytes.NewReader(src), 400, 0.8)
	require.NoError(t, err)

	assert.Equal(t, 400, artifact.Width)
	// 333 * 0.4 = 133.2, rounds to 133
	assert.Equal(t, 133, artifact.Height)
}

func TestTranscodeHeroBounds(t *testing.T) {
	if testing.Short() {
		t.Skip("large surface")
	}
	src := flatPNG(t, 4000, 3000)

	artifact, err := Transcode(context.Background(), bytes.NewReader(src), PresetHero.MaxWidth, PresetHero.Quality)
	require.NoError(t, err)

	assert.Equal(t, 1920, artifact.Width)
	assert.Equal(t, 1440, artifact.Height)
}

func TestTranscodeNeverUpscales(t *testing.T) {
	src := flatPNG(t, 100, 80)

	artifact, err := Transcode(context.Background(), bytes.NewReader(src), 1280, 0.8)
	require.NoError(t, err)

	assert.Equal(t, 100, artifact.Width)
	assert.Equal(t, 80, artifact.Height)
}

func TestTranscodeShrinksNoisySource(t *testing.T) {
	src := noisyPNG(t, 256, 256)

	artifact, err := Transcode(context.Background(), bytes.NewReader(src), 256, 0.8)
	require.NoError(t, err)

	assert.Less(t, artifact.EncodedBytes, artifact.SourceBytes)
	assert.Greater(t, artifact.SavedPercent(), 0.0)
}

func TestTranscodeRejectsJunk(t *testing.T) {
	junk := []byte("definitely not an image, not even close")

	_, err := Transcode(context.Background(), bytes.NewReader(junk), 1280, 0.8)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTranscodeRejectsBadParams(t *testing.T) {
	src := flatPNG(t, 10, 10)

	_, err := Transcode(context.Background(), bytes.NewReader(src), 0, 0.8)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = Transcode(context.Background(), bytes.NewReader(src), 100, 0)
	assert.ErrorIs(t, err, ErrEncode)

	_, err = Transcode(context.Background(), bytes.NewReader(src), 100, 1.5)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestTranscodeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Transcode(ctx, bytes.NewReader(flatPNG(t, 10, 10)), 100, 0.8)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSavedPercentZeroSource(t *testing.T) {
	a := &Artifact{SourceBytes: 0, EncodedBytes: 100}
	assert.Equal(t, 0.0, a.SavedPercent())
}
