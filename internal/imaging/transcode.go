package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"

	"golang.org/x/image/draw"

	// Registered decoders: any of these raster formats is accepted as input.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrDecode marks input bytes that are not a recognizable raster image.
	ErrDecode = errors.New("imaging: decode failed")
	// ErrEncode marks an encoder that produced no usable output.
	ErrEncode = errors.New("imaging: encode failed")
	// ErrPersist marks a blob-store write or URL resolution failure.
	ErrPersist = errors.New("imaging: persist failed")
)

// TargetFormat is the fixed lossy output format of every transcode.
const TargetFormat = "jpeg"

// TargetContentType is the MIME type of encoded artifacts.
const TargetContentType = "image/jpeg"

// Artifact is the transient result of one transcode. It is handed to the
// caller and not retained.
type Artifact struct {
	Data         []byte
	Format       string
	Width        int
	Height       int
	SourceBytes  int64
	EncodedBytes int64
}

// SavedPercent is how much smaller the encoded payload is than the source,
// negative when the encoder grew the file.
func (a *Artifact) SavedPercent() float64 {
	if a.SourceBytes == 0 {
		return 0
	}
	return (1 - float64(a.EncodedBytes)/float64(a.SourceBytes)) * 100
}

// Transcode decodes an arbitrary raster image, scales it down to at most
// maxWidth pixels wide preserving aspect ratio (never upscaling), and encodes
// it as JPEG at the given quality in (0, 1]. Cancellation of ctx aborts
// between stages.
func Transcode(ctx context.Context, r io.Reader, maxWidth int, quality float64) (*Artifact, error) {
	if maxWidth <= 0 {
		return nil, fmt.Errorf("%w: maxWidth must be positive, got %d", ErrDecode, maxWidth)
	}
	if quality <= 0 || quality > 1 {
		return nil, fmt.Errorf("%w: quality must be in (0, 1], got %g", ErrEncode, quality)
	}

	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty pixel surface %dx%d", ErrDecode, width, height)
	}

	targetWidth, targetHeight := width, height
	if width > maxWidth {
		scale := float64(maxWidth) / float64(width)
		targetWidth = maxWidth
		targetHeight = int(math.Round(float64(height) * scale))
		if targetHeight < 1 {
			targetHeight = 1
		}
	}

	surface := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(surface, surface.Bounds(), src, bounds, draw.Src, nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, surface, &jpeg.Options{Quality: int(math.Round(quality * 100))}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if encoded.Len() == 0 {
		return nil, fmt.Errorf("%w: encoder produced no output", ErrEncode)
	}

	return &Artifact{
		Data:         encoded.Bytes(),
		Format:       TargetFormat,
		Width:        targetWidth,
		Height:       targetHeight,
		SourceBytes:  int64(len(source)),
		EncodedBytes: int64(encoded.Len()),
	}, nil
}
