package sprite

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stylebox/pkg/cache"
	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/httputil"
)

// MaxPixels bounds the size of a decoded sheet. Larger images are rejected
// before their pixels are allocated.
const MaxPixels = 64 << 20

// Sheet is a decoded sprite sheet ready for queries.
type Sheet struct {
	*Recognizer
	Source string // path or other label of the image
	Format string // decoder name, e.g. "png"
	Hash   string // SHA-256 of the encoded bytes
}

// Decode reads an encoded image and returns a queryable sheet. Supported
// formats are PNG, GIF, JPEG, BMP, TIFF and WebP.
func Decode(r io.Reader, source string) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "read %s", source)
	}
	return decodeBytes(data, source)
}

// Fetcher downloads sheets referenced by URL.
var Fetcher = httputil.NewFetcher()

// Open decodes the image file at path, or downloads it when path is an http
// or https URL.
func Open(ctx context.Context, path string) (*Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if httputil.IsRemote(path) {
		data, err := Fetcher.Get(ctx, path)
		if err != nil {
			return nil, err
		}
		return decodeBytes(data, path)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such image: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "read %s", path)
	}
	return decodeBytes(data, path)
}

func decodeBytes(data []byte, source string) (*Sheet, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s", source)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidImage, "%s is too large (%dx%d)", source, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s", source)
	}
	return &Sheet{
		Recognizer: New(img),
		Source:     source,
		Format:     format,
		Hash:       cache.Hash(data),
	}, nil
}

// LoadAll decodes several sheets concurrently, at most limit at a time
// (limit <= 0 means unbounded). Results are in the order of paths. The
// first failure cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string, limit int) ([]*Sheet, error) {
	sheets := make([]*Sheet, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			s, err := Open(ctx, path)
			if err != nil {
				return err
			}
			sheets[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}
