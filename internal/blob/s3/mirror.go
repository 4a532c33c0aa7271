package s3blob

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

// maxConcurrentUploads bounds how many artifact uploads run at once.
const maxConcurrentUploads = 4

// Mirror uploads the artifact files of one snapshot run to object storage
// under "<prefix>/<slug>/<basename>". It is a best-effort sink: the caller
// decides whether a failed mirror matters.
type Mirror struct {
	writer domain.BlobWriter
	prefix string
	logger *slog.Logger
}

// NewMirror creates a Mirror that uploads via writer under the given key
// prefix.
func NewMirror(writer domain.BlobWriter, prefix string, logger *slog.Logger) *Mirror {
	return &Mirror{
		writer: writer,
		prefix: prefix,
		logger: logger.With(slog.String("component", "s3mirror")),
	}
}

// MirrorFiles uploads the given local files, keyed by slug and base name.
// Uploads run concurrently with a bounded limit; the first failure cancels
// the rest and is returned.
func (m *Mirror) MirrorFiles(ctx context.Context, slug string, files []string) error {
	if len(files) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)

	for _, file := range files {
		file := file
		g.Go(func() error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("s3blob: open artifact %s: %w", file, err)
			}
			defer f.Close()

			key := path.Join(m.prefix, slug, filepath.Base(file))
			if err := m.writer.Put(ctx, key, f, "application/json"); err != nil {
				return err
			}

			m.logger.Debug("artifact mirrored", slog.String("key", key))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	m.logger.Info("artifacts mirrored",
		slog.String("slug", slug),
		slog.Int("files", len(files)),
	)
	return nil
}
