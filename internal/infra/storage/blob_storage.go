// Package storage keeps business profile images in a gocloud.dev blob bucket.
// The bucket URL selects the backend: file://, mem://, s3:// or gs://.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"path"
	"strings"
	"time"

	"bizdir/config"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"
	"bizdir/internal/util"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

const imageNamePrefix = "business-"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobImageStorage struct {
	bucket       *blob.Bucket
	publicPrefix string
	logger       *slog.Logger
	now          func() time.Time
	suffix       func() int
}

// NewImageStorage opens the configured bucket and closes it on shutdown.
func NewImageStorage(params Params) (service.ImageStorage, error) {
	bucket, err := blob.OpenBucket(context.Background(), params.Config.Uploads.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open uploads bucket %q", params.Config.Uploads.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Image storage ready",
		slog.String("public_prefix", params.Config.Uploads.PublicPrefix),
		slog.String("max_file_size", util.FormatBytes(params.Config.Uploads.MaxFileSize)),
	)

	return NewBucketImageStorage(bucket, params.Config.Uploads.PublicPrefix, params.Logger), nil
}

// NewBucketImageStorage wraps an already opened bucket. The caller owns the bucket.
func NewBucketImageStorage(bucket *blob.Bucket, publicPrefix string, logger *slog.Logger) service.ImageStorage {
	return &blobImageStorage{
		bucket:       bucket,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
		logger:       logger,
		now:          time.Now,
		suffix:       func() int { return rand.IntN(1e9) },
	}
}

// Save writes img under "business-<unix millis>-<random><ext>" and returns its public path.
func (s *blobImageStorage) Save(ctx context.Context, img *service.Image) (string, error) {
	key := fmt.Sprintf("%s%d-%d%s", imageNamePrefix, s.now().UnixMilli(), s.suffix(), strings.ToLower(path.Ext(img.Filename)))

	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: img.ContentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open image writer")
	}

	if _, err := io.Copy(w, img.Data); err != nil {
		_ = w.Close()

		return "", errors.Wrap(err, "failed to write image")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to commit image")
	}

	s.logger.DebugContext(ctx, "Image stored", slog.String("key", key), slog.Int64("size", img.Size))

	return s.publicPrefix + "/" + key, nil
}

// Exists reports whether the image at a public path is stored.
// Paths outside the public prefix, such as the default image, never exist.
func (s *blobImageStorage) Exists(ctx context.Context, publicPath string) (bool, error) {
	key, ok := s.keyOf(publicPath)
	if !ok {
		return false, nil
	}

	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, errors.Wrap(err, "failed to check image")
	}

	return exists, nil
}

// Delete removes the image at a public path. Deleting a missing image is not an error.
func (s *blobImageStorage) Delete(ctx context.Context, publicPath string) error {
	key, ok := s.keyOf(publicPath)
	if !ok {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "failed to delete image")
	}

	return nil
}

// Open streams the image at a public path.
func (s *blobImageStorage) Open(ctx context.Context, publicPath string) (io.ReadCloser, *service.ImageAttributes, error) {
	key, ok := s.keyOf(publicPath)
	if !ok {
		return nil, nil, service.ErrImageNotFound
	}

	r, err := s.bucket.NewReader(ctx, key, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, nil, service.ErrImageNotFound
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open image")
	}

	attrs := &service.ImageAttributes{
		ContentType: r.ContentType(),
		Size:        r.Size(),
		ModTime:     r.ModTime(),
	}

	return r, attrs, nil
}

// keyOf maps "<prefix>/<name>" to the bucket key "<name>".
// Only flat names that this storage could have generated are accepted.
func (s *blobImageStorage) keyOf(publicPath string) (string, bool) {
	name, found := strings.CutPrefix(publicPath, s.publicPrefix+"/")
	if !found || name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", false
	}

	return name, true
}
