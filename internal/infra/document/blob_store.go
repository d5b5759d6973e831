package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register the file:// bucket scheme
	"gocloud.dev/gcerrors"

	"invoicer/config"
	"invoicer/internal/domain/lifecycle"
	"invoicer/internal/domain/service"
	"invoicer/internal/errors"
	"invoicer/internal/util"
)

const pdfContentType = "application/pdf"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobStore persists rendered invoice PDFs in a gocloud blob bucket.
// The bucket writer commits on Close only, so a failed write never leaves a
// partial artifact at the target key.
type blobStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// NewBlobStore opens the configured bucket and binds its lifetime to the
// application lifecycle. The file:// scheme creates the backing directory
// lazily via its create_dir option.
func NewBlobStore(ctx context.Context, params Params) (service.DocumentStore, error) {
	if params.Config.Documents == nil || params.Config.Documents.Bucket == "" {
		return nil, errors.New("documents bucket must be configured")
	}

	openCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Documents.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open documents bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStoreWithBucket(bucket, params.Logger), nil
}

// NewBlobStoreWithBucket wraps an already-open bucket. Used by tests with an
// in-memory bucket.
func NewBlobStoreWithBucket(bucket *blob.Bucket, logger *slog.Logger) service.DocumentStore {
	return &blobStore{bucket: bucket, logger: logger}
}

// Put writes the artifact at the deterministic key for the invoice id,
// overwriting any prior artifact.
func (s *blobStore) Put(ctx context.Context, invoiceID uuid.UUID, artifact []byte) (string, error) {
	key := documentKey(invoiceID)

	opts := &blob.WriterOptions{ContentType: pdfContentType}
	if err := s.bucket.WriteAll(ctx, key, artifact, opts); err != nil {
		return "", errors.Wrapf(err, "failed to store document %s", key)
	}

	s.logger.Debug("Document stored",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(int64(len(artifact)))),
	)

	return key, nil
}

// Get retrieves the current artifact for the invoice id.
func (s *blobStore) Get(ctx context.Context, invoiceID uuid.UUID) ([]byte, error) {
	key := documentKey(invoiceID)

	artifact, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrDocumentNotFound
		}

		return nil, errors.Wrapf(err, "failed to read document %s", key)
	}

	return artifact, nil
}

// Delete removes the artifact for the invoice id. A missing artifact is not
// an error; the invoice may have been deleted before its first render.
func (s *blobStore) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	key := documentKey(invoiceID)

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete document %s", key)
	}

	return nil
}

// documentKey derives the stable storage key for an invoice id.
func documentKey(invoiceID uuid.UUID) string {
	return fmt.Sprintf("invoice_%s.pdf", invoiceID)
}
