package document

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"invoicer/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newMemStore(t *testing.T) service.DocumentStore {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return NewBlobStoreWithBucket(bucket, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBlobStore_PutAndGet(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()
	invoiceID := uuid.New()

	key, err := store.Put(ctx, invoiceID, []byte("%PDF-artifact"))
	require.NoError(t, err)
	assert.Equal(t, "invoice_"+invoiceID.String()+".pdf", key)

	artifact, err := store.Get(ctx, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-artifact"), artifact)
}

func TestBlobStore_PutOverwrites(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()
	invoiceID := uuid.New()

	_, err := store.Put(ctx, invoiceID, []byte("old"))
	require.NoError(t, err)
	_, err = store.Put(ctx, invoiceID, []byte("new"))
	require.NoError(t, err)

	artifact, err := store.Get(ctx, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), artifact)
}

func TestBlobStore_GetMissing(t *testing.T) {
	store := newMemStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrDocumentNotFound)
}

func TestBlobStore_Delete(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()
	invoiceID := uuid.New()

	_, err := store.Put(ctx, invoiceID, []byte("artifact"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, invoiceID))

	_, err = store.Get(ctx, invoiceID)
	assert.ErrorIs(t, err, service.ErrDocumentNotFound)
}

func TestBlobStore_DeleteMissingIsNoop(t *testing.T) {
	store := newMemStore(t)

	assert.NoError(t, store.Delete(context.Background(), uuid.New()))
}

func TestBlobStore_KeysAreScopedPerInvoice(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	_, err := store.Put(ctx, first, []byte("first"))
	require.NoError(t, err)
	_, err = store.Put(ctx, second, []byte("second"))
	require.NoError(t, err)

	artifact, err := store.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), artifact)
}
