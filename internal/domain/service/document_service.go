package service

import (
	"context"
	"errors"

	"invoicer/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDocumentNotFound is returned when no document has been generated yet for
// an invoice id. This is distinct from the invoice itself not existing;
// callers check invoice existence and ownership first.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentRenderer converts an invoice snapshot into a byte artifact.
// Rendering is a pure function of the snapshot: identical content and total
// produce equivalent output.
type DocumentRenderer interface {
	Render(snapshot entity.Snapshot) ([]byte, error)
}

// DocumentStore persists one current artifact per invoice id at a
// deterministic location, overwriting any prior artifact. Writes must be
// write-then-publish: a failed write never leaves a partial artifact visible.
type DocumentStore interface {
	// Put stores the artifact for the invoice id and returns its location key.
	Put(ctx context.Context, invoiceID uuid.UUID, artifact []byte) (string, error)

	// Get retrieves the current artifact, or ErrDocumentNotFound.
	Get(ctx context.Context, invoiceID uuid.UUID) ([]byte, error)

	// Delete removes the artifact for the invoice id. Deleting a missing
	// artifact is not an error.
	Delete(ctx context.Context, invoiceID uuid.UUID) error
}
