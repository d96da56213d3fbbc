package port

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -destination=../service/mocks/stores_mock.go -package=mocks -source=repository.go

var (
	ErrSessionNotFound = errors.New("upload session not found")
	ErrChunkNotFound   = errors.New("chunk not found")
	ErrPreviewNotFound = errors.New("preview not found")
	ErrDatasetNotFound = errors.New("dataset not found")
)

// MissingChunkError reports the first gap found during reassembly.
type MissingChunkError struct {
	Index int
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("missing chunk %d", e.Index)
}

func (e *MissingChunkError) Is(target error) bool {
	return target == ErrChunkNotFound
}

// StagingStore is the fast keyed store used during an upload's lifetime:
// chunk blobs, session metadata, progress snapshots, finalized previews and
// resolved image thumbnails, each under its own TTL. Implementations only
// need per-key atomic writes; no cross-key consistency is required.
type StagingStore interface {
	// StoreChunk stages one raw chunk blob under (uploadID, index).
	StoreChunk(ctx context.Context, uploadID string, index int, data []byte, ttl time.Duration) error

	// GetChunk returns a staged chunk blob, or ErrChunkNotFound.
	GetChunk(ctx context.Context, uploadID string, index int) ([]byte, error)

	// StoreSession persists session metadata, refreshing its TTL.
	StoreSession(ctx context.Context, session *domain.UploadSession, ttl time.Duration) error

	// GetSession returns session metadata, or ErrSessionNotFound.
	GetSession(ctx context.Context, uploadID string) (*domain.UploadSession, error)

	// StoreProgress persists the progress snapshot for polling clients.
	StoreProgress(ctx context.Context, uploadID string, progress *domain.UploadProgress, ttl time.Duration) error

	// GetProgress returns the progress snapshot, or ErrSessionNotFound.
	GetProgress(ctx context.Context, uploadID string) (*domain.UploadProgress, error)

	// StorePreview mirrors the finalized preview for fast reads.
	StorePreview(ctx context.Context, uploadID string, preview *domain.Preview, ttl time.Duration) error

	// GetPreview returns the mirrored preview, or ErrPreviewNotFound.
	GetPreview(ctx context.Context, uploadID string) (*domain.Preview, error)

	// StoreThumb caches derived image bytes under an opaque reference.
	StoreThumb(ctx context.Context, ref string, data []byte, ttl time.Duration) error

	// GetThumb returns cached image bytes, or ErrPreviewNotFound.
	GetThumb(ctx context.Context, ref string) ([]byte, error)

	// CleanupUpload deletes every staged key in the upload's namespace.
	CleanupUpload(ctx context.Context, uploadID string) error
}

// RecordStore is the durable document store holding dataset records. The
// store owns TTL expiry: records whose expiresAt has passed are deleted by
// its index, never by application code.
type RecordStore interface {
	// Create inserts a new dataset record and returns its generated ID.
	Create(ctx context.Context, dataset *domain.Dataset) (primitive.ObjectID, error)

	// GetByID returns a dataset record, or ErrDatasetNotFound.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Dataset, error)

	// Save persists mutations to an existing record.
	Save(ctx context.Context, dataset *domain.Dataset) error
}

// ImageFetcher downloads remote image bytes. Implementations carry their own
// per-request timeout; a failed fetch only fails the cell that asked for it.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
