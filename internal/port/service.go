package port

import (
	"context"
	"errors"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrDatasetExpired  = errors.New("dataset has expired")
	ErrImageProcessing = errors.New("image processing failed")
)

// ChunkRequest carries one staged chunk plus the metadata needed to
// bootstrap a session when the init call raced or was skipped.
type ChunkRequest struct {
	UploadID    string
	Index       int
	TotalChunks int
	Filename    string
	FileSize    int64
	MimeType    string
	Data        []byte
}

// ChunkResult reports staging progress. DatasetID and PreviewURL are only
// set on the chunk that completed the upload.
type ChunkResult struct {
	IsComplete bool
	Progress   domain.UploadProgress
	DatasetID  string
	PreviewURL string
}

// DatasetPreview is the read-side envelope for the preview endpoint.
type DatasetPreview struct {
	ID              string
	Filename        string
	FileSize        int64
	FileType        domain.FileType
	Preview         *domain.Preview
	Status          domain.Status
	BatchInfo       domain.BatchInfo
	UploadedAt      time.Time
	ExpiresAt       *time.Time
	TimeRemainingMS *int64
}

// UploadService drives the chunked-ingestion state machine.
type UploadService interface {
	// InitUpload opens a session, choosing chunk size and count for the
	// declared file size. Rejects sizes above the configured limit.
	InitUpload(ctx context.Context, filename string, fileSize int64, mimeType string) (*domain.UploadSession, error)

	// StageChunk stages one chunk idempotently and, when the arrival set
	// becomes complete, synchronously reassembles, processes and persists
	// the dataset.
	StageChunk(ctx context.Context, req ChunkRequest) (*ChunkResult, error)

	// GetProgress returns the progress snapshot for a session.
	GetProgress(ctx context.Context, uploadID string) (*domain.UploadProgress, error)
}

// DatasetService owns the durable record's lifecycle and read path.
type DatasetService interface {
	// Finalize makes a dataset permanent. Idempotent on already-finalized
	// records; fails with ErrDatasetExpired on expired ones.
	Finalize(ctx context.Context, id string) (*domain.Dataset, error)

	// GetPreview reads the preview, fast store first with durable fallback.
	GetPreview(ctx context.Context, id string) (*DatasetPreview, error)
}

// ResolverService exposes bulk image-URL resolution outside the row-preview
// path, with bounded concurrency.
type ResolverService interface {
	// ResolveBatch thumbnails every URL through a fixed-size worker pool.
	// Per-URL failures are recorded on the returned cells, never returned
	// as an error.
	ResolveBatch(ctx context.Context, uploadID string, urls []string) ([]*domain.ImageCell, error)
}
