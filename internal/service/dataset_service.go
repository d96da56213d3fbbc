package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	"github.com/anthanhphan/gosdk/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// datasetService owns the durable record's status state machine and the
// preview read path.
type datasetService struct {
	core *PipelineServiceImpl
}

// newDatasetService creates the dataset lifecycle use-case service.
func newDatasetService(core *PipelineServiceImpl) *datasetService {
	return &datasetService{core: core}
}

// createDataset writes the durable record once reassembly and processing
// succeeded. Records start pending with a 24h expiry window.
func (s *datasetService) createDataset(ctx context.Context, session *domain.UploadSession, fileType domain.FileType, preview *domain.Preview, raw []byte) (*domain.Dataset, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.core.cfg.TTL.DatasetExpiry())

	dataset := &domain.Dataset{
		Filename:     session.Filename,
		OriginalName: session.Filename,
		FileSize:     session.FileSize,
		MimeType:     session.MimeType,
		FileType:     fileType,
		Preview:      preview,
		Status:       domain.StatusPending,
		UploadID:     session.UploadID,
		UploadedAt:   now,
		ExpiresAt:    &expiresAt,
		BatchInfo: domain.BatchInfo{
			TotalBatches:    session.TotalChunks,
			UploadedBatches: session.UploadedCount(),
			BatchSize:       session.ChunkSize,
			IsComplete:      true,
		},
	}

	// Images keep only derived artifacts; tabular files keep the raw bytes
	// so the durable record stays authoritative without the fast store.
	if fileType != domain.FileTypeImage {
		dataset.Data = base64.StdEncoding.EncodeToString(raw)
	}

	id, err := s.core.records.Create(ctx, dataset)
	if err != nil {
		return nil, err
	}
	dataset.ID = id

	logger.Infow("Dataset created",
		"dataset_id", id.Hex(),
		"upload_id", session.UploadID,
		"file_type", fileType,
		"file_size", session.FileSize,
	)
	return dataset, nil
}

// finalize makes a dataset permanent: status finalized, expiry cleared.
// Finalizing an already-finalized record is a no-op success; an expired one
// is gone.
func (s *datasetService) finalize(ctx context.Context, id string) (*domain.Dataset, error) {
	dataset, err := s.loadDataset(ctx, id)
	if err != nil {
		return nil, err
	}

	if dataset.Status == domain.StatusFinalized {
		return dataset, nil
	}

	if err := dataset.Transition(domain.StatusFinalized, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("finalize rejected: %w", err)
	}
	if err := s.core.records.Save(ctx, dataset); err != nil {
		return nil, err
	}

	logger.Infow("Dataset finalized", "dataset_id", dataset.ID.Hex())
	return dataset, nil
}

// getPreview serves the preview endpoint: fast store first, durable record
// as the authoritative fallback. A lapsed fast-store entry is never an error.
func (s *datasetService) getPreview(ctx context.Context, id string) (*port.DatasetPreview, error) {
	dataset, err := s.loadDataset(ctx, id)
	if err != nil {
		return nil, err
	}

	preview := dataset.Preview
	if dataset.UploadID != "" {
		if staged, stagedErr := s.core.staging.GetPreview(ctx, dataset.UploadID); stagedErr == nil {
			preview = staged
		}
	}

	result := &port.DatasetPreview{
		ID:         dataset.ID.Hex(),
		Filename:   dataset.OriginalName,
		FileSize:   dataset.FileSize,
		FileType:   dataset.FileType,
		Preview:    preview,
		Status:     dataset.Status,
		BatchInfo:  dataset.BatchInfo,
		UploadedAt: dataset.UploadedAt,
		ExpiresAt:  dataset.ExpiresAt,
	}
	if dataset.ExpiresAt != nil {
		remaining := time.Until(*dataset.ExpiresAt).Milliseconds()
		if remaining < 0 {
			remaining = 0
		}
		result.TimeRemainingMS = &remaining
	}
	return result, nil
}

// loadDataset fetches a record and applies the expiry check that precedes
// any mutation or read.
func (s *datasetService) loadDataset(ctx context.Context, id string) (*domain.Dataset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, port.ErrDatasetNotFound
	}

	dataset, err := s.core.records.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if dataset.IsExpired(time.Now().UTC()) {
		return nil, port.ErrDatasetExpired
	}
	return dataset, nil
}
