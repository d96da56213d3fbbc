package service

import (
	"context"

	"github.com/anthanhphan/go-dataset-preview/internal/config"
	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
)

// PipelineServiceImpl is the facade that wires the ingestion pipeline's
// use-case services: session tracking, reassembly, parsing, image work,
// embedded-image resolution and dataset lifecycle.
type PipelineServiceImpl struct {
	cfg     *config.Config
	staging port.StagingStore
	records port.RecordStore
	fetcher port.ImageFetcher

	sessionUseCase  *sessionService
	assembleUseCase *assembleService
	parseUseCase    *parseService
	imageUseCase    *imageService
	resolveUseCase  *resolveService
	datasetUseCase  *datasetService
	ingestUseCase   *ingestService
}

// Ensure PipelineServiceImpl implements the service ports.
var (
	_ port.UploadService   = (*PipelineServiceImpl)(nil)
	_ port.DatasetService  = (*PipelineServiceImpl)(nil)
	_ port.ResolverService = (*PipelineServiceImpl)(nil)
)

// NewPipelineService builds the pipeline facade and all use-case services.
func NewPipelineService(cfg *config.Config, staging port.StagingStore, records port.RecordStore, fetcher port.ImageFetcher) *PipelineServiceImpl {
	svc := &PipelineServiceImpl{
		cfg:     cfg,
		staging: staging,
		records: records,
		fetcher: fetcher,
	}

	svc.sessionUseCase = newSessionService(svc)
	svc.assembleUseCase = newAssembleService(svc)
	svc.parseUseCase = newParseService(svc)
	svc.imageUseCase = newImageService(svc)
	svc.resolveUseCase = newResolveService(svc)
	svc.datasetUseCase = newDatasetService(svc)
	svc.ingestUseCase = newIngestService(svc)

	return svc
}

// InitUpload delegates session creation to the session use-case service.
func (s *PipelineServiceImpl) InitUpload(ctx context.Context, filename string, fileSize int64, mimeType string) (*domain.UploadSession, error) {
	return s.sessionUseCase.initUpload(ctx, filename, fileSize, mimeType)
}

// StageChunk stages one chunk and triggers ingestion on the completing one.
func (s *PipelineServiceImpl) StageChunk(ctx context.Context, req port.ChunkRequest) (*port.ChunkResult, error) {
	session, err := s.sessionUseCase.stageChunk(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &port.ChunkResult{
		IsComplete: session.IsComplete(),
		Progress:   session.Progress(),
	}
	if !result.IsComplete {
		return result, nil
	}

	dataset, err := s.ingestUseCase.completeUpload(ctx, session)
	if err != nil {
		return nil, err
	}

	result.DatasetID = dataset.ID.Hex()
	result.PreviewURL = "/preview/" + dataset.ID.Hex()
	return result, nil
}

// GetProgress delegates to the session use-case service.
func (s *PipelineServiceImpl) GetProgress(ctx context.Context, uploadID string) (*domain.UploadProgress, error) {
	return s.sessionUseCase.getProgress(ctx, uploadID)
}

// Finalize delegates to the dataset lifecycle use-case service.
func (s *PipelineServiceImpl) Finalize(ctx context.Context, id string) (*domain.Dataset, error) {
	return s.datasetUseCase.finalize(ctx, id)
}

// GetPreview delegates to the dataset lifecycle use-case service.
func (s *PipelineServiceImpl) GetPreview(ctx context.Context, id string) (*port.DatasetPreview, error) {
	return s.datasetUseCase.getPreview(ctx, id)
}

// ResolveBatch delegates to the resolver use-case service.
func (s *PipelineServiceImpl) ResolveBatch(ctx context.Context, uploadID string, urls []string) ([]*domain.ImageCell, error) {
	return s.resolveUseCase.resolveBatch(ctx, uploadID, urls)
}

// previewRows returns the preview row cap with a safe default.
func (s *PipelineServiceImpl) previewRows() int {
	if s.cfg.Upload.PreviewRows > 0 {
		return s.cfg.Upload.PreviewRows
	}
	return 10
}

// batchWorkers returns the bulk resolver worker count with a safe default.
func (s *PipelineServiceImpl) batchWorkers() int {
	if s.cfg.Resolver.BatchWorkers > 0 {
		return s.cfg.Resolver.BatchWorkers
	}
	return 10
}
