package service

import (
	"context"
	"encoding/base64"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/gosdk/logger"
)

// ingestService runs the completion pipeline on the chunk that closes the
// arrival set: reassemble, classify, process, resolve embedded images,
// mirror the preview, persist the durable record, clean up staging.
type ingestService struct {
	core *PipelineServiceImpl
}

// newIngestService creates the completion use-case service.
func newIngestService(core *PipelineServiceImpl) *ingestService {
	return &ingestService{core: core}
}

// completeUpload fails closed: any fatal step leaves no durable record, so
// the client can retry the completing chunk.
func (s *ingestService) completeUpload(ctx context.Context, session *domain.UploadSession) (*domain.Dataset, error) {
	raw, err := s.core.assembleUseCase.assemble(ctx, session.UploadID, session.TotalChunks)
	if err != nil {
		return nil, err
	}

	fileType := classifyFile(session.Filename, session.MimeType)
	preview, err := s.buildPreview(ctx, session, fileType, raw)
	if err != nil {
		logger.Errorw("Upload processing failed",
			"upload_id", session.UploadID,
			"file_name", session.Filename,
			"error", err.Error(),
		)
		return nil, err
	}

	s.mirrorPreview(ctx, session.UploadID, preview)

	dataset, err := s.core.datasetUseCase.createDataset(ctx, session, fileType, preview, raw)
	if err != nil {
		return nil, err
	}

	s.core.sessionUseCase.cleanupUpload(session.UploadID)
	return dataset, nil
}

// buildPreview dispatches on file type. Image failures are fatal; tabular
// parse failures degrade inside the parser and never surface here.
func (s *ingestService) buildPreview(ctx context.Context, session *domain.UploadSession, fileType domain.FileType, raw []byte) (*domain.Preview, error) {
	switch fileType {
	case domain.FileTypeImage:
		processed, err := s.core.imageUseCase.process(raw)
		if err != nil {
			return nil, err
		}
		return &domain.Preview{Type: domain.PreviewTypeImage, Image: processed}, nil

	case domain.FileTypeDataset:
		tabular := s.core.parseUseCase.parsePreview(raw, session.Filename, session.MimeType)
		s.core.resolveUseCase.resolvePreview(ctx, session.UploadID, tabular)
		return &domain.Preview{Type: domain.PreviewTypeTabular, Tabular: tabular}, nil

	default:
		return &domain.Preview{Type: domain.PreviewTypeTabular, Tabular: documentPreview()}, nil
	}
}

// mirrorPreview writes the fast-store copy. Best effort: the durable record
// keeps the authoritative preview, so failures are logged and dropped.
func (s *ingestService) mirrorPreview(ctx context.Context, uploadID string, preview *domain.Preview) {
	ttl := s.core.cfg.TTL.ImageCache()

	if err := s.core.staging.StorePreview(ctx, uploadID, preview, ttl); err != nil {
		logger.Warnw("Preview mirror write failed", "upload_id", uploadID, "error", err.Error())
		return
	}

	// Image uploads additionally cache the compressed bytes under their own
	// key for direct serving.
	if preview.Type == domain.PreviewTypeImage && preview.Image != nil {
		compressed, err := base64.StdEncoding.DecodeString(preview.Image.Compressed)
		if err == nil {
			if err := s.core.staging.StoreThumb(ctx, uploadID, compressed, ttl); err != nil {
				logger.Warnw("Image preview cache write failed", "upload_id", uploadID, "error", err.Error())
			}
		}
	}
}
