package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/google/uuid"
)

// sessionService tracks per-upload chunk arrival and progress in the
// staging store.
type sessionService struct {
	core *PipelineServiceImpl
}

// newSessionService creates the chunk-session use-case service.
func newSessionService(core *PipelineServiceImpl) *sessionService {
	return &sessionService{core: core}
}

// initUpload opens a session. Chunk size follows the declared file size:
// large files get the large chunk size so chunk counts stay manageable.
func (s *sessionService) initUpload(ctx context.Context, filename string, fileSize int64, mimeType string) (*domain.UploadSession, error) {
	if filename == "" || fileSize <= 0 {
		return nil, fmt.Errorf("%w: filename and fileSize are required", port.ErrInvalidRequest)
	}
	if fileSize > s.core.cfg.Upload.MaxFileSize {
		return nil, port.ErrFileTooLarge
	}

	chunkSize := s.core.cfg.Upload.SmallChunkSize
	if fileSize > s.core.cfg.Upload.LargeFileThreshold {
		chunkSize = s.core.cfg.Upload.LargeChunkSize
	}

	session := &domain.UploadSession{
		UploadID:    uuid.NewString(),
		Filename:    filename,
		FileSize:    fileSize,
		MimeType:    mimeType,
		ChunkSize:   chunkSize,
		TotalChunks: int((fileSize + chunkSize - 1) / chunkSize),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.core.staging.StoreSession(ctx, session, s.core.cfg.TTL.Session()); err != nil {
		return nil, err
	}

	logger.Infow("Upload session opened",
		"upload_id", session.UploadID,
		"file_name", filename,
		"file_size", fileSize,
		"chunk_size", chunkSize,
		"total_chunks", session.TotalChunks,
	)
	return session, nil
}

// stageChunk stores one chunk blob and updates the arrival set. Staging is
// idempotent and commutative: duplicates don't double-count, order doesn't
// matter. Session and progress are re-persisted with refreshed TTLs on every
// call so an abandoned upload self-cleans after the idle window.
func (s *sessionService) stageChunk(ctx context.Context, req port.ChunkRequest) (*domain.UploadSession, error) {
	if req.UploadID == "" || len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: uploadId and chunk data are required", port.ErrInvalidRequest)
	}

	session, err := s.core.staging.GetSession(ctx, req.UploadID)
	if err == port.ErrSessionNotFound {
		session, err = s.bootstrapSession(req)
	}
	if err != nil {
		return nil, err
	}

	if req.Index < 0 || req.Index >= session.TotalChunks {
		return nil, fmt.Errorf("%w: chunk index %d out of range [0,%d)", port.ErrInvalidRequest, req.Index, session.TotalChunks)
	}

	if err := s.core.staging.StoreChunk(ctx, req.UploadID, req.Index, req.Data, s.core.cfg.TTL.Chunk()); err != nil {
		return nil, err
	}

	session.MarkUploaded(req.Index)

	if err := s.core.staging.StoreSession(ctx, session, s.core.cfg.TTL.Session()); err != nil {
		return nil, err
	}

	progress := session.Progress()
	if err := s.core.staging.StoreProgress(ctx, req.UploadID, &progress, s.core.cfg.TTL.Progress()); err != nil {
		return nil, err
	}

	return session, nil
}

// bootstrapSession reconstructs session metadata from the chunk request when
// the init call raced or its key expired. Correctness is only guaranteed when
// init precedes chunks; this keeps distributed deployments from losing an
// upload over ordering.
func (s *sessionService) bootstrapSession(req port.ChunkRequest) (*domain.UploadSession, error) {
	if req.Filename == "" || req.FileSize <= 0 || req.TotalChunks <= 0 {
		return nil, port.ErrSessionNotFound
	}

	logger.Warnw("Bootstrapping session from chunk request",
		"upload_id", req.UploadID,
		"file_name", req.Filename,
		"total_chunks", req.TotalChunks,
	)

	return &domain.UploadSession{
		UploadID:    req.UploadID,
		Filename:    req.Filename,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		ChunkSize:   (req.FileSize + int64(req.TotalChunks) - 1) / int64(req.TotalChunks),
		TotalChunks: req.TotalChunks,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// getProgress returns the polling snapshot for a session.
func (s *sessionService) getProgress(ctx context.Context, uploadID string) (*domain.UploadProgress, error) {
	if uploadID == "" {
		return nil, fmt.Errorf("%w: uploadId is required", port.ErrInvalidRequest)
	}
	return s.core.staging.GetProgress(ctx, uploadID)
}

// cleanupUpload best-effort deletes the upload's staged keys in the
// background. TTLs are the backstop, so failures are logged and dropped.
func (s *sessionService) cleanupUpload(uploadID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if err := s.core.staging.CleanupUpload(ctx, uploadID); err != nil {
			logger.Warnw("Upload cleanup failed", "upload_id", uploadID, "error", err.Error())
			return
		}
		logger.Infow("Upload cleanup finished", "upload_id", uploadID)
	}()
}
