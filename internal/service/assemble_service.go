package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-dataset-preview/internal/port"
)

// assembleService reconstructs the full byte sequence from staged chunks.
type assembleService struct {
	core *PipelineServiceImpl
}

// newAssembleService creates the reassembly use-case service.
func newAssembleService(core *PipelineServiceImpl) *assembleService {
	return &assembleService{core: core}
}

// assemble concatenates chunks in strict index order, so the final layout
// depends only on which indices arrived, never on arrival order. It fails
// closed on the first gap and performs no mutation.
func (s *assembleService) assemble(ctx context.Context, uploadID string, totalChunks int) ([]byte, error) {
	var buf bytes.Buffer

	for i := 0; i < totalChunks; i++ {
		data, err := s.core.staging.GetChunk(ctx, uploadID, i)
		if errors.Is(err, port.ErrChunkNotFound) {
			return nil, &port.MissingChunkError{Index: i}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chunk %d: %w", i, err)
		}
		buf.Write(data)
	}

	return buf.Bytes(), nil
}
