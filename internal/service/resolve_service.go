package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/spaolacci/murmur3"
)

// imageURLPattern matches http(s) URLs whose path ends in a known image
// extension. Query strings intentionally don't match; the heuristic favors
// precision over recall.
var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp|bmp|svg)$`)

// imageHeaderKeywords flag a column as imagery by name alone.
var imageHeaderKeywords = []string{"image", "img", "photo", "picture", "url"}

// resolveService detects image-URL columns in tabular previews and replaces
// matching cells with downloaded thumbnails.
type resolveService struct {
	core *PipelineServiceImpl
}

// newResolveService creates the embedded-image resolution use-case service.
func newResolveService(core *PipelineServiceImpl) *resolveService {
	return &resolveService{core: core}
}

// isImageURL reports whether a cell value looks like an image reference.
func isImageURL(s string) bool {
	return imageURLPattern.MatchString(s)
}

// detectImageColumns samples the first rows of each column and flags it when
// the URL hit ratio clears the threshold or the header name suggests imagery.
// Confidence is always the hit ratio, even for keyword-flagged columns.
func (s *resolveService) detectImageColumns(headers []string, rows [][]domain.Cell) []domain.ImageColumn {
	sampleSize := s.core.cfg.Resolver.SampleRows
	if sampleSize > len(rows) {
		sampleSize = len(rows)
	}

	var columns []domain.ImageColumn
	for index, header := range headers {
		hits := 0
		for i := 0; i < sampleSize; i++ {
			if index >= len(rows[i]) {
				continue
			}
			cell := rows[i][index]
			if cell.Kind == domain.CellText && isImageURL(cell.Text) {
				hits++
			}
		}

		ratio := 0.0
		if sampleSize > 0 {
			ratio = float64(hits) / float64(sampleSize)
		}

		if ratio > s.core.cfg.Resolver.HitRatio || hasImageKeyword(header) {
			columns = append(columns, domain.ImageColumn{
				Index:      index,
				Name:       header,
				Confidence: ratio,
			})
		}
	}
	return columns
}

func hasImageKeyword(header string) bool {
	lower := strings.ToLower(header)
	for _, keyword := range imageHeaderKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// resolvePreview mutates the preview in place: every URL-shaped cell in a
// flagged column becomes an image cell. All cells resolve concurrently; the
// preview row cap bounds the fan-out. One cell's failure never touches the
// others.
func (s *resolveService) resolvePreview(ctx context.Context, uploadID string, preview *domain.TabularPreview) {
	columns := s.detectImageColumns(preview.Headers, preview.Rows)
	if len(columns) == 0 {
		preview.HasImages = false
		return
	}

	preview.HasImages = true
	preview.ImageColumns = columns
	logger.Infow("Image columns detected", "upload_id", uploadID, "columns", len(columns))

	var wg sync.WaitGroup
	for rowIdx := range preview.Rows {
		for _, column := range columns {
			if column.Index >= len(preview.Rows[rowIdx]) {
				continue
			}
			cell := preview.Rows[rowIdx][column.Index]
			if cell.Kind != domain.CellText || !isImageURL(cell.Text) {
				continue
			}

			wg.Add(1)
			go func(row, col int, url string) {
				defer wg.Done()
				resolved := s.resolveCell(ctx, uploadID, url)
				preview.Rows[row][col] = domain.ImageCellOf(resolved)
			}(rowIdx, column.Index, cell.Text)
		}
	}
	wg.Wait()
}

// resolveCell produces the resolution outcome for one URL: cache hit, fresh
// thumbnail, or a recorded error. Never returns nil and never fails the
// caller.
func (s *resolveService) resolveCell(ctx context.Context, uploadID, url string) *domain.ImageCell {
	ref := thumbRef(uploadID, url)

	if cached, err := s.core.staging.GetThumb(ctx, ref); err == nil {
		return &domain.ImageCell{
			URL:       url,
			Thumbnail: base64.StdEncoding.EncodeToString(cached),
			Cached:    true,
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(s.core.cfg.Resolver.FetchTimeoutMS)*time.Millisecond)
	defer cancel()

	data, err := s.core.fetcher.Fetch(fetchCtx, url)
	if err != nil {
		logger.Warnw("Image fetch failed", "upload_id", uploadID, "url", url, "error", err.Error())
		return &domain.ImageCell{URL: url, Error: err.Error()}
	}

	thumb, err := s.core.imageUseCase.cellThumbnail(data)
	if err != nil {
		logger.Warnw("Cell thumbnail failed", "upload_id", uploadID, "url", url, "error", err.Error())
		return &domain.ImageCell{URL: url, Error: err.Error()}
	}

	if err := s.core.staging.StoreThumb(ctx, ref, thumb, s.core.cfg.TTL.ImageCache()); err != nil {
		logger.Warnw("Thumbnail cache write failed", "upload_id", uploadID, "url", url, "error", err.Error())
	}

	return &domain.ImageCell{
		URL:       url,
		Thumbnail: base64.StdEncoding.EncodeToString(thumb),
	}
}

// resolveBatch thumbnails an arbitrary-length URL list through a bounded
// worker pool, capping peak concurrency and downstream load outside the
// row-preview path. Per-URL failures stay on their cells.
func (s *resolveService) resolveBatch(ctx context.Context, uploadID string, urls []string) ([]*domain.ImageCell, error) {
	workers := s.core.batchWorkers()
	pool := resilience.NewWorkerPool(workers, workers*2)

	results := make([]*domain.ImageCell, len(urls))
	for i, url := range urls {
		i, url := i, url
		if err := pool.Submit(ctx, func() {
			results[i] = s.resolveCell(ctx, uploadID, url)
		}); err != nil {
			pool.Shutdown()
			return nil, fmt.Errorf("batch resolution aborted at %d: %w", i, err)
		}
	}

	pool.Shutdown()
	return results, nil
}

// thumbRef derives a fixed-length cache reference from the upload and URL,
// keeping arbitrarily long URLs out of store keys.
func thumbRef(uploadID, url string) string {
	return fmt.Sprintf("%s:%016x", uploadID, murmur3.Sum64([]byte(url)))
}
