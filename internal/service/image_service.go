package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	"github.com/disintegration/imaging"
)

const (
	thumbnailMaxSize  = 200
	compressedMaxSize = 800
	cellThumbSize     = 100

	thumbnailQuality  = 80
	compressedQuality = 85
	cellThumbQuality  = 80
)

// imageService derives preview artifacts from raw image bytes.
type imageService struct {
	core *PipelineServiceImpl
}

// newImageService creates the image processing use-case service.
func newImageService(core *PipelineServiceImpl) *imageService {
	return &imageService{core: core}
}

// process decodes the upload and derives a thumbnail and a compressed
// preview, both fit inside their bounding boxes without upscaling. Corrupt
// or unsupported input fails the whole ingestion for the upload.
func (s *imageService) process(data []byte) (*domain.ImagePreview, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", port.ErrImageProcessing, err)
	}

	bounds := src.Bounds()

	thumbnail, err := encodeJPEG(imaging.Fit(src, thumbnailMaxSize, thumbnailMaxSize, imaging.Lanczos), thumbnailQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: thumbnail: %v", port.ErrImageProcessing, err)
	}

	compressed, err := encodeJPEG(imaging.Fit(src, compressedMaxSize, compressedMaxSize, imaging.Lanczos), compressedQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: compressed: %v", port.ErrImageProcessing, err)
	}

	return &domain.ImagePreview{
		Thumbnail:  base64.StdEncoding.EncodeToString(thumbnail),
		Compressed: base64.StdEncoding.EncodeToString(compressed),
		Dimensions: domain.Dimensions{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		},
		Format: format,
		Size:   int64(len(data)),
	}, nil
}

// cellThumbnail crops-and-fills a downloaded cell image to a fixed square.
func (s *imageService) cellThumbnail(data []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", port.ErrImageProcessing, err)
	}

	thumb := imaging.Fill(src, cellThumbSize, cellThumbSize, imaging.Center, imaging.Lanczos)
	return encodeJPEG(thumb, cellThumbQuality)
}

// encodeJPEG renders an image to JPEG bytes at the given quality.
func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
