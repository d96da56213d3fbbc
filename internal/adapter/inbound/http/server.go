package http_handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/anthanhphan/go-dataset-preview/internal/config"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	uploads  port.UploadService
	datasets port.DatasetService
	resolver port.ResolverService
}

func NewServer(cfg *config.Config, uploads port.UploadService, datasets port.DatasetService, resolver port.ResolverService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimit,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:      app,
		cfg:      cfg,
		uploads:  uploads,
		datasets: datasets,
		resolver: resolver,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")
	api.Put("/uploads", s.handleInitUpload)
	api.Post("/uploads/chunks", s.handleStageChunk)
	api.Get("/uploads/progress", s.handleProgress)
	api.Post("/datasets/:id/finalize", s.handleFinalize)
	api.Get("/datasets/:id/preview", s.handlePreview)
	api.Post("/images/resolve", s.handleResolveImages)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// errorStatus maps pipeline errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, port.ErrInvalidRequest), errors.Is(err, port.ErrChunkNotFound):
		return fiber.StatusBadRequest
	case errors.Is(err, port.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, port.ErrSessionNotFound), errors.Is(err, port.ErrDatasetNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, port.ErrDatasetExpired):
		return fiber.StatusGone
	default:
		return fiber.StatusInternalServerError
	}
}

type initUploadRequest struct {
	Filename string `json:"filename"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

func (s *Server) handleInitUpload(c *fiber.Ctx) error {
	var req initUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := s.uploads.InitUpload(c.Context(), req.Filename, req.FileSize, req.MimeType)
	if err != nil {
		sdklogger.Warnw("Upload init rejected", "file_name", req.Filename, "error", err.Error())
		return s.sendJSONError(c, errorStatus(err), err.Error())
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"uploadId":    session.UploadID,
		"chunkSize":   session.ChunkSize,
		"totalChunks": session.TotalChunks,
	})
}

func (s *Server) handleStageChunk(c *fiber.Ctx) error {
	req, err := parseChunkForm(c)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := s.uploads.StageChunk(c.Context(), *req)
	if err != nil {
		sdklogger.Errorw("Chunk staging failed",
			"upload_id", req.UploadID,
			"chunk_index", req.Index,
			"error", err.Error(),
		)
		return s.sendJSONError(c, errorStatus(err), err.Error())
	}

	response := fiber.Map{
		"success":    true,
		"uploadId":   req.UploadID,
		"isComplete": result.IsComplete,
		"progress":   result.Progress,
	}
	if result.IsComplete {
		response["message"] = "Upload complete"
		response["datasetId"] = result.DatasetID
		response["previewUrl"] = result.PreviewURL
	} else {
		response["message"] = fmt.Sprintf("Chunk %d/%d uploaded", req.Index+1, result.Progress.TotalChunks)
	}
	return c.JSON(response)
}

// parseChunkForm extracts the multipart chunk payload and its metadata.
func parseChunkForm(c *fiber.Ctx) (*port.ChunkRequest, error) {
	fileHeader, err := c.FormFile("chunk")
	if err != nil {
		return nil, errors.New("missing 'chunk' file part")
	}

	index, err := strconv.Atoi(c.FormValue("chunkIndex"))
	if err != nil {
		return nil, errors.New("missing or invalid 'chunkIndex'")
	}
	uploadID := c.FormValue("uploadId")
	if uploadID == "" {
		return nil, errors.New("missing 'uploadId'")
	}

	totalChunks, _ := strconv.Atoi(c.FormValue("totalChunks"))
	fileSize, _ := strconv.ParseInt(c.FormValue("fileSize"), 10, 64)

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk part: %w", err)
	}

	return &port.ChunkRequest{
		UploadID:    uploadID,
		Index:       index,
		TotalChunks: totalChunks,
		Filename:    c.FormValue("filename"),
		FileSize:    fileSize,
		MimeType:    c.FormValue("mimeType"),
		Data:        data,
	}, nil
}

func (s *Server) handleProgress(c *fiber.Ctx) error {
	uploadID := c.Query("uploadId")
	if uploadID == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'uploadId' query parameter")
	}

	progress, err := s.uploads.GetProgress(c.Context(), uploadID)
	if err != nil {
		return s.sendJSONError(c, errorStatus(err), "Upload not found or expired")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}

func (s *Server) handleFinalize(c *fiber.Ctx) error {
	dataset, err := s.datasets.Finalize(c.Context(), c.Params("id"))
	if err != nil {
		sdklogger.Warnw("Finalize failed", "dataset_id", c.Params("id"), "error", err.Error())
		return s.sendJSONError(c, errorStatus(err), err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Dataset finalized successfully",
		"dataset": fiber.Map{
			"id":          dataset.ID.Hex(),
			"status":      dataset.Status,
			"finalizedAt": dataset.FinalizedAt,
		},
	})
}

type resolveImagesRequest struct {
	UploadID string   `json:"uploadId"`
	URLs     []string `json:"imageUrls"`
}

// handleResolveImages thumbnails a URL list through the bounded bulk
// resolver. Per-URL failures come back on their cells, not as a request error.
func (s *Server) handleResolveImages(c *fiber.Ctx) error {
	var req resolveImagesRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UploadID == "" || len(req.URLs) == 0 {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'uploadId' or 'imageUrls'")
	}

	cells, err := s.resolver.ResolveBatch(c.Context(), req.UploadID, req.URLs)
	if err != nil {
		sdklogger.Errorw("Bulk image resolution failed", "upload_id", req.UploadID, "error", err.Error())
		return s.sendJSONError(c, errorStatus(err), err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"images":  cells,
	})
}

func (s *Server) handlePreview(c *fiber.Ctx) error {
	preview, err := s.datasets.GetPreview(c.Context(), c.Params("id"))
	if err != nil {
		return s.sendJSONError(c, errorStatus(err), err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"dataset": fiber.Map{
			"id":            preview.ID,
			"filename":      preview.Filename,
			"fileSize":      preview.FileSize,
			"fileType":      preview.FileType,
			"preview":       preview.Preview,
			"status":        preview.Status,
			"uploadedAt":    preview.UploadedAt,
			"expiresAt":     preview.ExpiresAt,
			"timeRemaining": preview.TimeRemainingMS,
			"batchInfo":     preview.BatchInfo,
		},
	})
}
