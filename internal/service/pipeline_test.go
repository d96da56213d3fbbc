package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// splitChunks slices data into exactly count nearly-equal parts.
func splitChunks(data []byte, count int) [][]byte {
	chunks := make([][]byte, count)
	size := len(data) / count
	rem := len(data) % count
	start := 0
	for i := 0; i < count; i++ {
		end := start + size
		if i < rem {
			end++
		}
		chunks[i] = data[start:end]
		start = end
	}
	return chunks
}

func TestPipeline_ChunkedCSVUploadOutOfOrder(t *testing.T) {
	staging := newFakeStagingStore()
	records := newFakeRecordStore()
	core := NewPipelineService(testConfig(), staging, records, newFakeFetcher())
	ctx := context.Background()

	var sb strings.Builder
	sb.WriteString("id,name,score\n")
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&sb, "%d,user%d,%d\n", i, i, i*10)
	}
	content := []byte(sb.String())
	chunks := splitChunks(content, 6)

	uploadID := "e2e-csv-upload"
	var final *port.ChunkResult

	// Chunks arrive scrambled; the session bootstraps from the first one.
	for _, i := range []int{3, 0, 5, 1, 4, 2} {
		result, err := core.StageChunk(ctx, port.ChunkRequest{
			UploadID:    uploadID,
			Index:       i,
			TotalChunks: len(chunks),
			Filename:    "scores.csv",
			FileSize:    int64(len(content)),
			MimeType:    "text/csv",
			Data:        chunks[i],
		})
		if err != nil {
			t.Fatalf("StageChunk(%d) failed: %v", i, err)
		}
		final = result
		wantComplete := i == 2 // last element of the scrambled order
		if result.IsComplete != wantComplete {
			t.Fatalf("chunk %d: IsComplete = %v, want %v", i, result.IsComplete, wantComplete)
		}
	}

	if final.DatasetID == "" {
		t.Fatal("completing chunk must carry the dataset ID")
	}
	if final.PreviewURL != "/preview/"+final.DatasetID {
		t.Errorf("preview url = %q", final.PreviewURL)
	}
	if final.Progress.Percentage != 100 {
		t.Errorf("final percentage = %d, want 100", final.Progress.Percentage)
	}

	// The durable record holds the bounded preview and the full raw bytes.
	oid, err := primitive.ObjectIDFromHex(final.DatasetID)
	if err != nil {
		t.Fatalf("dataset id is not an object id: %v", err)
	}
	dataset, err := records.GetByID(ctx, oid)
	if err != nil {
		t.Fatalf("dataset record missing: %v", err)
	}
	if dataset.Status != domain.StatusPending {
		t.Errorf("status = %v, want pending", dataset.Status)
	}
	if dataset.FileType != domain.FileTypeDataset {
		t.Errorf("file type = %v, want dataset", dataset.FileType)
	}

	raw, err := base64.StdEncoding.DecodeString(dataset.Data)
	if err != nil {
		t.Fatalf("stored data is not base64: %v", err)
	}
	if string(raw) != string(content) {
		t.Error("reassembled bytes differ from the original content")
	}

	tabular := dataset.Preview.Tabular
	if tabular == nil {
		t.Fatal("expected a tabular preview")
	}
	if len(tabular.Rows) != 10 || tabular.TotalRows != 15 {
		t.Errorf("preview rows = %d, total = %d, want 10/15", len(tabular.Rows), tabular.TotalRows)
	}

	// The preview is mirrored into the fast store under the upload ID.
	if _, err := staging.GetPreview(ctx, uploadID); err != nil {
		t.Errorf("preview not mirrored: %v", err)
	}

	// Finalize once, then again: the second call is a no-op success.
	finalized, err := core.Finalize(ctx, final.DatasetID)
	if err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if finalized.Status != domain.StatusFinalized || finalized.FinalizedAt == nil {
		t.Fatalf("finalize result = %+v", finalized)
	}

	again, err := core.Finalize(ctx, final.DatasetID)
	if err != nil {
		t.Fatalf("repeat Finalize() failed: %v", err)
	}
	if !again.FinalizedAt.Equal(*finalized.FinalizedAt) {
		t.Error("repeat finalize must keep the original timestamp")
	}
}

func TestPipeline_ImageUpload(t *testing.T) {
	staging := newFakeStagingStore()
	records := newFakeRecordStore()
	core := NewPipelineService(testConfig(), staging, records, newFakeFetcher())
	ctx := context.Background()

	content := pngBytes(t, 640, 480)

	result, err := core.StageChunk(ctx, port.ChunkRequest{
		UploadID:    "e2e-image-upload",
		Index:       0,
		TotalChunks: 1,
		Filename:    "photo.png",
		FileSize:    int64(len(content)),
		MimeType:    "image/png",
		Data:        content,
	})
	if err != nil {
		t.Fatalf("StageChunk() failed: %v", err)
	}
	if !result.IsComplete {
		t.Fatal("single-chunk upload must complete immediately")
	}

	oid, _ := primitive.ObjectIDFromHex(result.DatasetID)
	dataset, err := records.GetByID(ctx, oid)
	if err != nil {
		t.Fatalf("dataset record missing: %v", err)
	}
	if dataset.FileType != domain.FileTypeImage {
		t.Errorf("file type = %v, want image", dataset.FileType)
	}
	if dataset.Data != "" {
		t.Error("image record must not keep raw bytes")
	}
	if dataset.Preview == nil || dataset.Preview.Image == nil {
		t.Fatal("expected an image preview")
	}
	if dataset.Preview.Image.Dimensions.Width != 640 {
		t.Errorf("width = %d, want 640", dataset.Preview.Image.Dimensions.Width)
	}

	// Image uploads also cache the compressed bytes for direct serving.
	if _, err := staging.GetThumb(ctx, "e2e-image-upload"); err != nil {
		t.Errorf("compressed preview not cached: %v", err)
	}
}

func TestPipeline_CorruptImageFailsClosed(t *testing.T) {
	records := newFakeRecordStore()
	core := NewPipelineService(testConfig(), newFakeStagingStore(), records, newFakeFetcher())

	_, err := core.StageChunk(context.Background(), port.ChunkRequest{
		UploadID:    "e2e-bad-image",
		Index:       0,
		TotalChunks: 1,
		Filename:    "broken.png",
		FileSize:    5,
		MimeType:    "image/png",
		Data:        []byte("nope!"),
	})
	if err == nil {
		t.Fatal("corrupt image must fail the completing chunk")
	}

	// Fail closed: no durable record exists, the client can retry.
	records.mu.Lock()
	defer records.mu.Unlock()
	if len(records.datasets) != 0 {
		t.Errorf("found %d records after failed ingestion, want 0", len(records.datasets))
	}
}

func TestPipeline_DocumentGetsPlaceholderPreview(t *testing.T) {
	records := newFakeRecordStore()
	core := NewPipelineService(testConfig(), newFakeStagingStore(), records, newFakeFetcher())
	ctx := context.Background()

	result, err := core.StageChunk(ctx, port.ChunkRequest{
		UploadID:    "e2e-doc-upload",
		Index:       0,
		TotalChunks: 1,
		Filename:    "notes.txt",
		FileSize:    11,
		MimeType:    "text/plain",
		Data:        []byte("hello world"),
	})
	if err != nil {
		t.Fatalf("StageChunk() failed: %v", err)
	}

	oid, _ := primitive.ObjectIDFromHex(result.DatasetID)
	dataset, err := records.GetByID(ctx, oid)
	if err != nil {
		t.Fatalf("dataset record missing: %v", err)
	}
	if dataset.FileType != domain.FileTypeDocument {
		t.Errorf("file type = %v, want document", dataset.FileType)
	}
	tabular := dataset.Preview.Tabular
	if tabular == nil || len(tabular.Rows) != 1 {
		t.Fatalf("placeholder preview = %+v", tabular)
	}
	if tabular.Rows[0][0].Text != "File content preview not available" {
		t.Errorf("placeholder cell = %q", tabular.Rows[0][0].Text)
	}
}
