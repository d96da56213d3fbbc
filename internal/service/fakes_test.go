package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/config"
	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testConfig returns defaults suitable for unit tests.
func testConfig() *config.Config {
	return config.DefaultConfig()
}

// fakeStagingStore is an in-memory StagingStore. TTLs are recorded but never
// enforced; tests expire keys by deleting them.
type fakeStagingStore struct {
	mu        sync.Mutex
	chunks    map[string][]byte
	sessions  map[string]*domain.UploadSession
	progress  map[string]*domain.UploadProgress
	previews  map[string]*domain.Preview
	thumbs    map[string][]byte
	cleanups  []string
	chunkErr  error
	sessErr   error
	thumbErrs map[string]error
}

func newFakeStagingStore() *fakeStagingStore {
	return &fakeStagingStore{
		chunks:    make(map[string][]byte),
		sessions:  make(map[string]*domain.UploadSession),
		progress:  make(map[string]*domain.UploadProgress),
		previews:  make(map[string]*domain.Preview),
		thumbs:    make(map[string][]byte),
		thumbErrs: make(map[string]error),
	}
}

func chunkMapKey(uploadID string, index int) string {
	return fmt.Sprintf("%s:%d", uploadID, index)
}

func (f *fakeStagingStore) StoreChunk(_ context.Context, uploadID string, index int, data []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.chunkErr != nil {
		return f.chunkErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.chunks[chunkMapKey(uploadID, index)] = cp
	return nil
}

func (f *fakeStagingStore) GetChunk(_ context.Context, uploadID string, index int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.chunks[chunkMapKey(uploadID, index)]
	if !ok {
		return nil, port.ErrChunkNotFound
	}
	return data, nil
}

func (f *fakeStagingStore) StoreSession(_ context.Context, session *domain.UploadSession, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessErr != nil {
		return f.sessErr
	}
	cp := *session
	cp.Uploaded = append([]int(nil), session.Uploaded...)
	f.sessions[session.UploadID] = &cp
	return nil
}

func (f *fakeStagingStore) GetSession(_ context.Context, uploadID string) (*domain.UploadSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[uploadID]
	if !ok {
		return nil, port.ErrSessionNotFound
	}
	cp := *session
	cp.Uploaded = append([]int(nil), session.Uploaded...)
	return &cp, nil
}

func (f *fakeStagingStore) StoreProgress(_ context.Context, uploadID string, progress *domain.UploadProgress, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *progress
	f.progress[uploadID] = &cp
	return nil
}

func (f *fakeStagingStore) GetProgress(_ context.Context, uploadID string) (*domain.UploadProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	progress, ok := f.progress[uploadID]
	if !ok {
		return nil, port.ErrSessionNotFound
	}
	cp := *progress
	return &cp, nil
}

func (f *fakeStagingStore) StorePreview(_ context.Context, uploadID string, preview *domain.Preview, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.previews[uploadID] = preview
	return nil
}

func (f *fakeStagingStore) GetPreview(_ context.Context, uploadID string) (*domain.Preview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	preview, ok := f.previews[uploadID]
	if !ok {
		return nil, port.ErrPreviewNotFound
	}
	return preview, nil
}

func (f *fakeStagingStore) StoreThumb(_ context.Context, ref string, data []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.thumbErrs[ref]; err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.thumbs[ref] = cp
	return nil
}

func (f *fakeStagingStore) GetThumb(_ context.Context, ref string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.thumbs[ref]
	if !ok {
		return nil, port.ErrPreviewNotFound
	}
	return data, nil
}

func (f *fakeStagingStore) CleanupUpload(_ context.Context, uploadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanups = append(f.cleanups, uploadID)
	for key := range f.chunks {
		if len(key) > len(uploadID) && key[:len(uploadID)] == uploadID {
			delete(f.chunks, key)
		}
	}
	delete(f.sessions, uploadID)
	delete(f.progress, uploadID)
	return nil
}

// fakeRecordStore is an in-memory RecordStore keyed by ObjectID.
type fakeRecordStore struct {
	mu       sync.Mutex
	datasets map[primitive.ObjectID]*domain.Dataset
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{datasets: make(map[primitive.ObjectID]*domain.Dataset)}
}

func (f *fakeRecordStore) Create(_ context.Context, dataset *domain.Dataset) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := dataset.ID
	if id.IsZero() {
		id = primitive.NewObjectID()
	}
	cp := *dataset
	cp.ID = id
	f.datasets[id] = &cp
	return id, nil
}

func (f *fakeRecordStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Dataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dataset, ok := f.datasets[id]
	if !ok {
		return nil, port.ErrDatasetNotFound
	}
	cp := *dataset
	return &cp, nil
}

func (f *fakeRecordStore) Save(_ context.Context, dataset *domain.Dataset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.datasets[dataset.ID]; !ok {
		return port.ErrDatasetNotFound
	}
	cp := *dataset
	f.datasets[dataset.ID] = &cp
	return nil
}

// fakeFetcher serves canned responses by URL.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string][]byte
	errs      map[string]error
	calls     map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: make(map[string][]byte),
		errs:      make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	if data, ok := f.responses[url]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("HTTP 404 fetching image")
}
