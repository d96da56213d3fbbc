package domain

import (
	"math"
	"time"
)

// UploadSession is the ephemeral bookkeeping record for one in-progress
// upload. It lives in the staging store under a sliding TTL and is the only
// structure tracking which chunk blobs exist.
type UploadSession struct {
	UploadID    string    `json:"uploadId"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"fileSize"`
	MimeType    string    `json:"mimeType"`
	ChunkSize   int64     `json:"chunkSize"`
	TotalChunks int       `json:"totalChunks"`
	Uploaded    []int     `json:"uploadedChunks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadProgress is the client-facing progress snapshot.
type UploadProgress struct {
	UploadedChunks int `json:"uploadedChunks"`
	TotalChunks    int `json:"totalChunks"`
	Percentage     int `json:"percentage"`
}

// MarkUploaded records the arrival of a chunk index. Re-staging the same
// index is an idempotent no-op; the return value reports whether the set grew.
func (s *UploadSession) MarkUploaded(index int) bool {
	for _, existing := range s.Uploaded {
		if existing == index {
			return false
		}
	}
	s.Uploaded = append(s.Uploaded, index)
	return true
}

// UploadedCount returns the number of distinct chunk indices staged so far.
func (s *UploadSession) UploadedCount() int {
	return len(s.Uploaded)
}

// IsComplete reports whether every chunk index has arrived. Completeness is
// determined solely by set cardinality, not arrival order.
func (s *UploadSession) IsComplete() bool {
	return s.TotalChunks > 0 && len(s.Uploaded) == s.TotalChunks
}

// Progress builds the progress snapshot for the current arrival set.
func (s *UploadSession) Progress() UploadProgress {
	p := UploadProgress{
		UploadedChunks: len(s.Uploaded),
		TotalChunks:    s.TotalChunks,
	}
	if s.TotalChunks > 0 {
		p.Percentage = int(math.Round(float64(len(s.Uploaded)) / float64(s.TotalChunks) * 100))
	}
	return p
}
