package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileType classifies the uploaded artifact.
type FileType string

const (
	FileTypeDataset  FileType = "dataset"
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
)

// Status is the lifecycle state of a durable dataset record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusFinalized  Status = "finalized"
	StatusExpired    Status = "expired"
	StatusFailed     Status = "failed"
)

// statusTransitions enumerates the legal edges of the lifecycle state machine.
// Finalized, expired and failed are terminal.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFinalized, StatusExpired, StatusFailed},
	StatusUploading:  {StatusPending, StatusProcessing, StatusExpired, StatusFailed},
	StatusProcessing: {StatusPending, StatusFinalized, StatusExpired, StatusFailed},
	StatusFinalized:  {},
	StatusExpired:    {},
	StatusFailed:     {},
}

// CanTransition reports whether moving from s to target is a legal edge.
func (s Status) CanTransition(target Status) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// BatchInfo records how the file arrived over the chunked upload protocol.
type BatchInfo struct {
	TotalBatches    int   `json:"totalBatches" bson:"totalBatches"`
	UploadedBatches int   `json:"uploadedBatches" bson:"uploadedBatches"`
	BatchSize       int64 `json:"batchSize" bson:"batchSize"`
	IsComplete      bool  `json:"isComplete" bson:"isComplete"`
}

// Dataset is the durable record created once reassembly and processing succeed.
// ExpiresAt is non-nil until the record is finalized; the store's TTL index
// deletes the document once the timestamp passes.
type Dataset struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Filename     string             `json:"filename" bson:"filename"`
	OriginalName string             `json:"originalName" bson:"originalName"`
	FileSize     int64              `json:"fileSize" bson:"fileSize"`
	MimeType     string             `json:"mimeType" bson:"mimeType"`
	FileType     FileType           `json:"fileType" bson:"fileType"`

	// Data holds the raw reassembled bytes, base64 encoded. Only set for
	// tabular files; images keep derived artifacts in the preview instead.
	Data    string   `json:"-" bson:"data,omitempty"`
	Preview *Preview `json:"preview,omitempty" bson:"preview,omitempty"`

	BatchInfo BatchInfo `json:"batchInfo" bson:"batchInfo"`
	Status    Status    `json:"status" bson:"status"`

	// UploadID is a back-reference to the staging namespace, used for
	// fast-store preview reads. Absence of the staged entry is not an error.
	UploadID string `json:"redisUploadId,omitempty" bson:"redisUploadId,omitempty"`

	UploadedAt  time.Time  `json:"uploadedAt" bson:"uploadedAt"`
	ExpiresAt   *time.Time `json:"expiresAt" bson:"expiresAt"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty" bson:"finalizedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Transition moves the record to the target status, applying the side effects
// the target requires. It rejects illegal edges, so every status mutation in
// the system funnels through this single function.
func (d *Dataset) Transition(target Status, now time.Time) error {
	if !d.Status.CanTransition(target) {
		return fmt.Errorf("illegal status transition %q -> %q", d.Status, target)
	}

	d.Status = target
	d.UpdatedAt = now

	switch target {
	case StatusFinalized:
		d.FinalizedAt = &now
		d.ExpiresAt = nil
	case StatusExpired:
		d.ExpiresAt = &now
	}
	return nil
}

// IsExpired reports whether the record should be treated as gone, either by
// explicit status or because its expiry timestamp has passed.
func (d *Dataset) IsExpired(now time.Time) bool {
	if d.Status == StatusExpired {
		return true
	}
	return d.ExpiresAt != nil && now.After(*d.ExpiresAt)
}
