// Package redisstore implements the staging store on Redis. Key layout:
//
//	upload:<uploadId>:chunk:<index>   raw chunk bytes
//	upload:<uploadId>:metadata        session JSON
//	upload:<uploadId>:progress        progress JSON
//	preview:dataset:<uploadId>        finalized preview JSON
//	preview:image:<ref>               derived image bytes
//
// Every key carries its own TTL; cleanup deletes the upload:<id> namespace
// and leaves preview keys to lapse on their own.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
}

var _ port.StagingStore = (*Store)(nil)

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func chunkKey(uploadID string, index int) string {
	return fmt.Sprintf("upload:%s:chunk:%d", uploadID, index)
}

func sessionKey(uploadID string) string {
	return fmt.Sprintf("upload:%s:metadata", uploadID)
}

func progressKey(uploadID string) string {
	return fmt.Sprintf("upload:%s:progress", uploadID)
}

func previewKey(uploadID string) string {
	return fmt.Sprintf("preview:dataset:%s", uploadID)
}

func thumbKey(ref string) string {
	return fmt.Sprintf("preview:image:%s", ref)
}

func (s *Store) StoreChunk(ctx context.Context, uploadID string, index int, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, chunkKey(uploadID, index), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store chunk %d: %w", index, err)
	}
	return nil
}

func (s *Store) GetChunk(ctx context.Context, uploadID string, index int) ([]byte, error) {
	data, err := s.client.Get(ctx, chunkKey(uploadID, index)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrChunkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk %d: %w", index, err)
	}
	return data, nil
}

func (s *Store) StoreSession(ctx context.Context, session *domain.UploadSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.UploadID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, uploadID string) (*domain.UploadSession, error) {
	payload, err := s.client.Get(ctx, sessionKey(uploadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session domain.UploadSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *Store) StoreProgress(ctx context.Context, uploadID string, progress *domain.UploadProgress, ttl time.Duration) error {
	payload, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.client.Set(ctx, progressKey(uploadID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store progress: %w", err)
	}
	return nil
}

func (s *Store) GetProgress(ctx context.Context, uploadID string) (*domain.UploadProgress, error) {
	payload, err := s.client.Get(ctx, progressKey(uploadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	var progress domain.UploadProgress
	if err := json.Unmarshal(payload, &progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return &progress, nil
}

func (s *Store) StorePreview(ctx context.Context, uploadID string, preview *domain.Preview, ttl time.Duration) error {
	payload, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("failed to marshal preview: %w", err)
	}
	if err := s.client.Set(ctx, previewKey(uploadID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store preview: %w", err)
	}
	return nil
}

func (s *Store) GetPreview(ctx context.Context, uploadID string) (*domain.Preview, error) {
	payload, err := s.client.Get(ctx, previewKey(uploadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrPreviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preview: %w", err)
	}

	var preview domain.Preview
	if err := json.Unmarshal(payload, &preview); err != nil {
		return nil, fmt.Errorf("failed to decode preview: %w", err)
	}
	return &preview, nil
}

func (s *Store) StoreThumb(ctx context.Context, ref string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, thumbKey(ref), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store thumbnail: %w", err)
	}
	return nil
}

func (s *Store) GetThumb(ctx context.Context, ref string) ([]byte, error) {
	data, err := s.client.Get(ctx, thumbKey(ref)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrPreviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail: %w", err)
	}
	return data, nil
}

// CleanupUpload scans and deletes every key in the upload's namespace.
// Preview keys live outside it so a finished upload keeps its fast-read copy
// until the TTL lapses.
func (s *Store) CleanupUpload(ctx context.Context, uploadID string) error {
	pattern := fmt.Sprintf("upload:%s:*", uploadID)

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan upload keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete upload keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
