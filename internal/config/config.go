package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds the preview service configuration.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Upload   UploadConfig   `json:"upload" yaml:"upload"`
	Resolver ResolverConfig `json:"resolver" yaml:"resolver"`
	TTL      TTLConfig      `json:"ttl" yaml:"ttl"`
	Redis    RedisConfig    `json:"redis" yaml:"redis"`
	Mongo    MongoConfig    `json:"mongo" yaml:"mongo"`
	Logger   logger.Config  `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	BodyLimit int    `json:"body_limit" yaml:"body_limit"`
}

type UploadConfig struct {
	MaxFileSize        int64 `json:"max_file_size" yaml:"max_file_size"`
	LargeFileThreshold int64 `json:"large_file_threshold" yaml:"large_file_threshold"`
	LargeChunkSize     int64 `json:"large_chunk_size" yaml:"large_chunk_size"`
	SmallChunkSize     int64 `json:"small_chunk_size" yaml:"small_chunk_size"`
	PreviewRows        int   `json:"preview_rows" yaml:"preview_rows"`
}

type ResolverConfig struct {
	FetchTimeoutMS int     `json:"fetch_timeout_ms" yaml:"fetch_timeout_ms"`
	SampleRows     int     `json:"sample_rows" yaml:"sample_rows"`
	HitRatio       float64 `json:"hit_ratio" yaml:"hit_ratio"`
	BatchWorkers   int     `json:"batch_workers" yaml:"batch_workers"`
}

type TTLConfig struct {
	ChunkSeconds       int `json:"chunk_seconds" yaml:"chunk_seconds"`
	SessionSeconds     int `json:"session_seconds" yaml:"session_seconds"`
	ProgressSeconds    int `json:"progress_seconds" yaml:"progress_seconds"`
	ImageCacheSeconds  int `json:"image_cache_seconds" yaml:"image_cache_seconds"`
	DatasetExpiryHours int `json:"dataset_expiry_hours" yaml:"dataset_expiry_hours"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type MongoConfig struct {
	URI      string `json:"uri" yaml:"uri"`
	Database string `json:"database" yaml:"database"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			BodyLimit: 10 * 1024 * 1024, // one chunk plus form overhead
		},
		Upload: UploadConfig{
			MaxFileSize:        1024 * 1024 * 1024, // 1GiB
			LargeFileThreshold: 50 * 1024 * 1024,
			LargeChunkSize:     5 * 1024 * 1024,
			SmallChunkSize:     2 * 1024 * 1024,
			PreviewRows:        10,
		},
		Resolver: ResolverConfig{
			FetchTimeoutMS: 10000,
			SampleRows:     5,
			HitRatio:       0.6,
			BatchWorkers:   10,
		},
		TTL: TTLConfig{
			ChunkSeconds:       1800,
			SessionSeconds:     1800,
			ProgressSeconds:    3600,
			ImageCacheSeconds:  1800,
			DatasetExpiryHours: 24,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "dataset_preview",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Duration helpers keep TTL math in one place.

func (t TTLConfig) Chunk() time.Duration      { return time.Duration(t.ChunkSeconds) * time.Second }
func (t TTLConfig) Session() time.Duration    { return time.Duration(t.SessionSeconds) * time.Second }
func (t TTLConfig) Progress() time.Duration   { return time.Duration(t.ProgressSeconds) * time.Second }
func (t TTLConfig) ImageCache() time.Duration { return time.Duration(t.ImageCacheSeconds) * time.Second }
func (t TTLConfig) DatasetExpiry() time.Duration {
	return time.Duration(t.DatasetExpiryHours) * time.Hour
}

// Load loads configuration from file, falling back to defaults when no
// explicit path was given.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
