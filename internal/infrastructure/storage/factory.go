package storage

import (
	"context"
	"fmt"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	infraconfig "github.com/RobertWLight/BSC/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Archive is a document archive that can also read back what it stored
type Archive interface {
	appenrollment.DocumentArchive
	Download(ctx context.Context, storageKey string) ([]byte, string, error)
}

// NewDocumentArchive builds the archive selected by cfg.Driver.
// The s3 driver creates its bucket when missing.
func NewDocumentArchive(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver := "memory"
	if cfg != nil && cfg.Driver != "" {
		driver = cfg.Driver
	}

	switch driver {
	case "memory":
		logger.Info("Using in-memory document archive")
		return NewMemoryDocumentArchive(), nil
	case "s3":
		archive, err := NewS3DocumentArchive(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 document archive",
			zap.String("endpoint", cfg.Endpoint),
			zap.String("bucket", cfg.Bucket),
		)
		return archive, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
