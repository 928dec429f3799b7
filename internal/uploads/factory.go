package uploads

import (
	"context"
	"fmt"

	"lawFirmWebsite/internal/config"
)

// NewStore returns the backend selected by cfg.Backend.
func NewStore(ctx context.Context, cfg config.UploadConfig) (Store, error) {
	switch cfg.Backend {
	case "", "filesystem":
		return NewFilesystemStore(cfg.Dir)
	case "s3":
		return NewS3Store(ctx, cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown upload backend: %s", cfg.Backend)
	}
}
