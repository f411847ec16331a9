package storage

import (
	"fmt"
	"io"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/config"
)

// NewRepositories builds the configured backend. The returned closer flushes
// pending writes (file backend) or releases the pool (postgres).
func NewRepositories(cfg *config.Config, logger internal.Logger) (WorkspaceRepository, UserRepository, io.Closer, error) {
	switch cfg.DBType {
	case "file":
		storage, err := NewFileStorage(cfg.FileUsers, cfg.FileWorkspaces, cfg.FileProfiles, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return storage, storage, storage, nil
	case "postgres":
		storage, err := NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return storage, storage, storage, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.DBType)
	}
}
