// Package backend opens the storage.Storage implementation named by the
// configuration. It is the one place that knows every concrete backend.
package backend

import (
	"fmt"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/redis"
	"github.com/aanand-mishra/student-records/internal/storage/sqlite"
)

// Open returns the backend selected by cfg.Backend.
func Open(cfg config.Storage) (storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendRedis:
		rc := redis.DefaultConfig()
		rc.Addr = cfg.Redis.Addr
		rc.Password = cfg.Redis.Password
		rc.DB = cfg.Redis.DB
		rc.Prefix = cfg.Redis.Prefix
		r, err := redis.New(rc)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("backend.Open: unknown storage backend %q", cfg.Backend)
	}
}
