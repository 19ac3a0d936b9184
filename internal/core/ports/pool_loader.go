package ports

import "go.trai.ch/uplock/internal/core/domain"

// PoolLoader reads a snapshot of the host's pending resolution pool.
//
//go:generate go run go.uber.org/mock/mockgen -source=pool_loader.go -destination=mocks/mock_pool_loader.go -package=mocks
type PoolLoader interface {
	// Load reads the snapshot at path. The path "-" reads standard input.
	Load(path string) (*domain.PoolEvent, error)
}
