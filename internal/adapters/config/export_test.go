package config

import "go.trai.ch/uplock/internal/core/ports"

// NewLoaderWithEnv exports newLoaderWithEnv for testing purposes.
func NewLoaderWithEnv(log ports.Logger, env map[string]string) *Loader {
	return newLoaderWithEnv(log, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}
