package lockfile

import (
	"net/http"

	"go.trai.ch/uplock/internal/core/ports"
)

// NewSourceWithClient exports newSourceWithClient for testing purposes.
func NewSourceWithClient(log ports.Logger, client *http.Client) *Source {
	return newSourceWithClient(log, client)
}
