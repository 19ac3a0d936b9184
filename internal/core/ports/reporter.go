package ports

import (
	"io"

	"go.trai.ch/uplock/internal/core/domain"
)

// Reporter renders overlay results for operators and host tooling.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Report writes the result to w in the named format (text, json or yaml).
	Report(w io.Writer, format string, result domain.OverlayResult) error
}
