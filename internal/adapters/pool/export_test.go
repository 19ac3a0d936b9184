package pool

import "io"

// NewLoaderWithStdin creates a Loader reading "-" from r for testing purposes.
func NewLoaderWithStdin(r io.Reader) *Loader {
	return &Loader{stdin: r}
}
