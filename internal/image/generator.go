// Package image generates a single square illustration for a committed chat
// turn. Generation failures are meant to be non-fatal for the caller: the
// turn still commits without an image.
package image

import "context"

// Generator produces one image for a prompt and returns its URL.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
