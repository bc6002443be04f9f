package image

import "context"

const placeholderURL = "https://picsum.photos/512"

// PlaceholderGenerator returns a fixed stock-photo URL without calling any
// provider. It can never fail.
type PlaceholderGenerator struct{}

func NewPlaceholder() PlaceholderGenerator { return PlaceholderGenerator{} }

func (PlaceholderGenerator) Generate(_ context.Context, _ string) (string, error) {
	return placeholderURL, nil
}
