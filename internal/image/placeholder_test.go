package image

import (
	"context"
	"strings"
	"testing"
)

func TestPlaceholderNeverFails(t *testing.T) {
	g := NewPlaceholder()
	url, err := g.Generate(context.Background(), "")
	if err != nil {
		t.Fatalf("placeholder generator must not fail: %v", err)
	}
	if !strings.HasPrefix(url, "https://picsum.photos/") {
		t.Fatalf("unexpected placeholder url: %q", url)
	}

	again, _ := g.Generate(context.Background(), "a completely different prompt")
	if again != url {
		t.Fatalf("placeholder url should be fixed, got %q then %q", url, again)
	}
}
