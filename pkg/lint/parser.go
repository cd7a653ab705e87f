package lint

import (
	"context"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Parser parses Markdown content into a FileSnapshot.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/goldmark) provide the concrete parsing logic.
//
// Implementations must be deterministic for a given (path, content) pair,
// must not mutate content, and must return a snapshot whose root is a
// NodeDocument with a half-open byte range on every node.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
