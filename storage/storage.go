package storage

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
)

// Store persists the statements of named graphs.
//
// Blank nodes are stored as their label only; loading a saved graph yields statements
// whose anonymous identities equal the saved ones. Implementations are safe for
// concurrent use.
type Store interface {
	// Save replaces the statements stored under name
	Save(ctx context.Context, name string, statements []graph.Statement) error

	// Load returns the statements stored under name in the order they were saved.
	// A missing name yields an error wrapping errors.ErrKeyNotFound.
	Load(ctx context.Context, name string) ([]graph.Statement, error)

	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names starting with prefix in lexicographic order
	List(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

// ValidateName checks a graph name. Names are restricted to the characters every
// backend accepts as a key: ASCII letters, digits and "-_=./", not starting or ending
// with "." or "/".
func ValidateName(name string) error {
	if name == "" {
		return errors.InvalidArgument("storage", "ValidateName", "empty graph name")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '=', r == '.', r == '/':
		default:
			return errors.InvalidArgument("storage", "ValidateName", "graph name %q contains %q", name, r)
		}
	}
	first, last := name[0], name[len(name)-1]
	if first == '.' || first == '/' || last == '.' || last == '/' {
		return errors.InvalidArgument("storage", "ValidateName", "graph name %q has a leading or trailing separator", name)
	}
	return nil
}

// NotFound builds the error returned by Load for a missing name
func NotFound(component, name string) error {
	return errors.WrapInvalid(fmt.Errorf("%w: graph %q", errors.ErrKeyNotFound, name),
		component, "Load", "graph lookup")
}

// IsNotFound reports whether err reports a missing graph
func IsNotFound(err error) bool {
	return stderrors.Is(err, errors.ErrKeyNotFound)
}
