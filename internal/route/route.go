// Package route looks up handlers by name or custom ID.
//
// A Table is built once from a static list and is read-only afterwards, so
// it is safe for concurrent use.
package route

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when two items share the same key.
	ErrDuplicateKey = errors.New("duplicate handler key")

	// ErrInvalidPattern is returned when a custom ID pattern cannot be parsed.
	ErrInvalidPattern = errors.New("invalid custom ID pattern")
)

// Option configures a Table.
type Option func(*options)

type options struct {
	patterns bool
}

// WithPatterns treats keys containing "{name}" placeholders as patterns
// instead of literal strings.
func WithPatterns() Option {
	return func(o *options) {
		o.patterns = true
	}
}

type patternEntry[T any] struct {
	pattern *Pattern
	item    T
}

// Table indexes items by key.
type Table[T any] struct {
	exact    map[string]T
	patterns []patternEntry[T]
}

// New builds a Table from items using key to derive each item's key.
func New[T any](items []T, key func(T) string, opts ...Option) (*Table[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table[T]{exact: make(map[string]T, len(items))}
	seenPatterns := make(map[string]bool)

	for _, item := range items {
		k := key(item)

		if o.patterns && IsPattern(k) {
			if seenPatterns[k] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k)
			}
			p, err := ParsePattern(k)
			if err != nil {
				return nil, err
			}
			seenPatterns[k] = true
			t.patterns = append(t.patterns, patternEntry[T]{pattern: p, item: item})
			continue
		}

		if _, ok := t.exact[k]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k)
		}
		t.exact[k] = item
	}

	return t, nil
}

// Find returns the item registered for key. An exact key wins over any
// pattern; otherwise patterns are tried in registration order and the first
// match is returned with its captured params.
func (t *Table[T]) Find(key string) (T, Params, bool) {
	if item, ok := t.exact[key]; ok {
		return item, nil, true
	}

	for _, e := range t.patterns {
		if params, ok := e.pattern.Match(key); ok {
			return e.item, params, true
		}
	}

	var zero T
	return zero, nil, false
}

// Len returns the number of registered items.
func (t *Table[T]) Len() int {
	return len(t.exact) + len(t.patterns)
}
