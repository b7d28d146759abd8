package configs

import (
	"fmt"
	"iter"
)

// All decodes the value at path from every file defining it, highest precedence first.
// Invalid files and undecodable values panic.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.Values(path) {
			if err != nil {
				panic(err)
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(fmt.Errorf("decode %s at %v: %w", path, value.Pos(), err))
			}
			if !yield(v) {
				return
			}
		}
	}
}
