package configs

import (
	"errors"
	"fmt"
)

// First returns the highest precedence value at path, or the zero value if no file
// defines it.
func First[T any](loader Loader, path string) (ret T) {
	err := loader.Decode(path, &ret)
	switch {
	case err == nil:
	case errors.Is(err, ErrValueNotFound):
	default:
		panic(fmt.Errorf("decode %s: %w", path, err))
	}
	return
}
