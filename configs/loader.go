package configs

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

var ErrValueNotFound = errors.New("config value not found")

// Loader reads cue files lazily. Earlier files take precedence over later ones.
type Loader struct {
	load func() ([]document, error)
}

type document struct {
	path  string
	value cue.Value
}

func NewLoader(paths []string, schemaSrc string) Loader {
	return Loader{
		load: sync.OnceValues(func() ([]document, error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			docs := make([]document, 0, len(paths))
			for _, path := range paths {
				content, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				value := ctx.CompileBytes(content, cue.Filename(path))
				if err := value.Err(); err != nil {
					return nil, err
				}
				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, err
					}
				}
				docs = append(docs, document{
					path:  path,
					value: value,
				})
			}
			return docs, nil
		}),
	}
}

// Search returns the existing files named filenames under dirs, in dirs order.
func Search(dirs []string, filenames ...string) (ret []string) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				ret = append(ret, path)
			}
		}
	}
	return
}

// Values yields the value at path of every file that defines it.
func (l Loader) Values(path string) iter.Seq2[cue.Value, error] {
	return func(yield func(cue.Value, error) bool) {
		docs, err := l.load()
		if err != nil {
			yield(cue.Value{}, err)
			return
		}
		cuePath := cue.ParsePath(path)
		for _, doc := range docs {
			value := doc.value.LookupPath(cuePath)
			if !value.Exists() {
				continue
			}
			if !yield(value, nil) {
				return
			}
		}
	}
}

// Decode decodes the first value at path into target.
func (l Loader) Decode(path string, target any) error {
	for value, err := range l.Values(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}
	return ErrValueNotFound
}
