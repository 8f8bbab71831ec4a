package instance

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"q.log/tableau/model"
)

var (
	ErrFreeVariable = errors.New("instance: variable without a non-negative lower bound")
	ErrUnsupported  = errors.New("instance: unsupported file format")
)

// LoadFunc reads the problem stored at path.
type LoadFunc func(path string) (*model.LP, error)

var (
	formatsMu sync.RWMutex
	formats   = map[string]LoadFunc{}
)

// RegisterFormat makes Load use fn for files with extension ext
// (including the dot, compared case-insensitively). The MPS reader
// registers ".mps" when built with the glpk tag.
func RegisterFormat(ext string, fn LoadFunc) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	formats[strings.ToLower(ext)] = fn
}

func lookupFormat(ext string) (LoadFunc, bool) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	fn, ok := formats[strings.ToLower(ext)]
	return fn, ok
}

// Load reads a problem file with the loader registered for its extension.
// .mps files need the glpk build tag; any other extension is read as the
// text format.
func Load(path string) (*model.LP, error) {
	ext := filepath.Ext(path)
	if fn, ok := lookupFormat(ext); ok {
		return fn(path)
	}
	if strings.EqualFold(ext, ".mps") {
		return nil, errors.Wrapf(ErrUnsupported, "%s: rebuild with -tags glpk to read MPS", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "instance: open")
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return p, nil
}
