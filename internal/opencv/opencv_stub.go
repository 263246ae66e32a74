//go:build !gocv

package opencv

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/tapevision/internal/vision"
)

// Available reports whether the OpenCV backend was compiled in.
const Available = false

// ErrNotCompiled is returned by New when the binary was built without the gocv tag.
var ErrNotCompiled = errors.New("opencv backend not available: build with -tags gocv")

// New always fails without the gocv build tag.
func New() (vision.Primitives, error) {
	return nil, ErrNotCompiled
}
