package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

func newBadShapeDimensionsError(s Shape) error {
	return errors.Errorf("invalid dimension(s) for shape type %T", s)
}

func newTooFewVerticesError(n int) error {
	return fmt.Errorf("polygon needs at least 3 vertices, got %d", n)
}

func newNonFiniteShapeError(label string) error {
	return errors.Errorf("shape %q has a non-finite coordinate", label)
}
