package scenario

import "github.com/pkg/errors"

var errEmptyScenario = errors.New("scenario file is empty")

func newUnknownObstacleTypeError(t string) error {
	return errors.Errorf("unknown obstacle type %q, expected one of %q, %q, %q", t, CircleType, RectType, PolygonType)
}
