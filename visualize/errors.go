package visualize

import "github.com/pkg/errors"

var errEmptyTrajectory = errors.New("cannot plot an empty trajectory")
