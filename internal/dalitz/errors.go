package dalitz

import "errors"

// ErrInvalidMass indicates a negative or non-finite mass.
var ErrInvalidMass = errors.New("dalitz: invalid mass")
