package phasespace

import "errors"

var (
	// ErrInvalidThresholds indicates negative or inverted thresholds.
	ErrInvalidThresholds = errors.New("phasespace: invalid thresholds")

	// ErrInvalidMass indicates a negative or non-finite particle mass.
	ErrInvalidMass = errors.New("phasespace: invalid mass")

	// ErrInvalidOrder indicates an invalid (l, n) pair for PhaseSpaceNL.
	ErrInvalidOrder = errors.New("phasespace: invalid number of particles")
)
