// Package phasespace provides 1D phase-space factors used as weights of the
// composite 2D models.
//
//   - [Lambda], [Q]: Källén function and two-body breakup momentum
//   - [PhaseSpace2], [PhaseSpace3]: two- and three-body phase space
//   - [PhaseSpaceNL]: mass distribution of l particles out of n, unit integral
//   - [PhaseSpacePol]: PhaseSpaceNL modulated by a positive polynomial
//
// The three-body volume follows the Byckling-Kajantie normalisation
//
//	R3(s) = π² / (4s) ∫∫ ds1 ds2
package phasespace
