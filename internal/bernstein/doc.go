// Package bernstein provides Bernstein polynomial bases whose coefficients are
// parameterised so that every parameter vector yields a non-negative
// polynomial.
//
//   - [NSphere]: phases mapped onto squared coordinates of a unit sphere
//   - [Positive]: 1D positive polynomial with unit integral
//   - [Positive2D]: 2D tensor-product positive polynomial with unit integral
//   - [Positive2DSym]: symmetric 2D positive polynomial, f(x,y) = f(y,x)
//
// The 2D bases expose their coefficient grid and the per-basis-function
// values and moments, so that a weighted 2D integral reduces to the bilinear
// contraction computed by Calculate.
package bernstein
