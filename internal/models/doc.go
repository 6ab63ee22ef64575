// Package models provides 2D densities built from phase-space factors,
// exponentials and positive Bernstein polynomials:
//
//	PS2DPol       Ps_x(x) Ps_y(y) P(x,y)
//	PS2DPolSym    Ps(x) Ps(y) P_sym(x,y)
//	PS2DPol2      ½[Ps_x^(y)(x) Ps_y(y) + Ps_x(x) Ps_y^(x)(y)] P(x,y)
//	PS2DPol2Sym   symmetric PS2DPol2
//	PS2DPol3      ½[Px^(y)(x) Py(y) + Px(x) Py^(x)(y)], Px and Py PhaseSpacePol
//	PS2DPol3Sym   symmetric PS2DPol3
//	ExpoPS2DPol   exp(τx) Ps_y(y) P(x,y)
//	Expo2DPol     exp(τx x) exp(τy y) P(x,y)
//	Expo2DPolSym  exp(τx) exp(τy) P_sym(x,y)
//
// Ps^(v) denotes a phase-space factor whose upper threshold is lowered to
// mmax - v, the mass cap. A non-positive mmax disables the cap.
//
// The separable models integrate in closed form per basis function: with
// wx, wy the 1D weights,
//
//	∫∫ wx wy P = Σ c(i,j) (∫ wx bx_i) (∫ wy by_j)
//
// and only the 1D moments need quadrature. The capped models add an outer
// adaptive integration over the companion coordinate.
//
// # Thread Safety
//
// Every model owns its quadrature workspaces and is not safe for concurrent
// use. Use Clone to obtain an independent instance per goroutine.
package models
