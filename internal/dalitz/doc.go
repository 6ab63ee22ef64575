// Package dalitz integrates functions over the Dalitz plot of a three-body
// decay M → 1 2 3.
//
// Two coordinate systems are supported:
//
//   - invariant masses s1 = (p1+p2)², s2 = (p2+p3)²
//   - energies e2, e3 of particles 2 and 3 in the rest frame of M
//
// They are related by ds1 ds2 = 4s de2 de3 with s = M². Both integrals are
// computed by nested adaptive quadrature; an [Integrator] owns the two
// workspaces it needs and is therefore not safe for concurrent use.
package dalitz
