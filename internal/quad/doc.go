// Package quad provides the numerical integration machinery shared by the
// Dalitz integrator and the composite 2D models.
//
//   - [WorkSpace]: reusable scratch space for globally adaptive quadrature
//   - [Panels]: visit Gauss-Legendre nodes over equal panels, for integrals of
//     vector-valued integrands
//
// # Example
//
//	ws := quad.NewWorkSpace(quad.WithTolerance(0, 1e-8))
//	res, err := ws.Integrate(math.Sin, 0, math.Pi)
//
// # Thread Safety
//
// A WorkSpace is NOT thread-safe. Every model and integrator owns a private
// WorkSpace; callers that evaluate in parallel must use distinct instances.
package quad
