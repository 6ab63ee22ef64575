package dalitz

import "go-hep.org/x/hep/fmom"

// Point is a Dalitz plot point given by its three invariants.
type Point struct {
	S1, S2, S3 float64
}

// PointFromMomenta returns the invariants s1 = (p1+p2)², s2 = (p2+p3)² and
// s3 = (p1+p3)².
func PointFromMomenta(p1, p2, p3 fmom.P4) Point {
	return Point{
		S1: fmom.Add(p1, p2).M2(),
		S2: fmom.Add(p2, p3).M2(),
		S3: fmom.Add(p1, p3).M2(),
	}
}

// Mass returns the invariant mass of the three momenta.
func Mass(p1, p2, p3 fmom.P4) float64 {
	return fmom.Add(fmom.Add(p1, p2), p3).M()
}
