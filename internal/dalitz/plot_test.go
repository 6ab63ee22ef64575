package dalitz_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go-hep.org/x/hep/fmom"

	"github.com/san-kum/dalitz/internal/dalitz"
)

const (
	mPi = 0.13957039
	mK  = 0.493677
)

var _ = Describe("Plot", func() {
	var p dalitz.Plot

	BeforeEach(func() {
		var err error
		p, err = dalitz.NewPlot(1.5, mPi, mPi, mK)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects negative and non-finite masses", func() {
		_, err := dalitz.NewPlot(1.5, -mPi, mPi, mK)
		Expect(err).To(MatchError(dalitz.ErrInvalidMass))
		_, err = dalitz.NewPlot(math.Inf(1), mPi, mPi, mK)
		Expect(err).To(MatchError(dalitz.ErrInvalidMass))
	})

	It("has the threshold limits", func() {
		Expect(p.Valid()).To(BeTrue())
		Expect(p.S1Min()).To(BeNumerically("~", 4*mPi*mPi, 1e-14))
		Expect(p.S1Max()).To(BeNumerically("~", (1.5-mK)*(1.5-mK), 1e-14))
		Expect(p.S2Max()).To(BeNumerically("~", (1.5-mPi)*(1.5-mPi), 1e-14))
	})

	It("pinches the s2 range at the s1 edges", func() {
		lo, hi, ok := p.S2Range(p.S1Min())
		Expect(ok).To(BeTrue())
		Expect(hi - lo).To(BeNumerically("~", 0, 1e-6))

		lo, hi, ok = p.S2Range(p.S1Max())
		Expect(ok).To(BeTrue())
		Expect(hi - lo).To(BeNumerically("~", 0, 1e-6))

		_, _, ok = p.S2Range(p.S1Max() + 0.01)
		Expect(ok).To(BeFalse())
	})

	It("agrees between the s2 range and the s1 range", func() {
		s1 := 0.5 * (p.S1Min() + p.S1Max())
		lo, hi, ok := p.S2Range(s1)
		Expect(ok).To(BeTrue())
		for _, s2 := range []float64{lo, hi} {
			a, b, ok := p.S1Range(s2)
			Expect(ok).To(BeTrue())
			Expect(math.Min(math.Abs(a-s1), math.Abs(b-s1))).To(BeNumerically("<", 1e-6))
		}
	})

	It("classifies points", func() {
		s1 := 0.5 * (p.S1Min() + p.S1Max())
		lo, hi, _ := p.S2Range(s1)
		Expect(p.Inside(s1, 0.5*(lo+hi))).To(BeTrue())
		Expect(p.Inside(s1, hi+1e-3)).To(BeFalse())
		Expect(p.Inside(p.S1Min()-1e-3, 0.5*(lo+hi))).To(BeFalse())
	})

	It("inverts the energies", func() {
		Expect(p.S3FromE2(p.E2(0.7))).To(BeNumerically("~", 0.7, 1e-14))
		Expect(p.S1FromE3(p.E3(0.4))).To(BeNumerically("~", 0.4, 1e-14))

		lo, hi, ok := p.E2Range()
		Expect(ok).To(BeTrue())
		Expect(lo).To(BeNumerically("~", mPi, 1e-12))
		Expect(hi).To(BeNumerically(">", lo))
	})

	It("gives an empty region below threshold", func() {
		q, err := dalitz.NewPlot(0.7, mPi, mPi, mK)
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Valid()).To(BeFalse())
		_, _, ok := q.S2Range(0.1)
		Expect(ok).To(BeFalse())
		_, _, ok = q.E2Range()
		Expect(ok).To(BeFalse())
	})

	It("handles massless particles without NaN", func() {
		q, _ := dalitz.NewPlot(1, 0, 0, 0)
		_, _, ok := q.S2Range(0)
		Expect(ok).To(BeFalse())
		lo, hi, ok := q.S2Range(0.25)
		Expect(ok).To(BeTrue())
		Expect(lo).To(BeNumerically("~", 0, 1e-15))
		Expect(hi).To(BeNumerically("~", 0.75, 1e-15))
	})
})

var _ = Describe("PointFromMomenta", func() {
	onShell := func(px, py, pz, m float64) fmom.P4 {
		p := fmom.NewPxPyPzE(px, py, pz, math.Sqrt(px*px+py*py+pz*pz+m*m))
		return &p
	}

	It("lands inside the plot of the total mass", func() {
		p1 := onShell(0.31, -0.12, 0.05, mPi)
		p2 := onShell(-0.22, 0.40, 0.17, mPi)
		p3 := onShell(0.08, -0.19, -0.36, mK)

		pt := dalitz.PointFromMomenta(p1, p2, p3)
		M := dalitz.Mass(p1, p2, p3)

		plot, err := dalitz.NewPlot(M, mPi, mPi, mK)
		Expect(err).NotTo(HaveOccurred())
		Expect(pt.S1 + pt.S2 + pt.S3).To(BeNumerically("~", plot.SumS(), 1e-9))
		Expect(plot.S3(pt.S1, pt.S2)).To(BeNumerically("~", pt.S3, 1e-9))
		Expect(plot.Inside(pt.S1, pt.S2)).To(BeTrue())
	})
})
