package dalitz_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gquad "gonum.org/v1/gonum/integrate/quad"

	"github.com/san-kum/dalitz/internal/dalitz"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

var _ = Describe("Integrator", func() {
	It("rejects invalid masses", func() {
		_, err := dalitz.New(mPi, -1, mK)
		Expect(err).To(MatchError(dalitz.ErrInvalidMass))
		_, err = dalitz.New(math.NaN(), mPi, mK)
		Expect(err).To(MatchError(dalitz.ErrInvalidMass))
	})

	It("returns zero below and at threshold", func() {
		in, err := dalitz.New(mPi, mPi, mK)
		Expect(err).NotTo(HaveOccurred())
		for _, M := range []float64{0, 0.5, in.Threshold()} {
			v, err := in.IntegrateS1S2(M, dalitz.One)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(0.0))
			v, err = in.IntegrateE2E3(M, dalitz.One)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(0.0))
		}
	})

	It("reproduces the massless area s²/2", func() {
		in, _ := dalitz.New(0, 0, 0)
		for _, M := range []float64{1, 3} {
			s := M * M
			v, err := in.Area(M)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", s*s/2, 1e-7*s*s))

			e, err := in.IntegrateE2E3(M, dalitz.One)
			Expect(err).NotTo(HaveOccurred())
			Expect(4 * s * e).To(BeNumerically("~", s*s/2, 1e-7*s*s))
		}
	})

	It("matches the one-dimensional ππK phase-space integral", func() {
		const M = 1.5
		in, _ := dalitz.New(mPi, mPi, mK)
		got, err := in.Area(M)
		Expect(err).NotTo(HaveOccurred())

		// s1 = c - h·cos t absorbs the square-root edges of the boundary
		// width, so a fixed Legendre rule converges fast on [0, π]
		plot := in.Plot(M)
		c := 0.5 * (plot.S1Max() + plot.S1Min())
		h := 0.5 * (plot.S1Max() - plot.S1Min())
		width := func(t float64) float64 {
			lo, hi, ok := plot.S2Range(c - h*math.Cos(t))
			if !ok {
				return 0
			}
			return (hi - lo) * h * math.Sin(t)
		}
		want := gquad.Fixed(width, 0, math.Pi, 64, gquad.Legendre{}, 0)
		Expect(want).To(BeNumerically(">", 0))
		Expect(math.Abs(got/want - 1)).To(BeNumerically("<", 1e-6))

		area, err := phasespace.DalitzArea(M, mPi, mPi, mK)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.Abs(area/want - 1)).To(BeNumerically("<", 1e-6))

		ps3, err := phasespace.PhaseSpace3(M, mPi, mPi, mK)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.Abs(ps3*4*M*M/(math.Pi*math.Pi)/want - 1)).To(BeNumerically("<", 1e-6))
	})

	DescribeTable("is consistent between coordinate systems",
		func(m1, m2, m3, M float64) {
			in, err := dalitz.New(m1, m2, m3)
			Expect(err).NotTo(HaveOccurred())
			s := M * M

			a, err := in.IntegrateS1S2(M, dalitz.One)
			Expect(err).NotTo(HaveOccurred())
			b, err := in.IntegrateE2E3(M, dalitz.One)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(BeNumerically(">", 0))
			Expect(math.Abs(4*s*b/a - 1)).To(BeNumerically("<", 1e-6))

			plot := in.Plot(M)
			fs := func(_, s1, s2 float64) float64 { return s1 * s2 }
			fe := func(_, e2, e3 float64) float64 {
				s1 := plot.S1FromE3(e3)
				s3 := plot.S3FromE2(e2)
				return s1 * plot.S3(s1, s3)
			}
			a, err = in.IntegrateS1S2(M, fs)
			Expect(err).NotTo(HaveOccurred())
			b, err = in.IntegrateE2E3(M, fe)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.Abs(4*s*b/a - 1)).To(BeNumerically("<", 1e-6))
		},
		Entry("ππK", mPi, mPi, mK, 1.5),
		Entry("KKπ", mK, mK, mPi, 2.0),
		Entry("unequal", 0.1, 0.5, 0.9, 2.2),
		Entry("near threshold", 0.2, 0.3, 0.4, 0.95),
		Entry("one massless", 0.0, mPi, mK, 1.2),
	)

	It("accepts two-argument integrands", func() {
		in, _ := dalitz.New(mPi, mPi, mK)
		a, err := in.IntegrateS1S2(1.5, dalitz.Lift(func(s1, _ float64) float64 { return s1 }))
		Expect(err).NotTo(HaveOccurred())
		b, err := in.IntegrateS1S2(1.5, func(_, s1, _ float64) float64 { return s1 })
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("reports quadrature failures", func() {
		in, _ := dalitz.New(mPi, mPi, mK, quad.WithLimit(1))
		_, err := in.Area(1.5)
		Expect(errors.Is(err, quad.ErrNoConvergence)).To(BeTrue())

		in, _ = dalitz.New(mPi, mPi, mK)
		_, err = in.IntegrateS1S2(1.5, func(_, _, _ float64) float64 { return math.NaN() })
		var qe *quad.Error
		Expect(errors.As(err, &qe)).To(BeTrue())
		Expect(qe.Code).To(Equal(quad.CodeBadIntegrand))
	})

	It("clones into an independent integrator", func() {
		in, _ := dalitz.New(mPi, mPi, mK)
		c := in.Clone()
		a, _ := in.Area(1.5)
		b, _ := c.Area(1.5)
		Expect(a).To(Equal(b))
		m1, m2, m3 := c.Masses()
		Expect([]float64{m1, m2, m3}).To(Equal([]float64{mPi, mPi, mK}))
	})
})
