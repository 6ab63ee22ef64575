package models_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dalitz/internal/models"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

var _ = Describe("construction", func() {
	psx := mustPS(0.28, 1.2, 2, 3)

	It("rejects invalid configurations", func() {
		_, err := models.NewPS2DPol(psx, psx, -1, 2, models.Box{}, tight)
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		_, err = models.NewPS2DPol(psx, psx, 1, 1, models.Box{XMin: 1, XMax: 0.5, YMin: 0, YMax: 1})
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		_, err = models.NewPS2DPolSym(psx, 2, 1, 1)
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		_, err = models.NewPS2DPol2(psx, psx, math.NaN(), 1, 1, models.Box{})
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		_, err = models.NewExpo2DPol(0, 1, 2, 1, 1, 1, 0, 0)
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		_, err = models.NewExpo2DPolSym(0, 10, 1, 100)
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		_, err = models.NewExpoPS2DPol(psx, 0, 1, 1, 1, 0, 0, math.Inf(1))
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		p, err := phasespace.NewPhaseSpacePolDefault(psx, 1)
		Expect(err).NotTo(HaveOccurred())
		_, err = models.NewPS2DPol3(p, p, 1.8)
		Expect(err).To(MatchError(models.ErrInvalidConfig))
	})

	It("defaults the box to the thresholds", func() {
		psy := mustPS(0.5, 2.5, 3, 5)
		m, err := models.NewPS2DPol(psx, psy, 1, 1, models.Box{})
		Expect(err).NotTo(HaveOccurred())
		Expect([]float64{m.XMin(), m.XMax(), m.YMin(), m.YMax()}).To(Equal([]float64{0.28, 1.2, 0.5, 2.5}))
		Expect(m.NPars()).To(Equal(3))
	})
})

var _ = Describe("PS2DPolSym", func() {
	It("folds the coefficients symmetrically", func() {
		ps := mustPS(0.28, 1.2, 2, 3)
		m, err := models.NewPS2DPolSym(ps, 1, 0, 0, tight)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.NPars()).To(Equal(2))
		Expect(m.SetPar(0, 0.4)).To(Succeed())
		Expect(m.SetPar(1, -0.9)).To(Succeed())

		total, err := models.FullIntegral(m)
		Expect(err).NotTo(HaveOccurred())

		outer := quad.NewWorkSpace(quad.WithTolerance(1e-13, 1e-9))
		inner := quad.NewWorkSpace(quad.WithTolerance(1e-13, 1e-9))
		upper, err := outer.Value(func(x float64) float64 {
			v, _ := inner.Value(func(y float64) float64 { return m.Evaluate(x, y) }, m.YMin(), x)
			return v
		}, m.XMin(), m.XMax())
		Expect(err).NotTo(HaveOccurred())
		Expect(relDiff(total, 2*upper)).To(BeNumerically("<", 1e-6))
	})
})

var _ = Describe("mass cap", func() {
	psx := mustPS(0.28, 1.2, 2, 3)
	psy := mustPS(0.3, 1.1, 2, 4)

	It("reduces to PS2DPol when mmax is not positive or never bites", func() {
		plain, err := models.NewPS2DPol(psx, psy, 1, 2, models.Box{})
		Expect(err).NotTo(HaveOccurred())
		for _, mmax := range []float64{0, -1, 2.3, 10} {
			capped, err := models.NewPS2DPol2(psx, psy, mmax, 1, 2, models.Box{})
			Expect(err).NotTo(HaveOccurred())
			for k := 0; k < plain.NPars(); k++ {
				Expect(plain.SetPar(k, 0.2*float64(k))).To(Succeed())
				Expect(capped.SetPar(k, 0.2*float64(k))).To(Succeed())
			}
			Expect(capped.Evaluate(0.9, 0.8)).To(Equal(plain.Evaluate(0.9, 0.8)))
			a, err := models.FullIntegral(capped)
			Expect(err).NotTo(HaveOccurred())
			b, err := models.FullIntegral(plain)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		}
	})

	It("changes the density where the cap bites", func() {
		plain, _ := models.NewPS2DPol(psx, psy, 1, 1, models.Box{})
		capped, _ := models.NewPS2DPol2(psx, psy, 1.8, 1, 1, models.Box{})
		Expect(capped.MMax()).To(Equal(1.8))
		Expect(capped.Evaluate(1.0, 0.95)).NotTo(Equal(plain.Evaluate(1.0, 0.95)))
		Expect(capped.Evaluate(0.5, 0.5)).To(BeNumerically("~", plain.Evaluate(0.5, 0.5), 1e-14))
	})

	It("does not leak the capped factor between calls", func() {
		m, _ := models.NewPS2DPol2(psx, psy, 1.8, 1, 1, models.Box{})
		first := m.Evaluate(0.7, 0.6)
		_ = m.Evaluate(1.1, 1.05)
		_, err := m.IntegrateX(1.0, 0.28, 1.2)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Evaluate(0.7, 0.6)).To(Equal(first))
		Expect(m.PhaseSpaceX().HighEdge()).To(Equal(1.2))
	})
})

var _ = Describe("PS2DPol3", func() {
	psx := mustPS(0.28, 1.2, 2, 3)
	psy := mustPS(0.3, 1.1, 2, 4)

	It("splits parameters between the two factors", func() {
		m, err := models.NewPS2DPol3FromOrders(psx, psy, 1.8, 2, 3, models.Box{})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Split()).To(Equal(2))
		Expect(m.NPars()).To(Equal(5))

		Expect(m.SetPar(1, 0.25)).To(Succeed())
		Expect(m.X().Par(1)).To(Equal(0.25))
		Expect(m.SetPar(m.Split(), -0.6)).To(Succeed())
		Expect(m.Y().Par(0)).To(Equal(-0.6))
		Expect(m.SetPar(4, 0.1)).To(Succeed())
		Expect(m.Y().Par(2)).To(Equal(0.1))
		Expect(m.Pars()).To(Equal([]float64{0, 0.25, -0.6, 0, 0.1}))

		Expect(m.SetPar(5, 1)).To(MatchError(models.ErrInvalidParameter))
	})

	It("factorises without a cap", func() {
		m, err := models.NewPS2DPol3FromOrders(psx, psy, 0, 1, 1, models.Box{})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Evaluate(0.6, 0.7)).To(Equal(m.X().Evaluate(0.6) * m.Y().Evaluate(0.7)))

		got, err := models.FullIntegral(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(relDiff(got, 1/((1.2-0.28)*(1.1-0.3)))).To(BeNumerically("<", 1e-6))
	})
})

var _ = Describe("exponential slopes", func() {
	It("validates and retains tau", func() {
		m, err := models.NewExpo2DPol(0, 4, 1, 2.5, 1, 1, -2, 0.5)
		Expect(err).NotTo(HaveOccurred())

		Expect(m.SetTauX(-3)).To(Succeed())
		Expect(m.TauX()).To(Equal(-3.0))
		Expect(m.SetTauX(1e4)).To(MatchError(models.ErrInvalidParameter))
		Expect(m.SetTauY(math.NaN())).To(MatchError(models.ErrInvalidParameter))
		Expect(m.TauX()).To(Equal(-3.0))
		Expect(m.TauY()).To(Equal(0.5))

		v, err := models.FullIntegral(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
	})

	It("bounds the combined exponent of both axes", func() {
		_, err := models.NewExpo2DPolSym(6.9, 7.0, 1, 100)
		Expect(err).To(MatchError(models.ErrInvalidConfig))
		_, err = models.NewExpo2DPol(6.9, 7, 6.9, 7, 1, 1, 100, 100)
		Expect(err).To(MatchError(models.ErrInvalidConfig))

		m, err := models.NewExpo2DPol(6.9, 7, 6.9, 7, 1, 1, 90, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.SetTauY(15)).To(MatchError(models.ErrInvalidParameter))
		Expect(m.TauY()).To(Equal(0.0))
		Expect(m.SetTauY(5)).To(Succeed())
		Expect(m.SetTauX(100)).To(MatchError(models.ErrInvalidParameter))
		Expect(m.TauX()).To(Equal(90.0))

		v, err := models.FullIntegral(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsInf(v, 0) || math.IsNaN(v)).To(BeFalse())
		Expect(math.IsInf(m.Evaluate(7, 7), 0)).To(BeFalse())

		sym, err := models.NewExpo2DPolSym(6.9, 7.0, 1, 40)
		Expect(err).NotTo(HaveOccurred())
		Expect(sym.SetTau(60)).To(MatchError(models.ErrInvalidParameter))
		Expect(sym.Tau()).To(Equal(40.0))
		v, err = models.FullIntegral(sym)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsInf(v, 0) || math.IsNaN(v)).To(BeFalse())
	})

	It("integrates a flat polynomial in closed form", func() {
		m, err := models.NewExpo2DPolSym(0, 2, 0, -1.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.NPars()).To(Equal(0))
		got, err := models.FullIntegral(m)
		Expect(err).NotTo(HaveOccurred())
		one := (1 - math.Exp(-3)) / 1.5
		Expect(got).To(BeNumerically("~", one*one/4, 1e-13))

		Expect(m.SetTau(0)).To(Succeed())
		got, err = models.FullIntegral(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 1, 1e-13))
	})

	It("keeps the slope with the clone", func() {
		psy := mustPS(0.3, 1.1, 2, 4)
		m, err := models.NewExpoPS2DPol(psy, 0, 3, 1, 1, 0, 0, -0.8)
		Expect(err).NotTo(HaveOccurred())
		c := m.Clone().(*models.ExpoPS2DPol)
		Expect(c.SetTau(-2)).To(Succeed())
		Expect(m.Tau()).To(Equal(-0.8))
		Expect(c.Tau()).To(Equal(-2.0))
	})
})
