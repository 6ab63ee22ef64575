package models_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dalitz/internal/models"
	"github.com/san-kum/dalitz/internal/quad"
)

type modelCase struct {
	name      string
	build     func() models.Model
	symmetric bool
}

func modelCases() []modelCase {
	psx := mustPS(0.28, 1.2, 2, 3)
	psy := mustPS(0.3, 1.1, 2, 4)
	const mmax = 1.8

	return []modelCase{
		{name: "PS2DPol", build: func() models.Model {
			m, err := models.NewPS2DPol(psx, psy, 2, 1, models.Box{}, tight)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "PS2DPolSym", symmetric: true, build: func() models.Model {
			m, err := models.NewPS2DPolSym(psx, 2, 0, 0, tight)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "PS2DPol2", build: func() models.Model {
			m, err := models.NewPS2DPol2(psx, psy, mmax, 1, 2, models.Box{}, tight)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "PS2DPol2Sym", symmetric: true, build: func() models.Model {
			m, err := models.NewPS2DPol2Sym(psx, mmax, 2, 0, 0, tight)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "PS2DPol3", build: func() models.Model {
			m, err := models.NewPS2DPol3FromOrders(psx, psy, mmax, 2, 1, models.Box{}, tight)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "PS2DPol3Sym", symmetric: true, build: func() models.Model {
			m, err := models.NewPS2DPol3SymFromOrder(psx, mmax, 2, 0, 0, tight)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "ExpoPS2DPol", build: func() models.Model {
			m, err := models.NewExpoPS2DPol(psy, 0, 3, 2, 2, 0, 0, -1.3, tight)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "Expo2DPol", build: func() models.Model {
			m, err := models.NewExpo2DPol(0, 4, 1, 2.5, 1, 2, -2.2, 0.7)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
		{name: "Expo2DPolSym", symmetric: true, build: func() models.Model {
			m, err := models.NewExpo2DPolSym(0.5, 3, 2, -1.7)
			Expect(err).NotTo(HaveOccurred())
			return m
		}},
	}
}

var _ = Describe("Model", func() {
	for _, c := range modelCases() {
		c := c

		Describe(c.name, func() {
			var m models.Model

			BeforeEach(func() {
				m = c.build()
				Expect(m.NPars()).To(BeNumerically(">", 0))
			})

			It("vanishes outside the box", func() {
				setPattern(m)
				xm := 0.5 * (m.XMin() + m.XMax())
				ym := 0.5 * (m.YMin() + m.YMax())
				Expect(m.Evaluate(xm, ym)).To(BeNumerically(">", 0))
				for _, p := range [][2]float64{
					{m.XMin() - 0.01, ym},
					{m.XMax() + 0.01, ym},
					{xm, m.YMin() - 0.01},
					{xm, m.YMax() + 0.01},
					{m.XMax() + 1, m.YMax() + 1},
				} {
					Expect(m.Evaluate(p[0], p[1])).To(Equal(0.0))
				}
			})

			DescribeTable("matches a brute-force integral",
				func(prepare func(models.Model)) {
					prepare(m)
					got, err := models.FullIntegral(m)
					Expect(err).NotTo(HaveOccurred())
					want := brute(m.Evaluate, m.XMin(), m.XMax(), m.YMin(), m.YMax())
					Expect(want).To(BeNumerically(">", 0))
					Expect(relDiff(got, want)).To(BeNumerically("<", 1e-6))
				},
				Entry("all-zero parameters", func(models.Model) {}),
				Entry("mixed parameters", setPattern),
				Entry("near-boundary parameters", func(m models.Model) { setAll(m, 1.5) }),
			)

			It("integrates a sub-rectangle", func() {
				setPattern(m)
				dx := m.XMax() - m.XMin()
				dy := m.YMax() - m.YMin()
				xa, xb := m.XMin()+0.2*dx, m.XMin()+0.75*dx
				ya, yb := m.YMin()+0.1*dy, m.YMin()+0.6*dy

				got, err := m.Integral(xa, xb, ya, yb)
				Expect(err).NotTo(HaveOccurred())
				want := brute(m.Evaluate, xa, xb, ya, yb)
				Expect(relDiff(got, want)).To(BeNumerically("<", 1e-6))

				rev, err := m.Integral(xb, xa, ya, yb)
				Expect(err).NotTo(HaveOccurred())
				Expect(rev).To(Equal(-got))

				wide, err := m.Integral(xa, xb, m.YMin()-5, m.YMax()+5)
				Expect(err).NotTo(HaveOccurred())
				full, err := m.Integral(xa, xb, m.YMin(), m.YMax())
				Expect(err).NotTo(HaveOccurred())
				Expect(wide).To(Equal(full))
			})

			It("integrates the marginals back to the integral", func() {
				setPattern(m)
				total, err := models.FullIntegral(m)
				Expect(err).NotTo(HaveOccurred())

				ws := quad.NewWorkSpace(quad.WithTolerance(1e-12, 1e-9))
				alongX, err := ws.Value(func(y float64) float64 {
					v, err := m.IntegrateX(y, m.XMin(), m.XMax())
					Expect(err).NotTo(HaveOccurred())
					return v
				}, m.YMin(), m.YMax())
				Expect(err).NotTo(HaveOccurred())
				Expect(relDiff(alongX, total)).To(BeNumerically("<", 1e-6))

				alongY, err := ws.Value(func(x float64) float64 {
					v, err := m.IntegrateY(x, m.YMin(), m.YMax())
					Expect(err).NotTo(HaveOccurred())
					return v
				}, m.XMin(), m.XMax())
				Expect(err).NotTo(HaveOccurred())
				Expect(relDiff(alongY, total)).To(BeNumerically("<", 1e-6))
			})

			It("returns zero marginals outside the box", func() {
				v, err := m.IntegrateX(m.YMax()+0.5, m.XMin(), m.XMax())
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(Equal(0.0))
				v, err = m.IntegrateY(m.XMin()-0.5, m.YMin(), m.YMax())
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(Equal(0.0))
			})

			It("round-trips parameters and rejects bad indices", func() {
				for k := 0; k < m.NPars(); k++ {
					v := 0.1 + 0.05*float64(k)
					Expect(m.SetPar(k, v)).To(Succeed())
					Expect(m.Par(k)).To(Equal(v))
				}
				before := m.Pars()
				Expect(m.SetPar(m.NPars(), 0.3)).To(MatchError(models.ErrInvalidParameter))
				Expect(m.SetPar(-1, 0.3)).To(MatchError(models.ErrInvalidParameter))
				Expect(m.Pars()).To(Equal(before))
			})

			It("clones into an independent model", func() {
				setPattern(m)
				c := m.Clone()
				Expect(c.Pars()).To(Equal(m.Pars()))
				xm := 0.4*m.XMin() + 0.6*m.XMax()
				ym := 0.7*m.YMin() + 0.3*m.YMax()
				Expect(c.Evaluate(xm, ym)).To(Equal(m.Evaluate(xm, ym)))

				Expect(c.SetPar(0, 1.0)).To(Succeed())
				Expect(m.Par(0)).NotTo(Equal(1.0))
			})

			if c.symmetric {
				It("is exactly symmetric", func() {
					setPattern(m)
					for i := 0; i <= 20; i++ {
						for j := 0; j <= 20; j++ {
							x := m.XMin() + (m.XMax()-m.XMin())*float64(i)/20
							y := m.YMin() + (m.YMax()-m.YMin())*float64(j)/20
							Expect(m.Evaluate(x, y)).To(Equal(m.Evaluate(y, x)))
						}
					}
				})
			}
		})
	}
})

var _ = Describe("quadrature failure", func() {
	// a single panel cannot reach machine precision on a threshold factor
	failing := []quad.Option{quad.WithLimit(1), quad.WithTolerance(0, 1e-15)}

	psx := mustPS(0.28, 1.2, 2, 3)
	psy := mustPS(0.3, 1.1, 2, 4)
	const mmax = 1.8

	DescribeTable("propagates ErrNoConvergence",
		func(build func() (models.Model, error)) {
			m, err := build()
			Expect(err).NotTo(HaveOccurred())
			setPattern(m)

			_, err = models.FullIntegral(m)
			Expect(err).To(MatchError(quad.ErrNoConvergence))

			xm := 0.5 * (m.XMin() + m.XMax())
			_, err = m.Integral(m.XMin(), xm, m.YMin(), m.YMax())
			Expect(err).To(MatchError(quad.ErrNoConvergence))

			// y near the top of its range puts the x cap inside the threshold
			for _, y := range []float64{0.5, 1.0} {
				_, err = m.IntegrateX(y, m.XMin(), m.XMax())
				Expect(err).To(MatchError(quad.ErrNoConvergence), "y=%g", y)
			}
			for _, x := range []float64{0.5, 1.1} {
				_, err = m.IntegrateY(x, m.YMin(), m.YMax())
				Expect(err).To(MatchError(quad.ErrNoConvergence), "x=%g", x)
			}
		},
		Entry("PS2DPol", func() (models.Model, error) {
			return models.NewPS2DPol(psx, psy, 2, 1, models.Box{}, failing...)
		}),
		Entry("PS2DPol2 with an active cap", func() (models.Model, error) {
			return models.NewPS2DPol2(psx, psy, mmax, 1, 2, models.Box{}, failing...)
		}),
		Entry("PS2DPol2Sym with an active cap", func() (models.Model, error) {
			return models.NewPS2DPol2Sym(psx, mmax, 2, 0, 0, failing...)
		}),
		Entry("PS2DPol3", func() (models.Model, error) {
			return models.NewPS2DPol3FromOrders(psx, psy, mmax, 2, 1, models.Box{}, failing...)
		}),
	)

	It("keeps the quadrature error code", func() {
		m, err := models.NewPS2DPol2(psx, psy, mmax, 1, 2, models.Box{}, failing...)
		Expect(err).NotTo(HaveOccurred())
		_, err = m.IntegrateX(1.0, m.XMin(), m.XMax())

		var qe *quad.Error
		Expect(errors.As(err, &qe)).To(BeTrue())
		Expect(qe.Code).To(Equal(quad.CodeMaxIterations))
	})
})
