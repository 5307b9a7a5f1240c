package circuit_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/geom"
)

func params(c, l, v float64) circuit.Params {
	p := circuit.DefaultParams()
	p.Capacitance, p.Inductance, p.PeakVoltage = c, l, v
	return p
}

func mustNew(p circuit.Params) *circuit.Circuit {
	c, err := circuit.New(p)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func relClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

var _ = Describe("Circuit", func() {
	Describe("derived constants", func() {
		It("matches the 1uF / 1mH / 10V scenario", func() {
			c := mustNew(params(1e-6, 1e-3, 10))

			Expect(c.AngularFrequency()).To(BeNumerically("~", 31622.7766, 1e-3))
			Expect(c.PeakCurrent()).To(BeNumerically("~", 0.316227766, 1e-9))
			Expect(c.PeakCharge()).To(BeNumerically("~", 1e-5, 1e-15))
			Expect(c.TotalEnergy()).To(BeNumerically("~", 5e-5, 1e-18))
			Expect(c.Period()).To(BeNumerically("~", 2*math.Pi/31622.7766, 1e-9))
			Expect(c.Frequency()).To(BeNumerically("~", 31622.7766/(2*math.Pi), 1e-3))
		})

		It("starts with a charged capacitor and no current", func() {
			c := mustNew(params(1e-6, 1e-3, 10))

			Expect(c.Voltage(0)).To(Equal(10.0))
			Expect(c.Current(0)).To(Equal(0.0))
			Expect(c.Charge(0)).To(BeNumerically("~", -c.PeakCharge(), 1e-18))
			Expect(c.CapacitorEnergy(0)).To(BeNumerically("~", 5e-5, 1e-18))
			Expect(c.InductorEnergy(0)).To(Equal(0.0))
		})

		It("exposes the peak voltage through its accessor", func() {
			c := mustNew(params(2, 3, 7))
			Expect(c.PeakVoltage()).To(Equal(7.0))
			Expect(c.Capacitance()).To(Equal(2.0))
			Expect(c.Inductance()).To(Equal(3.0))
		})
	})

	DescribeTable("energy conservation",
		func(cap, ind, v float64) {
			c := mustNew(params(cap, ind, v))
			for i := 0; i < 2000; i++ {
				t := float64(i) * c.Period() / 377
				sum := c.InductorEnergy(t) + c.CapacitorEnergy(t)
				Expect(relClose(sum, c.TotalEnergy())).To(BeTrue(), "t=%g sum=%g E=%g", t, sum, c.TotalEnergy())
			}
		},
		Entry("slow demo circuit", 1.0, 1.0, 10.0),
		Entry("radio band", 1e-6, 1e-3, 10.0),
		Entry("large values", 4.7e-3, 22.0, 230.0),
		Entry("tiny voltage", 1e-9, 1e-9, 1e-3),
		Entry("tiny reactances", 1e-200, 1e-200, 10.0),
		Entry("huge voltage on a tiny capacitor", 1e-100, 1.0, 1e120),
	)

	Describe("periodicity", func() {
		It("repeats voltage and current every period", func() {
			c := mustNew(params(1e-6, 1e-3, 10))
			T := c.Period()
			for i := 0; i < 100; i++ {
				t := float64(i) * T / 13
				Expect(c.Voltage(t + T)).To(BeNumerically("~", c.Voltage(t), 1e-9*10))
				Expect(c.Current(t + T)).To(BeNumerically("~", c.Current(t), 1e-9*c.PeakCurrent()))
			}
		})
	})

	Describe("current is the derivative of charge", func() {
		It("agrees with a forward difference", func() {
			c := mustNew(params(1.0, 1.0, 10))
			const delta = 1e-6
			for i := 0; i < 200; i++ {
				t := float64(i) * 0.031
				dq := c.Charge(t+delta) - c.Charge(t)
				Expect(dq).To(BeNumerically("~", c.Current(t)*delta, 1e-9))
			}
		})
	})

	Describe("queries", func() {
		It("are idempotent and independent of Step", func() {
			c := mustNew(params(1e-6, 1e-3, 10))
			t := 1.234e-4

			v, i, q := c.Voltage(t), c.Current(t), c.Charge(t)
			wl, wc := c.InductorEnergy(t), c.CapacitorEnergy(t)

			for k := 0; k < 50; k++ {
				c.Step(float64(k)*1e-6, 1e-6)
			}

			Expect(c.Voltage(t)).To(Equal(v))
			Expect(c.Current(t)).To(Equal(i))
			Expect(c.Charge(t)).To(Equal(q))
			Expect(c.InductorEnergy(t)).To(Equal(wl))
			Expect(c.CapacitorEnergy(t)).To(Equal(wc))
		})

		It("returns named signals that match the methods", func() {
			c := mustNew(params(1.0, 2.0, 3.0))
			for _, name := range circuit.SignalNames() {
				s, err := c.Signal(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(c.Peak(name)).To(BeNumerically(">", 0))
				Expect(circuit.Unit(name)).NotTo(BeEmpty())
				_ = s.At(0.5)
			}

			s, err := c.Signal(circuit.SignalCurrent)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.At(0.7)).To(Equal(c.Current(0.7)))

			_, err = c.Signal("flux")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("markers", func() {
		It("start evenly spaced on the loop", func() {
			p := params(1, 1, 10)
			p.ChargeCount = 4
			p.LoopSize = geom.V(1, 1)
			p.LoopOrigin = geom.V(0, 0)
			c := mustNew(p)

			Expect(c.Spacing()).To(Equal(1.0))
			want := []geom.Vec2{geom.V(0, 0), geom.V(1, 0), geom.V(1, 1), geom.V(0, 1)}
			got := c.MarkerPositions()
			Expect(got).To(HaveLen(len(want)))
			for i := range want {
				Expect(got[i].Dist(want[i])).To(BeNumerically("<", 1e-12), "marker %d at %v", i, got[i])
			}
		})

		It("drift with the current and stay on the wire", func() {
			c := mustNew(params(1, 1, 10))
			dt := 0.02
			for k := 1; k <= 500; k++ {
				c.Step(float64(k)*dt, dt)
				Expect(c.Shift()).To(BeNumerically(">=", 0))
				Expect(c.Shift()).To(BeNumerically("<", c.Path().Len()))

				for _, m := range c.MarkerPositions() {
					onX := m.X >= 100-1e-9 && m.X <= 400+1e-9
					onY := m.Y >= 100-1e-9 && m.Y <= 400+1e-9
					onEdge := math.Abs(m.X-100) < 1e-9 || math.Abs(m.X-400) < 1e-9 ||
						math.Abs(m.Y-100) < 1e-9 || math.Abs(m.Y-400) < 1e-9
					Expect(onX && onY && onEdge).To(BeTrue(), "marker %v off the wire", m)
				}
			}
		})

		It("move by current * spacing / charge value", func() {
			c := mustNew(params(1, 1, 10))
			t := math.Pi / 2
			c.Step(t, 0.5)
			want := c.Current(t) * c.Spacing() / circuit.DefaultChargeValue * 0.5
			Expect(c.Shift()).To(BeNumerically("~", want, 1e-12))

			c.Reset()
			Expect(c.Shift()).To(BeZero())
		})

		It("report everything in a frame", func() {
			c := mustNew(params(1, 1, 10))
			f := c.Frame(3, 0.25)
			Expect(f.Step).To(Equal(3))
			Expect(f.Voltage).To(Equal(c.Voltage(0.25)))
			Expect(f.Markers).To(HaveLen(circuit.DefaultChargeCount))
			Expect(f.IsValid()).To(BeTrue())
		})

		It("hand out a lattice copy that cannot move them", func() {
			c := mustNew(params(1, 1, 10))
			l := c.Lattice()
			Expect(l.Count()).To(Equal(circuit.DefaultChargeCount))
			Expect(l.Spacing()).To(Equal(c.Spacing()))

			l.Advance(10, 1)
			Expect(l.Shift()).NotTo(BeZero())
			Expect(c.Shift()).To(BeZero())
		})
	})

	DescribeTable("rejects invalid parameters",
		func(mutate func(*circuit.Params), name string) {
			p := circuit.DefaultParams()
			mutate(&p)
			c, err := circuit.New(p)
			Expect(c).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))

			var pe *circuit.ParamError
			Expect(err).To(BeAssignableToTypeOf(pe))
			Expect(err.(*circuit.ParamError).Name).To(Equal(name))
		},
		Entry("zero capacitance", func(p *circuit.Params) { p.Capacitance = 0 }, "capacitance"),
		Entry("negative inductance", func(p *circuit.Params) { p.Inductance = -1 }, "inductance"),
		Entry("zero inductance", func(p *circuit.Params) { p.Inductance = 0 }, "inductance"),
		Entry("NaN voltage", func(p *circuit.Params) { p.PeakVoltage = math.NaN() }, "peak voltage"),
		Entry("negative voltage", func(p *circuit.Params) { p.PeakVoltage = -5 }, "peak voltage"),
		Entry("infinite capacitance", func(p *circuit.Params) { p.Capacitance = math.Inf(1) }, "capacitance"),
		Entry("no charges", func(p *circuit.Params) { p.ChargeCount = 0 }, "charge count"),
		Entry("zero charge value", func(p *circuit.Params) { p.ChargeValue = 0 }, "charge value"),
		Entry("flat loop", func(p *circuit.Params) { p.LoopSize = geom.V(300, 0) }, "loop height"),
		Entry("NaN origin", func(p *circuit.Params) { p.LoopOrigin = geom.V(math.NaN(), 0) }, "loop origin"),
		Entry("energy overflow", func(p *circuit.Params) { p.PeakVoltage = 1e200 }, "energy"),
		Entry("current overflow", func(p *circuit.Params) { p.PeakVoltage, p.Inductance = 1e200, 1e-300 }, "peak current"),
		Entry("frequency overflow", func(p *circuit.Params) { p.Capacitance, p.Inductance = 1e-310, 1e-310 }, "angular frequency"),
	)
})
