package models_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/models"
	"github.com/san-kum/astrogolf/internal/vector"
)

func sunEarth() *body.Set {
	s, err := body.NewSet(
		[][]float64{{0, 0, 0}, {1, 0, 0}},
		[][]float64{{0, 0, 0}, {0, 0, 2 * math.Pi}},
		[]float64{1, 3.003e-6},
	)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func threeBodies() *body.Set {
	s, err := body.NewSet(
		[][]float64{{-1, 0, 0}, {1, 0.5, 0}, {0, 2, 1}},
		[][]float64{{0, 0, 1}, {0.5, 0, 0}, {-1, 1, 0}},
		[]float64{2e-3, 1e-3, 5e-4},
	)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("NModel", func() {
	Describe("construction", func() {
		It("moves the center of mass to rest at the origin", func() {
			m, err := models.NewNModel(threeBodies())
			Expect(err).NotTo(HaveOccurred())

			Expect(m.Physics().Momentum(m.Bodies()).R()).To(BeNumerically("<", 1e-12))
			for _, c := range m.Physics().CenterOfMass(m.Bodies()) {
				Expect(c).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("keeps the given frame without normalization", func() {
			s := threeBodies()
			want := s.State()
			m, err := models.NewNModel(s, models.WithoutNormalization())
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Snapshot()).To(Equal(want))
		})

		It("starts at t=0 with the default ceiling", func() {
			m, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Time()).To(BeZero())
			Expect(m.DtMax()).To(Equal(models.NModelDtMax))
		})

		It("rejects pins on missing rows", func() {
			_, err := models.NewNModel(sunEarth(), models.WithPinned(5))
			Expect(err).To(MatchError(body.ErrIndexOutOfRange))
		})
	})

	Describe("Advance", func() {
		It("takes a request below the ceiling in one step", func() {
			m, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())
			m.Advance(0.0004)
			Expect(m.Time()).To(Equal(0.0004))
		})

		It("covers the request, overshooting by at most one sub-step", func() {
			m, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())
			m.Advance(0.0105)
			Expect(m.Time()).To(BeNumerically(">=", 0.0105))
			Expect(m.Time()).To(BeNumerically("<=", 0.0105+models.NModelDtMax+1e-12))
		})

		It("ignores non-positive requests", func() {
			m, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())
			before := m.Snapshot()
			m.Advance(0)
			m.Advance(-1)
			Expect(m.Time()).To(BeZero())
			Expect(m.Snapshot()).To(Equal(before))
		})

		It("gives the same result in one call or two halves", func() {
			// binary fractions keep both sub-step clocks exact
			a, err := models.NewNModel(threeBodies(), models.WithDtMax(0.0625))
			Expect(err).NotTo(HaveOccurred())
			b, err := models.NewNModel(threeBodies(), models.WithDtMax(0.0625))
			Expect(err).NotTo(HaveOccurred())

			a.Advance(0.25)
			b.Advance(0.125)
			b.Advance(0.125)

			Expect(a.Time()).To(Equal(b.Time()))
			Expect(a.Snapshot()).To(Equal(b.Snapshot()))
		})

		It("agrees within one sub-step at the default ceiling", func() {
			a, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())
			b, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())

			a.Advance(0.01)
			b.Advance(0.005)
			b.Advance(0.005)

			Expect(a.Time()).To(BeNumerically("~", b.Time(), models.NModelDtMax+1e-12))
			ea, _ := a.Body(1)
			eb, _ := b.Body(1)
			Expect(ea.Pos.Dist(eb.Pos)).To(BeNumerically("<", 0.01))
		})

		It("reaches an absolute time with AdvanceTo", func() {
			m, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())
			m.AdvanceTo(0.05)
			Expect(m.Time()).To(BeNumerically("~", 0.05, models.NModelDtMax+1e-12))
			m.AdvanceTo(0.01)
			Expect(m.Time()).To(BeNumerically(">=", 0.05))
		})

		It("keeps momentum at zero", func() {
			m, err := models.NewNModel(threeBodies())
			Expect(err).NotTo(HaveOccurred())
			m.Advance(0.5)
			Expect(m.Physics().Momentum(m.Bodies()).R()).To(BeNumerically("<", 1e-10))
		})

		It("keeps Earth at 1 AU for a year", func() {
			m, err := models.NewNModel(sunEarth())
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 100; i++ {
				m.AdvanceTo(float64(i+1) / 100)
				sun, _ := m.Body(0)
				earth, _ := m.Body(1)
				Expect(earth.Pos.Dist(sun.Pos)).To(BeNumerically("~", 1, 0.01))
			}
			Expect(m.Time()).To(BeNumerically("~", 1, models.NModelDtMax+1e-12))
		})
	})

	Describe("external overrides", func() {
		var m *models.NModel

		BeforeEach(func() {
			var err error
			m, err = models.NewNModel(threeBodies(), models.WithoutNormalization())
			Expect(err).NotTo(HaveOccurred())
		})

		It("repositions a row with SetRow", func() {
			Expect(m.SetRow(2, vector.Vector{X: 9}, vector.Vector{Y: -1})).To(Succeed())
			b, err := m.Body(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Pos).To(Equal(vector.Vector{X: 9}))
			Expect(b.Vel).To(Equal(vector.Vector{Y: -1}))
			Expect(b.Mass).To(Equal(5e-4))
		})

		It("kicks a row with AddVelocity", func() {
			Expect(m.AddVelocity(0, vector.Vector{X: 1})).To(Succeed())
			b, _ := m.Body(0)
			Expect(b.Vel).To(Equal(vector.Vector{X: 1, Z: 1}))
		})

		It("aims a row in the x-z plane", func() {
			Expect(m.Aim(0, 3, 90)).To(Succeed())
			b, _ := m.Body(0)
			Expect(b.Vel.X).To(BeNumerically("~", 0, 1e-12))
			Expect(b.Vel.Z).To(BeNumerically("~", -3, 1e-12))
			Expect(b.Pos).To(Equal(vector.Vector{X: -1}))
		})

		It("returns copies that never write back", func() {
			b, _ := m.Body(1)
			b.Pos = vector.Vector{X: 100}
			again, _ := m.Body(1)
			Expect(again.Pos).To(Equal(vector.Vector{X: 1, Y: 0.5}))
		})

		It("drops rows by mask and by count", func() {
			Expect(m.Remove([]bool{false, true, false})).To(Succeed())
			Expect(m.Len()).To(Equal(2))
			Expect(m.Masses()).To(Equal([]float64{2e-3, 5e-4}))

			Expect(m.Truncate(1)).To(Succeed())
			Expect(m.Len()).To(Equal(1))
			Expect(m.Snapshot()).To(HaveLen(body.Cols))
		})

		It("rejects out-of-range rows", func() {
			Expect(m.SetRow(3, vector.Vector{}, vector.Vector{})).To(MatchError(body.ErrIndexOutOfRange))
			Expect(m.Truncate(4)).To(MatchError(body.ErrIndexOutOfRange))
			Expect(m.Remove([]bool{true})).To(MatchError(body.ErrDimensionMismatch))
		})
	})

	Describe("pinned rows", func() {
		It("hold their place while the rest move", func() {
			m, err := models.NewNModel(threeBodies(), models.WithoutNormalization(), models.WithPinned(1))
			Expect(err).NotTo(HaveOccurred())

			start, _ := m.Body(0)
			m.Advance(0.2)

			pinned, _ := m.Body(1)
			Expect(pinned.Pos).To(Equal(vector.Vector{X: 1, Y: 0.5}))
			Expect(pinned.Vel).To(Equal(vector.Vector{}))
			moved, _ := m.Body(0)
			Expect(moved.Pos).NotTo(Equal(start.Pos))
		})

		It("follow their body when earlier rows are removed", func() {
			m, err := models.NewNModel(threeBodies(), models.WithoutNormalization(), models.WithPinned(2))
			Expect(err).NotTo(HaveOccurred())

			Expect(m.Remove([]bool{true, false, false})).To(Succeed())
			Expect(m.Pinned()).To(Equal([]int{1}))

			m.Advance(0.1)
			b, _ := m.Body(1)
			Expect(b.Pos).To(Equal(vector.Vector{Y: 2, Z: 1}))
		})

		It("are released when their row is truncated", func() {
			m, err := models.NewNModel(threeBodies(), models.WithoutNormalization(), models.WithPinned(0, 2))
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Truncate(2)).To(Succeed())
			Expect(m.Pinned()).To(Equal([]int{0}))
		})
	})
})
