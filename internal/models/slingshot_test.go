package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/astrogolf/internal/models"
	"github.com/san-kum/astrogolf/internal/vector"
)

var _ = Describe("SlingShot", func() {
	var m *models.NModel

	BeforeEach(func() {
		var err error
		m, err = models.NewSlingShot()
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with the Sun, Earth and Jupiter", func() {
		Expect(m.Len()).To(Equal(3))
		Expect(m.Satellites()).To(BeZero())
		Expect(m.Masses()[models.SunRow]).To(Equal(1.0))
	})

	It("launches a satellite just ahead of Earth", func() {
		m.Advance(0.1)
		earth, _ := m.Body(models.EarthRow)

		row, err := m.LaunchFromEarth()
		Expect(err).NotTo(HaveOccurred())
		Expect(row).To(Equal(3))
		Expect(m.Satellites()).To(Equal(1))

		sat, _ := m.Body(row)
		Expect(sat.Mass).To(Equal(models.SatelliteMass))
		Expect(sat.Pos.Dist(earth.Pos)).To(BeNumerically("~", models.LaunchOffset, 1e-12))
		Expect(sat.Vel.Sub(earth.Vel.Scale(models.DefaultLaunchScale)).R()).To(BeNumerically("<", 1e-12))

		ahead := sat.Pos.Sub(earth.Pos)
		Expect(ahead.Dot(earth.Vel)).To(BeNumerically(">", 0))
	})

	It("keeps integrating after a launch", func() {
		row, err := m.Launch(models.EarthRow, 1.2)
		Expect(err).NotTo(HaveOccurred())
		before, _ := m.Body(row)

		m.Advance(0.05)

		after, _ := m.Body(row)
		Expect(after.Pos).NotTo(Equal(before.Pos))
		d, nearest, err := m.ClosestApproach(row)
		Expect(err).NotTo(HaveOccurred())
		Expect(nearest).To(Equal(models.EarthRow))
		Expect(d).To(BeNumerically(">", 0))
	})

	It("cannot launch from a body at rest", func() {
		Expect(m.SetRow(models.JupiterRow, vector.Vector{X: 5}, vector.Vector{})).To(Succeed())
		_, err := m.Launch(models.JupiterRow, 1.4)
		Expect(err).To(MatchError(vector.ErrZeroMagnitude))
	})
})
