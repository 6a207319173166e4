package attitude_test

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attgen/internal/arena"
	"github.com/san-kum/attgen/internal/attitude"
	"github.com/san-kum/attgen/internal/engine"
)

type tickRecorder struct {
	errors   []float32
	controls []engine.CarControls
}

func (r *tickRecorder) OnTick(_ int, angleErr float32, c engine.CarControls) {
	r.errors = append(r.errors, angleErr)
	r.controls = append(r.controls, c)
}

var _ = Describe("Drive", func() {
	var (
		a      *arena.Arena
		carID  uint32
		params attitude.Params
	)

	BeforeEach(func() {
		a = arena.New(engine.GameModeTheVoid, engine.MemWeightHeavy, 120)
		cfg := a.MutatorConfig()
		cfg.Gravity = mgl32.Vec3{0, 0, -1.1920929e-07}
		a.SetMutatorConfig(cfg)
		carID = a.AddCar(engine.TeamBlue, engine.Octane())
		params = attitude.DefaultParams(a.TickRate())
	})

	Context("when the car already faces the target", func() {
		It("terminates after exactly one tick", func() {
			out, err := attitude.Drive(a, carID, attitude.NewLoop(params, mgl32.Vec3{1000, 0, 0}))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Converged).To(BeTrue())
			Expect(out.Steps).To(Equal(1))
			Expect(out.Elapsed).To(Equal(float32(1) / 120))
			Expect(a.TickCount()).To(Equal(uint64(1)))
		})
	})

	Context("with a quarter turn of yaw and no initial spin", func() {
		var (
			rec *tickRecorder
			out attitude.Outcome
		)

		BeforeEach(func() {
			rec = &tickRecorder{}
			var err error
			out, err = attitude.Drive(a, carID, attitude.NewLoop(params, mgl32.Vec3{0, 1000, 0}), rec)
			Expect(err).NotTo(HaveOccurred())
		})

		It("converges within the step cap", func() {
			Expect(out.Converged).To(BeTrue())
			Expect(out.Elapsed).To(BeNumerically(">", 0))
			Expect(out.Elapsed).To(BeNumerically("<=", 30))
			Expect(out.FinalError).To(BeNumerically("<", params.Threshold))
		})

		It("closes the error monotonically", func() {
			Expect(rec.errors).NotTo(BeEmpty())
			Expect(rec.errors[0]).To(BeNumerically("~", math32.Pi/2, 1e-5))
			for i := 1; i < len(rec.errors); i++ {
				Expect(rec.errors[i]).To(BeNumerically("<=", rec.errors[i-1]+1e-5), "tick %d", i)
			}
		})

		It("keeps every command inside [-1, 1] and leaves pitch and roll idle", func() {
			for _, c := range rec.controls {
				Expect(c.IsValid()).To(BeTrue())
				Expect(c.Pitch).To(BeNumerically("~", 0, 1e-4))
				Expect(c.Roll).To(BeNumerically("~", 0, 1e-4))
			}
		})
	})

	Context("when the engine rejects the car id", func() {
		It("returns the engine error", func() {
			_, err := attitude.Drive(a, carID+100, attitude.NewLoop(params, mgl32.Vec3{1000, 0, 0}))
			Expect(err).To(MatchError(engine.ErrUnknownCar))
		})
	})
})
