package profile

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jrsteele09/go-profile-optimizer/internal/utils"
)

// Simulator is the only source of fabricated profile data. Everything it returns is
// tagged SourceMock by the Exchanger.
type Simulator interface {
	// Analytics returns simulated profile views, connections and post impressions.
	Analytics() *Patch
	// Identity returns a complete demo identity.
	Identity() *Patch
}

// DemoIdentity is the identity substituted when no real profile field is available.
var DemoIdentity = Patch{
	ID:         utils.Ptr("demo-member"),
	FirstName:  utils.Ptr("Jordan"),
	LastName:   utils.Ptr("Taylor"),
	Headline:   utils.Ptr("Senior Software Engineer | Full Stack Developer | Tech Enthusiast"),
	Email:      utils.Ptr("jordan.taylor@example.com"),
	PictureURL: utils.Ptr("/placeholder.svg?height=100&width=100"),
	VanityName: utils.Ptr("jordantaylor"),
}

// RandomSimulator draws analytics from fixed ranges using a seeded generator.
type RandomSimulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator returns a RandomSimulator. A zero seed uses the current time.
func NewSimulator(seed uint64) *RandomSimulator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomSimulator{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (s *RandomSimulator) Analytics() *Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Patch{
		ProfileViews:    utils.Ptr(50 + s.rng.IntN(100)),
		Connections:     utils.Ptr(500 + s.rng.IntN(1000)),
		PostImpressions: utils.Ptr(1000 + s.rng.IntN(5000)),
	}
}

func (s *RandomSimulator) Identity() *Patch {
	id := DemoIdentity
	return &id
}
