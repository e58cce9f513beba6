package responder

import (
	"math/rand/v2"
	"sync"
)

// Picker selects an index in [0, n). Implementations must be safe for
// concurrent use because one Responder serves every request.
type Picker interface {
	IntN(n int) int
}

// globalPicker draws from the process-wide generator, which is already
// goroutine-safe.
type globalPicker struct{}

func (globalPicker) IntN(n int) int {
	return rand.IntN(n)
}

// seededPicker is a deterministic Picker guarded by a mutex.
type seededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker returns a Picker whose sequence is fully determined by seed.
func NewSeededPicker(seed uint64) Picker {
	return &seededPicker{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (p *seededPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// pick returns one of candidates. Out-of-range indices from a misbehaving
// Picker wrap around so the responder still always answers.
func pick(p Picker, candidates []string) string {
	n := len(candidates)
	if n == 0 {
		return ""
	}
	i := p.IntN(n) % n
	if i < 0 {
		i += n
	}
	return candidates[i]
}
