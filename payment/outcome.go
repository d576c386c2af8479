package payment

import (
	"math/rand"
	"sync"
)

// OutcomeSource decides whether a card without a scripted behaviour is
// approved.
type OutcomeSource interface {
	Approve() bool
}

type forced bool

// Forced always returns approved.
func Forced(approved bool) OutcomeSource {
	return forced(approved)
}

func (f forced) Approve() bool {
	return bool(f)
}

type random struct {
	lock sync.Mutex
	rng  *rand.Rand
}

// Random approves half of the payments, drawing from rng.
func Random(rng *rand.Rand) OutcomeSource {
	return &random{rng: rng}
}

func (r *random) Approve() bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.rng.Float64() <= 0.5
}
