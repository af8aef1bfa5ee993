package generators

import (
	"time"

	"github.com/pavlosg/havoc"
	"github.com/pavlosg/havoc/random"
	"github.com/pavlosg/havoc/sched"
)

// Stagger spaces a generator's instructions with exponential gaps of the
// given mean, so load arrives in a memoryless trickle instead of lockstep.
func Stagger(gen havoc.Generator, mean time.Duration, rand *random.Rand) havoc.Generator {
	return &stagger{gen: gen, mean: mean, next: time.Now(), rand: rand}
}

type stagger struct {
	gen  havoc.Generator
	mean time.Duration
	next time.Time
	rand *random.Rand
}

func (st *stagger) Name() string {
	return "Stagger(" + st.gen.Name() + ")"
}

func (st *stagger) Next(proc sched.Proc) (havoc.Instruction, error) {
	now := time.Now()
	if now.Before(st.next) {
		return nil, nil
	}
	instr, err := st.gen.Next(proc)
	if err == nil && instr != nil {
		gap := st.rand.ExpFloat64(1 / float64(st.mean))
		st.next = now.Add(time.Duration(gap))
	}
	return instr, err
}

func (st *stagger) SetUp(opt *havoc.Options) error {
	return st.gen.SetUp(opt)
}

func (st *stagger) TearDown() error {
	return st.gen.TearDown()
}
