package generators

import (
	"sync"

	"github.com/pavlosg/havoc"
	"github.com/pavlosg/havoc/sched"
)

// Synchronize makes a generator safe to share between goroutines. The
// runner's dispatcher is single-threaded and does not need this; it exists
// for harnesses that poll generators from several places.
func Synchronize(gen havoc.Generator) havoc.Generator {
	return &synchronize{gen: gen}
}

type synchronize struct {
	gen   havoc.Generator
	mutex sync.Mutex
}

func (syn *synchronize) Name() string {
	return syn.gen.Name()
}

func (syn *synchronize) Next(proc sched.Proc) (havoc.Instruction, error) {
	syn.mutex.Lock()
	instr, err := syn.gen.Next(proc)
	syn.mutex.Unlock()
	return instr, err
}

func (syn *synchronize) SetUp(opt *havoc.Options) error {
	syn.mutex.Lock()
	defer syn.mutex.Unlock()
	return syn.gen.SetUp(opt)
}

func (syn *synchronize) TearDown() error {
	syn.mutex.Lock()
	defer syn.mutex.Unlock()
	return syn.gen.TearDown()
}
