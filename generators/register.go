package generators

import (
	"fmt"

	"github.com/pavlosg/havoc"
	"github.com/pavlosg/havoc/random"
	"github.com/pavlosg/havoc/sched"
)

type GetInstruction struct {
	Key string
}

type SetInstruction struct {
	Key   string
	Value int
}

func (op *GetInstruction) GetKey() string {
	return op.Key
}

func (op *SetInstruction) GetKey() string {
	return op.Key
}

func (op *GetInstruction) String() string {
	return fmt.Sprintf("Get(%q)", op.Key)
}

func (op *SetInstruction) String() string {
	return fmt.Sprintf("Set(%q, %d)", op.Key, op.Value)
}

// NewRegister emits gets and sets over the given keys. Keys are picked
// Zipfian, so low-ranked keys are hot and contention actually happens.
// Worker processes get instructions; the nemesis is left to other
// generators.
func NewRegister(keys []string, rand *random.Rand) havoc.Generator {
	return &registerGenerator{keys: keys, rand: rand}
}

type registerGenerator struct {
	keys []string
	rand *random.Rand
	val  int
}

func (gen *registerGenerator) Name() string {
	return "Register"
}

func (gen *registerGenerator) Next(proc sched.Proc) (havoc.Instruction, error) {
	if !proc.IsWorker() {
		return nil, nil
	}
	key := gen.keys[gen.rand.Zipf(int64(len(gen.keys)))]
	if proc.Int()&1 != 0 || gen.rand.Uint64()&1 != 0 {
		return &GetInstruction{Key: key}, nil
	}
	gen.val++
	return &SetInstruction{Key: key, Value: gen.val}, nil
}

func (gen *registerGenerator) SetUp(opt *havoc.Options) error {
	return nil
}

func (gen *registerGenerator) TearDown() error {
	return nil
}
