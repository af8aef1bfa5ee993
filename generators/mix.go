package generators

import (
	"strings"

	"github.com/pavlosg/havoc"
	"github.com/pavlosg/havoc/random"
	"github.com/pavlosg/havoc/sched"
)

// WeightedGenerator pairs a generator with its relative draw weight.
type WeightedGenerator struct {
	Gen    havoc.Generator
	Weight float64
}

// NewMix draws one of the given generators per call, with probability
// proportional to weight. A zero-weight entry is carried through SetUp and
// TearDown but never drawn.
func NewMix(rand *random.Rand, gens ...WeightedGenerator) havoc.Generator {
	m := &mix{rand: rand}
	for _, wg := range gens {
		m.gens = append(m.gens, wg.Gen)
		m.weights = append(m.weights, wg.Weight)
	}
	return m
}

type mix struct {
	gens    []havoc.Generator
	weights []float64
	rand    *random.Rand
}

func (m *mix) Name() string {
	var sb strings.Builder
	sb.WriteString("Mix(")
	for i, gen := range m.gens {
		if i > 0 {
			sb.WriteByte('~')
		}
		sb.WriteString(gen.Name())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (m *mix) Next(proc sched.Proc) (havoc.Instruction, error) {
	i := m.rand.WeightedIndex(m.weights)
	if i < 0 {
		return nil, nil
	}
	return m.gens[i].Next(proc)
}

func (m *mix) SetUp(opt *havoc.Options) error {
	for _, gen := range m.gens {
		if err := gen.SetUp(opt); err != nil {
			return err
		}
	}
	return nil
}

func (m *mix) TearDown() (retErr error) {
	for _, gen := range m.gens {
		if err := gen.TearDown(); err != nil && retErr == nil {
			retErr = err
		}
	}
	return
}
