package generators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pavlosg/havoc"
	"github.com/pavlosg/havoc/random"
	"github.com/pavlosg/havoc/sched"
	"github.com/pavlosg/havoc/threads"
)

func TestRegisterWorkersOnly(t *testing.T) {
	gen := NewRegister([]string{"a", "b"}, random.NewSeeded(1))
	instr, err := gen.Next(sched.RoleProc(threads.Nemesis))
	require.NoError(t, err)
	require.Nil(t, instr)

	instr, err = gen.Next(sched.WorkerProc(0))
	require.NoError(t, err)
	require.NotNil(t, instr)
}

func TestRegisterOddProcsOnlyRead(t *testing.T) {
	gen := NewRegister([]string{"a", "b", "c"}, random.NewSeeded(2))
	for i := 0; i < 200; i++ {
		instr, err := gen.Next(sched.WorkerProc(1))
		require.NoError(t, err)
		_, isGet := instr.(*GetInstruction)
		require.True(t, isGet, "odd processes must not write")
	}
}

func TestRegisterKeysZipfian(t *testing.T) {
	keys := []string{"a", "b", "c", "d"}
	gen := NewRegister(keys, random.NewSeeded(3))
	counts := map[string]int{}
	for i := 0; i < 20000; i++ {
		instr, err := gen.Next(sched.WorkerProc(0))
		require.NoError(t, err)
		counts[instr.(interface{ GetKey() string }).GetKey()]++
	}
	require.Greater(t, counts["a"], counts["b"])
	require.Greater(t, counts["b"], counts["d"])
}

func TestRegisterSetValuesIncrease(t *testing.T) {
	gen := NewRegister([]string{"k"}, random.NewSeeded(4))
	last := 0
	for i := 0; i < 500; i++ {
		instr, err := gen.Next(sched.WorkerProc(0))
		require.NoError(t, err)
		if set, ok := instr.(*SetInstruction); ok {
			require.Greater(t, set.Value, last)
			last = set.Value
		}
	}
	require.Greater(t, last, 0, "even processes must write sometimes")
}

func TestStagger(t *testing.T) {
	inner := NewRegister([]string{"k"}, random.NewSeeded(5))
	gen := Stagger(inner, 50*time.Millisecond, random.NewSeeded(6))
	require.Equal(t, "Stagger(Register)", gen.Name())

	emitted := 0
	for i := 0; i < 1000; i++ {
		instr, err := gen.Next(sched.WorkerProc(0))
		require.NoError(t, err)
		if instr != nil {
			emitted++
		}
	}
	// A tight loop over a 50ms mean pace cannot emit on every call.
	require.Less(t, emitted, 100)
	require.GreaterOrEqual(t, emitted, 1)
}

func TestMix(t *testing.T) {
	reads := NewRegister([]string{"r"}, random.NewSeeded(7))
	writes := NewRegister([]string{"w"}, random.NewSeeded(8))
	gen := NewMix(random.NewSeeded(9),
		WeightedGenerator{Gen: reads, Weight: 3},
		WeightedGenerator{Gen: writes, Weight: 1},
	)
	require.Equal(t, "Mix(Register~Register)", gen.Name())
	require.NoError(t, gen.SetUp(&havoc.Options{}))

	counts := map[string]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		instr, err := gen.Next(sched.WorkerProc(0))
		require.NoError(t, err)
		counts[instr.(interface{ GetKey() string }).GetKey()]++
	}
	require.InDelta(t, 0.75, float64(counts["r"])/draws, 0.02)
	require.InDelta(t, 0.25, float64(counts["w"])/draws, 0.02)
	require.NoError(t, gen.TearDown())
}

func TestMixZeroWeights(t *testing.T) {
	gen := NewMix(random.NewSeeded(10),
		WeightedGenerator{Gen: NewRegister([]string{"k"}, random.NewSeeded(11))},
	)
	instr, err := gen.Next(sched.WorkerProc(0))
	require.NoError(t, err)
	require.Nil(t, instr)
}

func TestSynchronize(t *testing.T) {
	gen := Synchronize(NewRegister([]string{"k"}, random.NewSeeded(12)))
	require.Equal(t, "Register", gen.Name())
	done := make(chan error)
	for g := 0; g < 4; g++ {
		go func() {
			for i := 0; i < 1000; i++ {
				if _, err := gen.Next(sched.WorkerProc(0)); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for g := 0; g < 4; g++ {
		require.NoError(t, <-done)
	}
}
