package sched

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pavlosg/havoc/threads"
)

func TestExcludeNemesis(t *testing.T) {
	c := NewContext(2).Exclude(nemesis)
	require.Equal(t, []threads.Name{threads.Worker(0), threads.Worker(1)}, c.AllThreads())
	require.Equal(t, 2, c.AllThreadCount())
	require.Equal(t, 2, c.FreeThreadCount())

	p, ok := c.SomeFreeProcess()
	require.True(t, ok)
	require.Equal(t, WorkerProc(0), p)

	// With both workers busy the nemesis thread stays invisible.
	c = c.BusyThread(1, threads.Worker(0))
	c = c.BusyThread(1, threads.Worker(1))
	_, ok = c.SomeFreeProcess()
	require.False(t, ok)
}

func TestRestrict(t *testing.T) {
	c := NewContext(2).Restrict(threads.Worker(1), nemesis)
	require.Equal(t, []threads.Name{threads.Worker(1), nemesis}, c.AllThreads())
	require.Equal(t, []threads.Name{threads.Worker(1), nemesis}, c.FreeThreads())
	require.Equal(t, []Proc{WorkerProc(1), RoleProc(threads.Nemesis)}, c.AllProcesses())
	require.Equal(t, c.AllProcesses(), c.FreeProcesses())

	require.Panics(t, func() { NewContext(2).Restrict(threads.Worker(5)) })
}

func TestFilterPredicate(t *testing.T) {
	c := NewContext(4).Filter(func(n threads.Name) bool {
		return n.IsWorker() && n.Worker()%2 == 1
	})
	require.Equal(t, []threads.Name{threads.Worker(1), threads.Worker(3)}, c.AllThreads())
}

func TestFilterPattern(t *testing.T) {
	c := NewContext(12).FilterPattern("1*")
	require.Equal(t,
		[]threads.Name{threads.Worker(1), threads.Worker(10), threads.Worker(11)},
		c.AllThreads())

	n := NewContext(2).FilterPattern("nemesis")
	require.Equal(t, []threads.Name{nemesis}, n.AllThreads())
}

func TestFiltersCompose(t *testing.T) {
	c := NewContext(4).Exclude(nemesis).Restrict(threads.Worker(2), nemesis)
	require.Equal(t, []threads.Name{threads.Worker(2)}, c.AllThreads())
}

func TestFilterLeavesStateIntact(t *testing.T) {
	base := NewContext(2)
	f := base.Exclude(nemesis)
	// Transitions through the filtered view affect shared state but the
	// unfiltered context value keeps its full view.
	f = f.BusyThread(1, threads.Worker(0))
	require.Equal(t, 1, f.FreeThreadCount())
	require.Equal(t, 3, base.FreeThreadCount())

	// Busying an invisible thread is still legal; filters only narrow
	// views, not transitions.
	f = f.BusyThread(2, nemesis)
	require.Equal(t, 1, f.FreeThreadCount())
	require.Equal(t, []threads.Name{threads.Worker(1)}, f.FreeThreads())
}

func TestFilterFairness(t *testing.T) {
	c := NewContext(3).Exclude(nemesis)
	var got []Proc
	for i := 0; i < 6; i++ {
		p, ok := c.SomeFreeProcess()
		require.True(t, ok)
		got = append(got, p)
		name, err := c.ProcessThread(p)
		require.NoError(t, err)
		c = c.BusyThread(int64(i), name)
		c = c.FreeThread(int64(i), name)
	}
	require.Equal(t, []Proc{
		WorkerProc(0), WorkerProc(1), WorkerProc(2),
		WorkerProc(0), WorkerProc(1), WorkerProc(2),
	}, got)
}
