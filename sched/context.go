// Package sched tracks which virtual threads of a test harness are busy,
// which logical process occupies each, and hands out free processes
// fairly. Context values are immutable: every transition returns a new
// value, so snapshots can be read concurrently, but the authoritative
// current context must be owned by a single coordinator.
package sched

import (
	"github.com/pkg/errors"

	"github.com/pavlosg/havoc/threads"
)

type Context struct {
	time   int64
	table  *threads.Table
	procs  []Proc
	free   threads.Set
	cursor int
	filter threads.Set // nil when unfiltered
	extra  map[string]interface{}
}

// NewContext builds a context with concurrency worker threads plus the
// nemesis thread, everything free, every thread occupied by its initial
// process, time zero.
func NewContext(concurrency int) *Context {
	table, err := threads.NewTable(concurrency, threads.RoleName(threads.Nemesis))
	if err != nil {
		panic(err)
	}
	procs := make([]Proc, table.Size())
	for i := 0; i < concurrency; i++ {
		procs[i] = WorkerProc(int64(i))
	}
	procs[concurrency] = RoleProc(threads.Nemesis)
	return &Context{table: table, procs: procs, free: table.Full()}
}

func (c *Context) Time() int64 {
	return c.time
}

// Concurrency is the worker thread count, excluding the nemesis thread.
func (c *Context) Concurrency() int {
	return c.table.Workers()
}

func (c *Context) clone() *Context {
	cc := *c
	return &cc
}

func (c *Context) mustIndex(name threads.Name) int {
	i, err := c.table.Index(name)
	if err != nil {
		panic(err)
	}
	return i
}

func maxTime(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// BusyThread marks name busy and advances time to max(c.Time(), time).
// The fairness cursor moves past the busied thread so the next free-thread
// pick starts after it. Busying an already-busy or unknown thread is a
// caller error and panics.
func (c *Context) BusyThread(time int64, name threads.Name) *Context {
	i := c.mustIndex(name)
	if !c.free.Has(i) {
		panic("sched: BusyThread on busy thread " + name.String())
	}
	cc := c.clone()
	cc.free = c.free.Clone()
	cc.free.Remove(i)
	cc.cursor = (i + 1) % c.table.Size()
	cc.time = maxTime(c.time, time)
	return cc
}

// FreeThread marks name free again and advances time the same way. The
// occupying process is unchanged. Freeing an already-free or unknown
// thread is a caller error and panics.
func (c *Context) FreeThread(time int64, name threads.Name) *Context {
	i := c.mustIndex(name)
	if c.free.Has(i) {
		panic("sched: FreeThread on free thread " + name.String())
	}
	cc := c.clone()
	cc.free = c.free.Clone()
	cc.free.Add(i)
	cc.time = maxTime(c.time, time)
	return cc
}

// WithNextProcess replaces the process occupying name after a crash:
// worker process numbers advance by the worker count so identities never
// collide across threads, role processes bump their incarnation counter.
// Time is unaffected.
func (c *Context) WithNextProcess(name threads.Name) *Context {
	i := c.mustIndex(name)
	cc := c.clone()
	cc.procs = make([]Proc, len(c.procs))
	copy(cc.procs, c.procs)
	p := cc.procs[i]
	if p.IsWorker() {
		p.n += int64(c.Concurrency())
	} else {
		p.n++
	}
	cc.procs[i] = p
	return cc
}

// visibleFree is the free set restricted to the active filter.
func (c *Context) visibleFree() threads.Set {
	if c.filter == nil {
		return c.free
	}
	return c.free.Intersect(c.filter)
}

// SomeFreeProcess returns the process occupying a free visible thread, or
// false when none is free. Selection starts at the rotation cursor, so
// repeated pick/busy/free cycles visit every free thread instead of
// favoring the lowest index.
func (c *Context) SomeFreeProcess() (Proc, bool) {
	i := c.visibleFree().Next(c.cursor, c.table.Size())
	if i < 0 {
		return Proc{}, false
	}
	return c.procs[i], true
}

func (c *Context) AllThreads() []threads.Name {
	if c.filter == nil {
		return c.table.All()
	}
	return c.table.Names(c.filter)
}

func (c *Context) FreeThreads() []threads.Name {
	return c.table.Names(c.visibleFree())
}

func (c *Context) AllThreadCount() int {
	if c.filter == nil {
		return c.table.Size()
	}
	return c.filter.Count()
}

func (c *Context) FreeThreadCount() int {
	return c.visibleFree().Count()
}

func (c *Context) AllProcesses() []Proc {
	return c.procsOf(c.AllThreads())
}

func (c *Context) FreeProcesses() []Proc {
	return c.procsOf(c.FreeThreads())
}

func (c *Context) procsOf(names []threads.Name) []Proc {
	procs := make([]Proc, len(names))
	for i, name := range names {
		procs[i] = c.procs[c.mustIndex(name)]
	}
	return procs
}

// ThreadProcess looks up the process currently occupying name.
func (c *Context) ThreadProcess(name threads.Name) (Proc, error) {
	i, err := c.table.Index(name)
	if err != nil {
		return Proc{}, err
	}
	return c.procs[i], nil
}

// ProcessThread looks up the thread a process occupies. Only current
// occupants are known; replaced processes are gone.
func (c *Context) ProcessThread(p Proc) (threads.Name, error) {
	for i, q := range c.procs {
		if q == p {
			name, err := c.table.Name(i)
			if err != nil {
				return threads.Name{}, err
			}
			return name, nil
		}
	}
	return threads.Name{}, errors.Errorf("sched: unknown process %v", p)
}

// WithExtra attaches open-record data preserved unchanged by every
// transition.
func (c *Context) WithExtra(key string, value interface{}) *Context {
	cc := c.clone()
	cc.extra = make(map[string]interface{}, len(c.extra)+1)
	for k, v := range c.extra {
		cc.extra[k] = v
	}
	cc.extra[key] = value
	return cc
}

func (c *Context) Extra(key string) (interface{}, bool) {
	v, ok := c.extra[key]
	return v, ok
}
