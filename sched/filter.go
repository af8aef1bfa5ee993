package sched

import "github.com/pavlosg/havoc/threads"

// Filters narrow every view of a context (AllThreads, FreeThreads, the
// counts, SomeFreeProcess) to a subset of threads without touching the
// underlying state. The receiver is unaffected; contexts not wrapped by
// the filter keep seeing everything. Filters compose by intersection.

// Filter keeps the threads matching pred.
func (c *Context) Filter(pred func(threads.Name) bool) *Context {
	s := threads.NewSet(c.table.Size())
	for i, name := range c.table.All() {
		if pred(name) {
			s.Add(i)
		}
	}
	return c.withFilter(s)
}

// Restrict keeps exactly the given threads. Unknown names panic.
func (c *Context) Restrict(names ...threads.Name) *Context {
	s, err := c.table.Set(names...)
	if err != nil {
		panic(err)
	}
	return c.withFilter(s)
}

// Exclude keeps everything but one thread; Exclude(RoleName(Nemesis)) is
// the usual way to scope a generator to worker threads only.
func (c *Context) Exclude(name threads.Name) *Context {
	i := c.mustIndex(name)
	return c.Filter(func(n threads.Name) bool {
		j := c.mustIndex(n)
		return j != i
	})
}

// FilterPattern keeps the threads whose rendered name matches a '*'
// wildcard pattern.
func (c *Context) FilterPattern(pattern string) *Context {
	p := threads.CompilePattern(pattern)
	return c.Filter(p.Match)
}

func (c *Context) withFilter(s threads.Set) *Context {
	if c.filter != nil {
		s = s.Intersect(c.filter)
	}
	cc := c.clone()
	cc.filter = s
	return cc
}
