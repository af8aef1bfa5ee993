// Package threads maps virtual thread names to dense integer indices so
// that thread populations can be manipulated as bitsets. A harness tracks
// hundreds of workers plus a handful of symbolic roles; hash sets of names
// are too slow for the per-operation set algebra the scheduler does.
package threads

import "github.com/pkg/errors"

// Table is an immutable bidirectional mapping between thread names and the
// dense index space 0..Size()-1. Workers 0..workers-1 occupy the first
// indices in numeric order, extras follow in declared order.
type Table struct {
	workers int
	extras  []Name
	index   map[Name]int
}

func NewTable(workers int, extras ...Name) (*Table, error) {
	if workers < 0 {
		return nil, errors.Errorf("threads: negative worker count %d", workers)
	}
	index := make(map[Name]int, workers+len(extras))
	for i := 0; i < workers; i++ {
		index[Worker(i)] = i
	}
	for i, name := range extras {
		if name.IsWorker() && name.Worker() < workers {
			return nil, errors.Errorf("threads: extra name %v collides with a worker id", name)
		}
		if _, ok := index[name]; ok {
			return nil, errors.Errorf("threads: duplicate extra name %v", name)
		}
		index[name] = workers + i
	}
	return &Table{workers: workers, extras: extras, index: index}, nil
}

// Size is the total number of names, workers and extras together.
func (t *Table) Size() int {
	return t.workers + len(t.extras)
}

func (t *Table) Workers() int {
	return t.workers
}

func (t *Table) Index(name Name) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, errors.Errorf("threads: unknown thread name %v", name)
	}
	return i, nil
}

func (t *Table) Name(i int) (Name, error) {
	if i < 0 || i >= t.Size() {
		return Name{}, errors.Errorf("threads: index %d out of range [0,%d)", i, t.Size())
	}
	if i < t.workers {
		return Worker(i), nil
	}
	return t.extras[i-t.workers], nil
}

// All returns every name in index order.
func (t *Table) All() []Name {
	names := make([]Name, 0, t.Size())
	for i := 0; i < t.workers; i++ {
		names = append(names, Worker(i))
	}
	names = append(names, t.extras...)
	return names
}

// Set builds a bitset with one bit per given name.
func (t *Table) Set(names ...Name) (Set, error) {
	s := NewSet(t.Size())
	for _, name := range names {
		i, err := t.Index(name)
		if err != nil {
			return nil, err
		}
		s.Add(i)
	}
	return s, nil
}

// Names lists the names of the set bits in index order.
func (t *Table) Names(s Set) []Name {
	names := make([]Name, 0, s.Count())
	for i := 0; i < t.Size(); i++ {
		if s.Has(i) {
			name, _ := t.Name(i)
			names = append(names, name)
		}
	}
	return names
}

// Full returns a set containing every index.
func (t *Table) Full() Set {
	s := NewSet(t.Size())
	for i := 0; i < t.Size(); i++ {
		s.Add(i)
	}
	return s
}
