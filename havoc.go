// Package havoc is the scheduling core of a fault-injection test harness:
// it decides which virtual thread is free, which logical process owns it,
// and what randomness feeds generator decisions. Database-specific glue
// (clients, nemeses, install scripts) lives outside this module and
// consumes these interfaces.
package havoc

import (
	"time"

	"github.com/pavlosg/havoc/sched"
)

// Instruction is one operation a generator wants dispatched.
type Instruction interface {
	String() string
}

// Output is whatever an invocation returned, including errors.
type Output = interface{}

// Client executes instructions against the system under test. A client is
// bound to one thread; after an ambiguous failure the executor reopens it
// under the thread's next process identity.
type Client interface {
	Open(config string) error
	// Invoke runs the instruction, calling getTime for the completion
	// timestamp. A returned error Output that is not wrapped as
	// unambiguous means the operation may or may not have taken effect.
	Invoke(instruction Instruction, getTime func() int64) (int64, Output)
	Close() error
}

// Generator emits instructions for processes. Next returns nil when it has
// nothing to emit right now. Generators are driven by a single dispatcher
// and need no internal locking.
type Generator interface {
	Name() string
	SetUp(opt *Options) error
	Next(proc sched.Proc) (Instruction, error)
	TearDown() error
}

type Object = map[string]interface{}

type Options struct {
	Extras           Object
	Concurrency      int
	WorkloadDuration time.Duration
}

func (opt *Options) GetExtraString(key string) (s string, ok bool) {
	o, ok := opt.Extras[key]
	if !ok {
		return
	}
	s, ok = o.(string)
	return
}
