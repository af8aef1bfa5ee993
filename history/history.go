// Package history records invoked operations labeled with stable process
// identities, so two logical clients that reuse the same thread across a
// crash are never confused with each other.
package history

import (
	"sync"
	"time"

	"github.com/anishathalye/porcupine"
	"github.com/google/uuid"

	"github.com/pavlosg/havoc"
	"github.com/pavlosg/havoc/sched"
)

type Operation struct {
	Process sched.Proc
	Input   havoc.Instruction
	Call    int64 // invocation timestamp
	Output  havoc.Output
	Return  int64 // response timestamp, -1 while ambiguous
}

// Log collects operations and serves the harness logical clock:
// microseconds since the run started, strictly increasing across calls.
type Log struct {
	runID     uuid.UUID
	head      *node
	startTime time.Time
	time      int64
	mutex     sync.Mutex
}

type node struct {
	next  *node
	value Operation
}

func NewLog() *Log {
	return &Log{runID: uuid.New(), startTime: time.Now()}
}

// RunID tags every extract of this log; it shows up in archived histories
// so reruns are distinguishable.
func (l *Log) RunID() uuid.UUID {
	return l.runID
}

func (l *Log) GetTime() int64 {
	now := int64(time.Since(l.startTime) / time.Microsecond)
	l.mutex.Lock()
	if now <= l.time {
		now = l.time + 1
	}
	l.time = now
	l.mutex.Unlock()
	return now
}

func (l *Log) Append(op Operation) {
	n := &node{value: op}
	l.mutex.Lock()
	n.next = l.head
	l.head = n
	l.mutex.Unlock()
}

// Extract drains the log in append order. Operations that never returned
// (Return == -1) are given synthetic return times after everything else,
// keeping the history well formed for downstream checkers.
func (l *Log) Extract() []Operation {
	l.mutex.Lock()
	head := l.head
	l.head = nil
	l.mutex.Unlock()

	var ret []Operation
	var maxTime int64
	for head != nil {
		if maxTime < head.value.Return {
			maxTime = head.value.Return
		}
		if maxTime < head.value.Call {
			maxTime = head.value.Call
		}
		ret = append(ret, head.value)
		next := head.next
		head.next = nil
		head = next
	}

	// ret is still in reverse-append order here; walk backwards so the
	// synthetic return times follow invocation order.
	for i := len(ret) - 1; i >= 0; i-- {
		if ret[i].Return == -1 {
			maxTime++
			ret[i].Return = maxTime
		}
	}

	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}

// ClientSlot folds a process back onto its thread's dense slot: worker
// processes advance by the worker count on replacement, so the residue
// recovers the thread; role processes take the slots after the workers.
func ClientSlot(concurrency int, p sched.Proc) int {
	if p.IsWorker() {
		return int(p.Int()) % concurrency
	}
	return concurrency
}

// ToPorcupine converts an extracted history for linearizability tooling.
// Porcupine wants small per-client ids with sequential operations, which
// is exactly what thread slots are.
func ToPorcupine(concurrency int, ops []Operation) []porcupine.Operation {
	hist := make([]porcupine.Operation, len(ops))
	for i, op := range ops {
		hist[i] = porcupine.Operation{
			ClientId: ClientSlot(concurrency, op.Process),
			Input:    op.Input,
			Call:     op.Call,
			Output:   op.Output,
			Return:   op.Return,
		}
	}
	return hist
}
