// Package runner drives a workload: a single dispatcher goroutine owns
// the authoritative scheduling context, repeatedly picks a free process,
// asks the generator for an instruction and hands it to the thread's
// goroutine; completions free the thread again. Ambiguous client failures
// bump the thread's process identity before the thread is reused.
package runner

import (
	"time"

	"github.com/pkg/errors"

	"github.com/pavlosg/havoc"
	"github.com/pavlosg/havoc/history"
	"github.com/pavlosg/havoc/log"
	"github.com/pavlosg/havoc/sched"
	"github.com/pavlosg/havoc/threads"
)

type Runner struct {
	generator havoc.Generator
	clients   map[threads.Name]havoc.Client
	options   *havoc.Options
	config    string
}

// New builds a runner over one client per worker thread and an optional
// nemesis client. With a nil nemesis the nemesis thread is filtered out of
// scheduling entirely.
func New(gen havoc.Generator, clients []havoc.Client, nemesis havoc.Client,
	config string, opt *havoc.Options) (*Runner, error) {
	if len(clients) != opt.Concurrency {
		return nil, errors.Errorf(
			"runner: %d clients for concurrency %d", len(clients), opt.Concurrency)
	}
	byName := make(map[threads.Name]havoc.Client, len(clients)+1)
	for i, client := range clients {
		byName[threads.Worker(i)] = client
	}
	if nemesis != nil {
		byName[threads.RoleName(threads.Nemesis)] = nemesis
	}
	return &Runner{generator: gen, clients: byName, options: opt, config: config}, nil
}

type dispatch struct {
	proc  sched.Proc
	instr havoc.Instruction
}

type completion struct {
	name      threads.Name
	op        history.Operation
	ambiguous bool
}

// Run executes the workload until the configured duration elapses and all
// in-flight operations finish, then returns the extracted history.
func (r *Runner) Run() ([]history.Operation, error) {
	if err := r.generator.SetUp(r.options); err != nil {
		return nil, errors.Wrap(err, "generator SetUp")
	}
	defer func() {
		if err := r.generator.TearDown(); err != nil {
			log.Error("Generator %q TearDown: %v", r.generator.Name(), err)
		}
	}()
	for name, client := range r.clients {
		if err := client.Open(r.config); err != nil {
			return nil, errors.Wrapf(err, "opening client for thread %v", name)
		}
	}
	defer func() {
		for name, client := range r.clients {
			if err := client.Close(); err != nil {
				log.Error("Client %v Close: %v", name, err)
			}
		}
	}()

	hist := history.NewLog()
	log.Info("Run %v: %q, concurrency %d, duration %v",
		hist.RunID(), r.generator.Name(), r.options.Concurrency, r.options.WorkloadDuration)

	ctx := sched.NewContext(r.options.Concurrency)
	if _, ok := r.clients[threads.RoleName(threads.Nemesis)]; !ok {
		ctx = ctx.Exclude(threads.RoleName(threads.Nemesis))
	}

	done := make(chan completion)
	jobs := make(map[threads.Name]chan dispatch, len(r.clients))
	for name, client := range r.clients {
		ch := make(chan dispatch, 1)
		jobs[name] = ch
		w := &worker{name: name, client: client, config: r.config, jobs: ch, done: done, hist: hist}
		go w.run()
	}

	deadline := time.NewTimer(r.options.WorkloadDuration)
	defer deadline.Stop()
	retry := time.NewTicker(time.Millisecond)
	defer retry.Stop()

	var runErr error
	stopping := false
	busy := 0
	for {
		// Ask each free thread in cursor order at most once per round; an
		// idle busy/free cycle rotates the cursor past threads the
		// generator has nothing for.
		idle := 0
		limit := ctx.FreeThreadCount()
		for !stopping && idle < limit {
			proc, ok := ctx.SomeFreeProcess()
			if !ok {
				break
			}
			name, err := ctx.ProcessThread(proc)
			if err != nil {
				panic(err)
			}
			instr, err := r.generator.Next(proc)
			if err != nil {
				log.Error("Generator %q failed: %v", r.generator.Name(), err)
				runErr = err
				stopping = true
				break
			}
			if instr == nil {
				now := hist.GetTime()
				ctx = ctx.BusyThread(now, name).FreeThread(now, name)
				idle++
				continue
			}
			ctx = ctx.BusyThread(hist.GetTime(), name)
			busy++
			jobs[name] <- dispatch{proc: proc, instr: instr}
		}
		if stopping && busy == 0 {
			break
		}
		select {
		case c := <-done:
			busy--
			ctx = ctx.FreeThread(hist.GetTime(), c.name)
			if c.ambiguous {
				ctx = ctx.WithNextProcess(c.name)
				proc, err := ctx.ThreadProcess(c.name)
				if err != nil {
					panic(err)
				}
				log.Warning("Thread %v ambiguous failure, next process %v", c.name, proc)
			}
			hist.Append(c.op)
		case <-deadline.C:
			log.Info("Run %v: deadline reached", hist.RunID())
			stopping = true
		case <-retry.C:
		}
	}

	for _, ch := range jobs {
		close(ch)
	}
	log.Info("Run %v: finished at logical time %d", hist.RunID(), ctx.Time())
	return hist.Extract(), runErr
}

type worker struct {
	name    threads.Name
	client  havoc.Client
	config  string
	jobs    chan dispatch
	done    chan<- completion
	hist    *history.Log
	crashed bool
}

func (w *worker) run() {
	for d := range w.jobs {
		if w.crashed {
			// The previous incarnation may still hold connections; give
			// the new process a fresh client session.
			if err := w.client.Close(); err != nil {
				log.Warning("Thread %v Close after crash: %v", w.name, err)
			}
			if err := w.client.Open(w.config); err != nil {
				log.Error("Thread %v reopen: %v", w.name, err)
				w.done <- completion{name: w.name, op: history.Operation{
					Process: d.proc,
					Input:   d.instr,
					Call:    w.hist.GetTime(),
					Output:  err,
					Return:  -1,
				}, ambiguous: true}
				continue
			}
			w.crashed = false
		}
		op := history.Operation{Process: d.proc, Input: d.instr, Call: w.hist.GetTime()}
		ret, output := w.client.Invoke(d.instr, w.hist.GetTime)
		op.Return = ret
		op.Output = output
		ambiguous := false
		if err, ok := output.(error); ok && !havoc.IsUnambiguousError(err) {
			op.Return = -1
			ambiguous = true
			w.crashed = true
		}
		w.done <- completion{name: w.name, op: op, ambiguous: ambiguous}
	}
}
