package random

import "sync"

// Pool hands out per-goroutine samplers split from a shared root, so
// steady-state draws never contend on shared state. Splitting the root is
// the only locked path and happens once per pooled sampler.
type Pool struct {
	mu   sync.Mutex
	root *SplitMix
	pool sync.Pool
}

func NewPool(seed int64) *Pool {
	p := &Pool{root: NewSplitMix(seed)}
	p.pool.New = func() interface{} {
		p.mu.Lock()
		src := p.root.Split()
		p.mu.Unlock()
		return &Rand{src: src}
	}
	return p
}

// Get returns a sampler for the calling goroutine; return it with Put
// when done so it can be reused.
func (p *Pool) Get() *Rand {
	return p.pool.Get().(*Rand)
}

func (p *Pool) Put(r *Rand) {
	p.pool.Put(r)
}

// defaultPool backs the package-level draws. It is seeded from system
// entropy and never rebound; deterministic code constructs its own
// seeded Rand instead.
var defaultPool = NewPool(NewSeed())

func Uint64() uint64 {
	r := defaultPool.Get()
	defer defaultPool.Put(r)
	return r.Uint64()
}

func Int63() int64 {
	r := defaultPool.Get()
	defer defaultPool.Put(r)
	return r.Int63()
}

func Int63n(upper int64) int64 {
	r := defaultPool.Get()
	defer defaultPool.Put(r)
	return r.Int63n(upper)
}

func Intn(n int) int {
	r := defaultPool.Get()
	defer defaultPool.Put(r)
	return r.Intn(n)
}

func Float64() float64 {
	r := defaultPool.Get()
	defer defaultPool.Put(r)
	return r.Float64()
}
