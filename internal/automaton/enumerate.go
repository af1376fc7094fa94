package automaton

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultCeiling bounds the number of configurations enumerated unless
// WithCeiling raises it.
const DefaultCeiling uint64 = 1 << 24

const defaultBatchSize uint64 = 4096

// Map is the complete transition function of an automaton: every signature
// in [0, Len()) mapped to the signature of its successor.
type Map struct {
	shape  Shape
	states int
	next   []Signature
}

// NewMap rebuilds a map from a dense transition slice where next[s] is the
// successor of s. Every entry must lie inside the domain.
func NewMap(shape Shape, states int, next []Signature) (*Map, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	domain, err := DomainSize(states, shape.Cells())
	if err != nil {
		return nil, err
	}
	if uint64(len(next)) != domain {
		return nil, fmt.Errorf("%w: %d transitions for domain %d", ErrSignatureOutOfRange, len(next), domain)
	}
	for s, t := range next {
		if uint64(t) >= domain {
			return nil, fmt.Errorf("%w: %d -> %d outside domain %d", ErrSignatureOutOfRange, s, t, domain)
		}
	}
	return &Map{shape: shape, states: states, next: slices.Clone(next)}, nil
}

// Shape returns the grid shape the map was built for.
func (m *Map) Shape() Shape { return m.shape }

// States returns the state count the map was built for.
func (m *Map) States() int { return m.states }

// Len returns the domain size.
func (m *Map) Len() uint64 { return uint64(len(m.next)) }

// Next returns the successor of s, or false when s is outside the domain.
func (m *Map) Next(s Signature) (Signature, bool) {
	if uint64(s) >= uint64(len(m.next)) {
		return 0, false
	}
	return m.next[s], true
}

// Transitions returns a copy of the dense transition slice.
func (m *Map) Transitions() []Signature { return slices.Clone(m.next) }

// ToMap returns the transitions as a Go map.
func (m *Map) ToMap() map[Signature]Signature {
	out := make(map[Signature]Signature, len(m.next))
	for s, t := range m.next {
		out[Signature(s)] = t
	}
	return out
}

// Equal reports whether m and o describe the same function.
func (m *Map) Equal(o *Map) bool {
	return m.shape == o.shape && m.states == o.states && slices.Equal(m.next, o.next)
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithWorkers sets the number of concurrent batches. Values below one mean
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Enumerator) { e.workers = n }
}

// WithCeiling sets the largest domain EnumerateAll accepts.
func WithCeiling(limit uint64) Option {
	return func(e *Enumerator) { e.ceiling = limit }
}

// WithBatchSize sets how many signatures one task processes before the
// context is checked again.
func WithBatchSize(n uint64) Option {
	return func(e *Enumerator) { e.batch = n }
}

// WithLogger routes run and progress logs to log.
func WithLogger(log *zap.Logger) Option {
	return func(e *Enumerator) { e.log = log }
}

// WithProgress registers fn to be called after each batch with the number of
// signatures completed so far. fn may be called from several goroutines.
func WithProgress(fn func(done, total uint64)) Option {
	return func(e *Enumerator) { e.progress = fn }
}

// Enumerator drives the exhaustive computation of automaton maps.
type Enumerator struct {
	workers  int
	ceiling  uint64
	batch    uint64
	log      *zap.Logger
	progress func(done, total uint64)
}

// NewEnumerator returns an Enumerator with the given options applied.
func NewEnumerator(opts ...Option) *Enumerator {
	e := &Enumerator{
		ceiling: DefaultCeiling,
		batch:   defaultBatchSize,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.NumCPU()
	}
	if e.batch == 0 {
		e.batch = defaultBatchSize
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// EnumerateAll builds cfg's automaton and enumerates its map.
func EnumerateAll(ctx context.Context, cfg Config, opts ...Option) (*Map, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return NewEnumerator(opts...).EnumerateAll(ctx, a)
}

// EnumerateAll computes the successor of every configuration of a. Batches
// run concurrently; cancellation of ctx is observed between batches.
func (e *Enumerator) EnumerateAll(ctx context.Context, a *Automaton) (*Map, error) {
	domain := a.Domain()
	if domain > e.ceiling || domain > uint64(maxInt) {
		return nil, fmt.Errorf("%w: %d configurations exceed ceiling %d", ErrDomainTooLarge, domain, min(e.ceiling, uint64(maxInt)))
	}

	log := e.log.With(zap.Stringer("shape", a.Shape()), zap.Int("states", a.States()))
	log.Info("enumerating automaton map",
		zap.Uint64("domain", domain),
		zap.Int("workers", e.workers),
		zap.Uint64("batch", e.batch),
	)
	start := time.Now()

	next := make([]Signature, domain)
	var done atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for lo := uint64(0); lo < domain; lo += e.batch {
		if gctx.Err() != nil {
			break
		}
		hi := min(lo+e.batch, domain)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := e.runBatch(a, next, lo, hi); err != nil {
				return err
			}
			completed := done.Add(hi - lo)
			log.Debug("batch complete", zap.Uint64("from", lo), zap.Uint64("to", hi), zap.Uint64("done", completed))
			if e.progress != nil {
				e.progress(completed, domain)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("enumeration aborted", zap.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("automaton map complete", zap.Uint64("domain", domain), zap.Duration("elapsed", time.Since(start)))
	return &Map{shape: a.Shape(), states: a.States(), next: next}, nil
}

// runBatch fills next[lo:hi]. Each batch owns a disjoint range of next.
func (e *Enumerator) runBatch(a *Automaton, next []Signature, lo, hi uint64) error {
	n := a.Shape().Cells()
	src := make([]State, n)
	dst := make([]State, n)
	h := make(Histogram, a.States())
	for s := lo; s < hi; s++ {
		if err := decodeInto(src, Signature(s), a.States()); err != nil {
			return err
		}
		if err := a.step(dst, src, h); err != nil {
			return err
		}
		next[s] = a.encode(dst)
	}
	return nil
}

const maxInt = int(^uint(0) >> 1)
