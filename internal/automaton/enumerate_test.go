package automaton

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// majority is a 3-state rule set for a 3x2 torus: a cell takes the lowest
// state held by at least two of its four neighbours, otherwise it keeps its
// state.
func majority() RuleSet {
	var rs RuleSet
	for s := range 3 {
		for count := 2; count <= 4; count++ {
			rs = append(rs, Rule{Target: State(s), Conditions: []Condition{{Appearances: count, State: State(s)}}})
		}
	}
	return rs
}

func majorityConfig() Config {
	return Config{Width: 3, Height: 2, States: 3, Wrap: true, Rules: majority(), NoMatch: NoMatchKeep}
}

func TestEnumerateCoversDomain(t *testing.T) {
	m, err := EnumerateAll(context.Background(), majorityConfig(), WithWorkers(3), WithBatchSize(50))
	require.NoError(t, err)
	require.Equal(t, uint64(729), m.Len())

	keys := m.ToMap()
	require.Len(t, keys, 729)
	for s := range Signature(729) {
		next, ok := keys[s]
		require.Truef(t, ok, "missing signature %d", s)
		require.Less(t, uint64(next), uint64(729))
	}
	_, ok := m.Next(729)
	assert.False(t, ok)
}

func TestEnumerateMatchesGridNext(t *testing.T) {
	a, err := New(majorityConfig())
	require.NoError(t, err)
	m, err := NewEnumerator(WithWorkers(2), WithBatchSize(7)).EnumerateAll(context.Background(), a)
	require.NoError(t, err)

	for s := range Signature(a.Domain()) {
		g, err := a.Grid(s)
		require.NoError(t, err)
		next, err := g.Next()
		require.NoError(t, err)
		got, _ := m.Next(s)
		require.Equalf(t, next.Signature(), got, "signature %d", s)
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	ctx := context.Background()
	first, err := EnumerateAll(ctx, majorityConfig(), WithWorkers(1))
	require.NoError(t, err)
	second, err := EnumerateAll(ctx, majorityConfig(), WithWorkers(8), WithBatchSize(3))
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Transitions(), second.Transitions())
}

func TestEnumeratePairScenario(t *testing.T) {
	m, err := EnumerateAll(context.Background(), pairConfig(NoMatchKeep))
	require.NoError(t, err)
	assert.Equal(t, map[Signature]Signature{0: 3, 1: 1, 2: 2, 3: 3}, m.ToMap())

	_, err = EnumerateAll(context.Background(), pairConfig(NoMatchFail))
	require.ErrorIs(t, err, ErrNoMatchingRule)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, Signature(1), stepErr.Signature)
}

func TestEnumerateDefaultRulesMapToZero(t *testing.T) {
	m, err := EnumerateAll(context.Background(), Config{Width: 1, Height: 1, States: 3, Diagonal: true})
	require.NoError(t, err)
	assert.Equal(t, map[Signature]Signature{0: 0, 1: 0, 2: 0}, m.ToMap())
}

func TestEnumerateCeiling(t *testing.T) {
	_, err := EnumerateAll(context.Background(), majorityConfig(), WithCeiling(728))
	require.ErrorIs(t, err, ErrDomainTooLarge)

	m, err := EnumerateAll(context.Background(), majorityConfig(), WithCeiling(729))
	require.NoError(t, err)
	assert.Equal(t, uint64(729), m.Len())
}

func TestEnumerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EnumerateAll(ctx, majorityConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestEnumerateProgressAndLogging(t *testing.T) {
	var last atomic.Uint64
	var calls atomic.Int32
	m, err := EnumerateAll(context.Background(), majorityConfig(),
		WithLogger(zaptest.NewLogger(t)),
		WithBatchSize(100),
		WithProgress(func(done, total uint64) {
			calls.Add(1)
			assert.Equal(t, uint64(729), total)
			for {
				prev := last.Load()
				if done <= prev || last.CompareAndSwap(prev, done) {
					break
				}
			}
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), last.Load())
	assert.Equal(t, int32(8), calls.Load())
}

func TestNewMapValidates(t *testing.T) {
	shape := Shape{Width: 2, Height: 1}
	m, err := NewMap(shape, 2, []Signature{3, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, shape, m.Shape())
	assert.Equal(t, 2, m.States())

	_, err = NewMap(shape, 2, []Signature{3, 1, 2})
	require.ErrorIs(t, err, ErrSignatureOutOfRange)
	_, err = NewMap(shape, 2, []Signature{3, 1, 2, 4})
	require.ErrorIs(t, err, ErrSignatureOutOfRange)
}
