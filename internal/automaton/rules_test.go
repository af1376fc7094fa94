package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMatchPriority(t *testing.T) {
	rules := RuleSet{
		{Target: 2, Conditions: []Condition{{Appearances: 1, State: 0}}},
		{Target: 1, Conditions: []Condition{{Appearances: 1, State: 0}, {Appearances: 2, State: 1}}},
	}
	engine, err := NewRuleEngine(rules, 3, nil, NoMatchFail)
	require.NoError(t, err)

	next, err := engine.Apply(0, Histogram{1, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, State(2), next)
}

func TestMostSpecificPrefersMoreConditions(t *testing.T) {
	rules := RuleSet{
		{Target: 2, Conditions: []Condition{{Appearances: 1, State: 0}}},
		{Target: 1, Conditions: []Condition{{Appearances: 1, State: 0}, {Appearances: 2, State: 1}}},
		{Target: 0, Conditions: []Condition{{Appearances: 2, State: 1}, {Appearances: 0, State: 2}}},
	}
	engine, err := NewRuleEngine(rules, 3, MostSpecific{}, NoMatchFail)
	require.NoError(t, err)

	next, err := engine.Apply(0, Histogram{1, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, State(1), next, "tie between rules 1 and 2 goes to the earlier rule")

	next, err = engine.Apply(0, Histogram{1, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, State(2), next)
}

func TestConditionsUseExactCounts(t *testing.T) {
	rule := Rule{Target: 1, Conditions: []Condition{{Appearances: 2, State: 1}}}
	assert.True(t, rule.Matches(Histogram{0, 2}))
	assert.False(t, rule.Matches(Histogram{0, 3}))
	assert.False(t, rule.Matches(Histogram{2, 1}))
	assert.True(t, Rule{Target: 1}.Matches(Histogram{4, 4}), "a rule without conditions always matches")
}

func TestNoMatchPolicies(t *testing.T) {
	rules := RuleSet{{Target: 1, Conditions: []Condition{{Appearances: 4, State: 1}}}}
	h := Histogram{4, 0}

	cases := []struct {
		policy NoMatchPolicy
		want   State
		err    error
	}{
		{NoMatchFail, 0, ErrNoMatchingRule},
		{NoMatchKeep, 1, nil},
		{NoMatchZero, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			engine, err := NewRuleEngine(rules, 2, FirstMatch{}, tc.policy)
			require.NoError(t, err)
			next, err := engine.Apply(1, h)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestDefaultRuleSet(t *testing.T) {
	rs := DefaultRuleSet(3)
	require.Len(t, rs, 3)
	for i, r := range rs {
		assert.Equal(t, State(i), r.Target)
		assert.Len(t, r.Conditions, neighborSlots*3)
	}

	engine, err := NewRuleEngine(nil, 3, nil, NoMatchFail)
	require.NoError(t, err)
	assert.True(t, engine.UsesDefaults())
	assert.Equal(t, NoMatchZero, engine.NoMatch())

	next, err := engine.Apply(2, Histogram{1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, State(0), next)
}

func TestRuleSetValidate(t *testing.T) {
	_, err := NewRuleEngine(RuleSet{{Target: 3}}, 3, nil, NoMatchFail)
	require.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewRuleEngine(RuleSet{{Target: 0, Conditions: []Condition{{Appearances: 1, State: 5}}}}, 3, nil, NoMatchFail)
	require.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewRuleEngine(RuleSet{{Target: 0, Conditions: []Condition{{Appearances: -1, State: 0}}}}, 3, nil, NoMatchFail)
	require.ErrorIs(t, err, ErrInvalidRule)
}

func TestParseMatcherAndPolicy(t *testing.T) {
	m, err := ParseMatcher("")
	require.NoError(t, err)
	assert.IsType(t, FirstMatch{}, m)
	m, err = ParseMatcher("specific")
	require.NoError(t, err)
	assert.IsType(t, MostSpecific{}, m)
	_, err = ParseMatcher("best")
	require.Error(t, err)

	for _, p := range []NoMatchPolicy{NoMatchFail, NoMatchKeep, NoMatchZero} {
		got, err := ParseNoMatchPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err = ParseNoMatchPolicy("identity")
	require.Error(t, err)
}
