package automaton

import (
	"fmt"
	"strconv"
	"strings"
)

// Histogram counts, for each state, how many neighbours of a cell hold it.
type Histogram []int

func (h Histogram) String() string {
	parts := make([]string, len(h))
	for i, v := range h {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Condition requires exactly Appearances neighbours in State.
type Condition struct {
	Appearances int
	State       State
}

// Satisfied reports whether h holds exactly c.Appearances of c.State.
func (c Condition) Satisfied(h Histogram) bool {
	return int(c.State) < len(h) && h[c.State] == c.Appearances
}

// Rule moves a cell to Target when every condition holds. A rule without
// conditions matches any histogram.
type Rule struct {
	Target     State
	Conditions []Condition
}

// Matches reports whether all of r's conditions hold for h.
func (r Rule) Matches(h Histogram) bool {
	for _, c := range r.Conditions {
		if !c.Satisfied(h) {
			return false
		}
	}
	return true
}

// RuleSet is an ordered list of rules; position is priority.
type RuleSet []Rule

// Validate checks that every target and condition names a state below
// states and that no appearance count is negative.
func (rs RuleSet) Validate(states int) error {
	for i, r := range rs {
		if int(r.Target) >= states {
			return invalidRulef("rule %d targets state %d with %d states", i, r.Target, states)
		}
		for j, c := range r.Conditions {
			if int(c.State) >= states {
				return invalidRulef("rule %d condition %d names state %d with %d states", i, j, c.State, states)
			}
			if c.Appearances < 0 {
				return invalidRulef("rule %d condition %d has negative count %d", i, j, c.Appearances)
			}
		}
	}
	return nil
}

// neighborSlots is the largest neighbourhood any topology produces.
const neighborSlots = 8

// DefaultRuleSet is substituted for an empty rule set. It holds one rule per
// target state whose conditions pair every neighbour slot with every state.
// Under exact-count matching none of these rules can be satisfied, so grids
// built on it resolve each cell through NoMatchZero.
func DefaultRuleSet(states int) RuleSet {
	rs := make(RuleSet, 0, states)
	for t := range states {
		conds := make([]Condition, 0, neighborSlots*states)
		for slot := range neighborSlots {
			for s := range states {
				conds = append(conds, Condition{Appearances: slot, State: State(s)})
			}
		}
		rs = append(rs, Rule{Target: State(t), Conditions: conds})
	}
	return rs
}

// Matcher picks the rule that applies to a histogram. It returns the index
// of the chosen rule, or false when none applies.
type Matcher interface {
	Match(rules RuleSet, h Histogram) (int, bool)
}

// FirstMatch selects the earliest matching rule.
type FirstMatch struct{}

func (FirstMatch) Match(rules RuleSet, h Histogram) (int, bool) {
	for i, r := range rules {
		if r.Matches(h) {
			return i, true
		}
	}
	return 0, false
}

// MostSpecific selects the matching rule with the most conditions. Ties go
// to the earlier rule.
type MostSpecific struct{}

func (MostSpecific) Match(rules RuleSet, h Histogram) (int, bool) {
	best, found := 0, false
	for i, r := range rules {
		if !r.Matches(h) {
			continue
		}
		if !found || len(r.Conditions) > len(rules[best].Conditions) {
			best, found = i, true
		}
	}
	return best, found
}

// ParseMatcher resolves a matcher by name: "first" or "specific".
func ParseMatcher(name string) (Matcher, error) {
	switch name {
	case "", "first":
		return FirstMatch{}, nil
	case "specific":
		return MostSpecific{}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", name)
	}
}

// NoMatchPolicy decides the next state of a cell no rule applies to.
type NoMatchPolicy int

const (
	// NoMatchFail reports ErrNoMatchingRule.
	NoMatchFail NoMatchPolicy = iota
	// NoMatchKeep leaves the cell in its current state.
	NoMatchKeep
	// NoMatchZero moves the cell to state 0.
	NoMatchZero
)

func (p NoMatchPolicy) String() string {
	switch p {
	case NoMatchFail:
		return "fail"
	case NoMatchKeep:
		return "keep"
	case NoMatchZero:
		return "zero"
	default:
		return "NoMatchPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParseNoMatchPolicy resolves "fail", "keep" or "zero".
func ParseNoMatchPolicy(name string) (NoMatchPolicy, error) {
	switch name {
	case "", "fail":
		return NoMatchFail, nil
	case "keep":
		return NoMatchKeep, nil
	case "zero":
		return NoMatchZero, nil
	default:
		return 0, fmt.Errorf("unknown no-match policy %q", name)
	}
}

// RuleEngine evaluates a validated rule set against neighbour histograms.
type RuleEngine struct {
	rules    RuleSet
	matcher  Matcher
	noMatch  NoMatchPolicy
	defaults bool
}

// NewRuleEngine validates rules against states. An empty rule set is
// replaced by DefaultRuleSet and always resolves unmatched cells to 0; a nil
// matcher means FirstMatch.
func NewRuleEngine(rules RuleSet, states int, matcher Matcher, noMatch NoMatchPolicy) (*RuleEngine, error) {
	if matcher == nil {
		matcher = FirstMatch{}
	}
	e := &RuleEngine{rules: rules, matcher: matcher, noMatch: noMatch}
	if len(rules) == 0 {
		e.rules = DefaultRuleSet(states)
		e.noMatch = NoMatchZero
		e.defaults = true
	}
	if err := e.rules.Validate(states); err != nil {
		return nil, err
	}
	return e, nil
}

// Rules returns the active rule set.
func (e *RuleEngine) Rules() RuleSet { return e.rules }

// UsesDefaults reports whether the default rule set was substituted.
func (e *RuleEngine) UsesDefaults() bool { return e.defaults }

// NoMatch returns the policy applied to unmatched histograms.
func (e *RuleEngine) NoMatch() NoMatchPolicy { return e.noMatch }

// Apply returns the next state of a cell currently in current whose
// neighbours are summarised by h.
func (e *RuleEngine) Apply(current State, h Histogram) (State, error) {
	if i, ok := e.matcher.Match(e.rules, h); ok {
		return e.rules[i].Target, nil
	}
	switch e.noMatch {
	case NoMatchKeep:
		return current, nil
	case NoMatchZero:
		return 0, nil
	default:
		return 0, ErrNoMatchingRule
	}
}
