// Package config reads automaton run descriptions from YAML.
//
// A file names the grid shape, the state count, the topology flags and an
// ordered rule list:
//
//	width: 2
//	height: 1
//	states: 2
//	wrap: false
//	diagonal: false
//	matcher: first     # or "specific"
//	no_match: fail     # or "keep", "zero"
//	rules:
//	  - target: 1
//	    when:
//	      - {count: 1, state: 0}
//
// An empty or missing rules list selects the default rule set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"ca-map/internal/automaton"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML document.
type File struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	States        int        `yaml:"states"`
	Wrap          bool       `yaml:"wrap"`
	Diagonal      bool       `yaml:"diagonal"`
	ClipDiagonals bool       `yaml:"clip_diagonals,omitempty"`
	Matcher       string     `yaml:"matcher,omitempty"`
	NoMatch       string     `yaml:"no_match,omitempty"`
	Rules         []RuleSpec `yaml:"rules,omitempty"`
}

// RuleSpec is one rule: the target state and the exact neighbour counts
// that trigger it.
type RuleSpec struct {
	Target int             `yaml:"target"`
	When   []ConditionSpec `yaml:"when,omitempty"`
}

// ConditionSpec requires exactly Count neighbours in State.
type ConditionSpec struct {
	Count int `yaml:"count"`
	State int `yaml:"state"`
}

// Default returns a single-cell, three-state, non-wrapping grid with
// diagonal neighbours and the default rule set.
func Default() File {
	return File{Width: 1, Height: 1, States: 3, Diagonal: true}
}

// Load reads and parses the YAML file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data over Default. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	return f, nil
}

// Marshal encodes f as YAML.
func Marshal(f File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Automaton converts f into an automaton configuration.
func (f File) Automaton() (automaton.Config, error) {
	matcher, err := automaton.ParseMatcher(f.Matcher)
	if err != nil {
		return automaton.Config{}, err
	}
	noMatch, err := automaton.ParseNoMatchPolicy(f.NoMatch)
	if err != nil {
		return automaton.Config{}, err
	}
	rules, err := f.RuleSet()
	if err != nil {
		return automaton.Config{}, err
	}
	return automaton.Config{
		Width:         f.Width,
		Height:        f.Height,
		States:        f.States,
		Wrap:          f.Wrap,
		Diagonal:      f.Diagonal,
		ClipDiagonals: f.ClipDiagonals,
		Rules:         rules,
		Matcher:       matcher,
		NoMatch:       noMatch,
	}, nil
}

// RuleSet converts the rule specs, rejecting values a State cannot hold.
func (f File) RuleSet() (automaton.RuleSet, error) {
	rules := make(automaton.RuleSet, 0, len(f.Rules))
	for i, r := range f.Rules {
		target, err := toState(r.Target)
		if err != nil {
			return nil, fmt.Errorf("rule %d target: %w", i, err)
		}
		conds := make([]automaton.Condition, 0, len(r.When))
		for j, c := range r.When {
			s, err := toState(c.State)
			if err != nil {
				return nil, fmt.Errorf("rule %d condition %d: %w", i, j, err)
			}
			conds = append(conds, automaton.Condition{Appearances: c.Count, State: s})
		}
		rules = append(rules, automaton.Rule{Target: target, Conditions: conds})
	}
	return rules, nil
}

// FromRuleSet converts rules back into specs.
func FromRuleSet(rules automaton.RuleSet) []RuleSpec {
	out := make([]RuleSpec, 0, len(rules))
	for _, r := range rules {
		spec := RuleSpec{Target: int(r.Target)}
		for _, c := range r.Conditions {
			spec.When = append(spec.When, ConditionSpec{Count: c.Appearances, State: int(c.State)})
		}
		out = append(out, spec)
	}
	return out
}

func toState(v int) (automaton.State, error) {
	if v < 0 || v >= automaton.MaxStates {
		return 0, fmt.Errorf("%w: state %d", automaton.ErrInvalidRule, v)
	}
	return automaton.State(v), nil
}
