package storage

import (
	"context"
	"time"

	"ca-map/internal/automaton"

	"github.com/google/uuid"
)

// Store persists enumerated automaton maps.
type Store interface {
	Init(ctx context.Context) error
	SaveMap(ctx context.Context, record Record) error
	GetMap(ctx context.Context, id string) (Record, bool, error)
	ListMaps(ctx context.Context) ([]Summary, error)
	DeleteMap(ctx context.Context, id string) error
}

// Record is a saved automaton map together with the rules that produced it.
type Record struct {
	ID            string
	SchemaVersion int
	CreatedAt     time.Time

	Shape   automaton.Shape
	States  int
	Rules   automaton.RuleSet
	Matcher string
	NoMatch string

	Transitions []automaton.Signature
}

// Summary describes a saved map without its transitions.
type Summary struct {
	ID        string
	CreatedAt time.Time
	Shape     automaton.Shape
	States    int
	Domain    uint64
}

// NewRecord wraps m in a Record with a fresh id.
func NewRecord(m *automaton.Map, rules automaton.RuleSet, matcher, noMatch string) Record {
	return Record{
		ID:            uuid.NewString(),
		SchemaVersion: CurrentSchemaVersion,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		Shape:         m.Shape(),
		States:        m.States(),
		Rules:         rules,
		Matcher:       matcher,
		NoMatch:       noMatch,
		Transitions:   m.Transitions(),
	}
}

// Map rebuilds the automaton map, validating every transition.
func (r Record) Map() (*automaton.Map, error) {
	return automaton.NewMap(r.Shape, r.States, r.Transitions)
}

// Summary returns the listing entry for r.
func (r Record) Summary() Summary {
	return Summary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Shape:     r.Shape,
		States:    r.States,
		Domain:    uint64(len(r.Transitions)),
	}
}
