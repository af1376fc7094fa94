package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ca-map/internal/automaton"
)

const (
	CurrentSchemaVersion = 1
)

var (
	ErrVersionMismatch = errors.New("record version mismatch")
	ErrCorruptPayload  = errors.New("corrupt transition payload")
)

// header is the JSON part of a record; transitions are stored separately as
// a packed uvarint sequence.
type header struct {
	ID            string            `json:"id"`
	SchemaVersion int               `json:"schema_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Shape         automaton.Shape   `json:"shape"`
	States        int               `json:"states"`
	Rules         automaton.RuleSet `json:"rules,omitempty"`
	Matcher       string            `json:"matcher,omitempty"`
	NoMatch       string            `json:"no_match,omitempty"`
}

func EncodeRecord(r Record) (meta, transitions []byte, err error) {
	meta, err = json.Marshal(header{
		ID:            r.ID,
		SchemaVersion: r.SchemaVersion,
		CreatedAt:     r.CreatedAt,
		Shape:         r.Shape,
		States:        r.States,
		Rules:         r.Rules,
		Matcher:       r.Matcher,
		NoMatch:       r.NoMatch,
	})
	if err != nil {
		return nil, nil, err
	}
	return meta, EncodeTransitions(r.Transitions), nil
}

func DecodeRecord(meta, transitions []byte) (Record, error) {
	var h header
	if err := json.Unmarshal(meta, &h); err != nil {
		return Record{}, err
	}
	if h.SchemaVersion != CurrentSchemaVersion {
		return Record{}, fmt.Errorf("%w: schema %d", ErrVersionMismatch, h.SchemaVersion)
	}
	next, err := DecodeTransitions(transitions)
	if err != nil {
		return Record{}, fmt.Errorf("decode record %s: %w", h.ID, err)
	}
	return Record{
		ID:            h.ID,
		SchemaVersion: h.SchemaVersion,
		CreatedAt:     h.CreatedAt,
		Shape:         h.Shape,
		States:        h.States,
		Rules:         h.Rules,
		Matcher:       h.Matcher,
		NoMatch:       h.NoMatch,
		Transitions:   next,
	}, nil
}

func EncodeTransitions(next []automaton.Signature) []byte {
	buf := make([]byte, 0, len(next)*2)
	for _, s := range next {
		buf = binary.AppendUvarint(buf, uint64(s))
	}
	return buf
}

func DecodeTransitions(data []byte) ([]automaton.Signature, error) {
	var next []automaton.Signature
	for len(data) > 0 {
		v, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, ErrCorruptPayload
		}
		next = append(next, automaton.Signature(v))
		data = data[n:]
	}
	return next, nil
}
