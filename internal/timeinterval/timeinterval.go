// Package timeinterval implements a direct [start, end] inclusive interval
// over uint64 time units, independent of the segment-prefix encoding used
// by the F/X/Y/T axes.
package timeinterval

import (
	"encoding/binary"
	"fmt"

	apperrors "github.com/arx-os/s4d/pkg/errors"
)

// TimeInterval is an inclusive [Start, End] range with Start <= End.
type TimeInterval struct {
	Start, End uint64
}

// New validates and constructs a TimeInterval.
func New(start, end uint64) (TimeInterval, error) {
	if start > end {
		return TimeInterval{}, apperrors.New(apperrors.CodeInvariantViolation, "interval start must not exceed end")
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Relation classifies how one interval relates to another.
type Relation int

const (
	Equal Relation = iota
	Ancestor
	Descendant
	Overlap
	Unrelated
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "Equal"
	case Ancestor:
		return "Ancestor"
	case Descendant:
		return "Descendant"
	case Overlap:
		return "Overlap"
	case Unrelated:
		return "Unrelated"
	default:
		return "Unknown"
	}
}

// Contains reports whether t fully encloses other.
func (t TimeInterval) Contains(other TimeInterval) bool {
	return t.Start <= other.Start && other.End <= t.End
}

// Overlaps reports whether t and other share any point, reflexively (t
// overlaps itself).
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	return t.Start <= other.End && other.Start <= t.End
}

// Relation classifies t against other.
func (t TimeInterval) Relation(other TimeInterval) Relation {
	if t == other {
		return Equal
	}
	if t.Contains(other) {
		return Ancestor
	}
	if other.Contains(t) {
		return Descendant
	}
	if t.Overlaps(other) {
		return Overlap
	}
	return Unrelated
}

// Intersection returns the overlapping sub-interval, or ok=false if t and
// other are disjoint.
func (t TimeInterval) Intersection(other TimeInterval) (TimeInterval, bool) {
	if !t.Overlaps(other) {
		return TimeInterval{}, false
	}
	start := t.Start
	if other.Start > start {
		start = other.Start
	}
	end := t.End
	if other.End < end {
		end = other.End
	}
	return TimeInterval{Start: start, End: end}, true
}

// Subtract computes t \ other as 0, 1, or 2 pieces,
// handling the start==0 and end==math.MaxUint64 edges so no underflow or
// overflow occurs when shrinking a boundary.
func (t TimeInterval) Subtract(other TimeInterval) []TimeInterval {
	inter, ok := t.Intersection(other)
	if !ok {
		return []TimeInterval{t}
	}
	var out []TimeInterval
	if inter.Start > t.Start {
		out = append(out, TimeInterval{Start: t.Start, End: inter.Start - 1})
	}
	if inter.End < t.End {
		out = append(out, TimeInterval{Start: inter.End + 1, End: t.End})
	}
	return out
}

// Union merges t and other into one interval if they overlap or abut
// (within 1 unit of each other), else returns both, ascending.
func (t TimeInterval) Union(other TimeInterval) []TimeInterval {
	a, b := t, other
	if a.Start > b.Start {
		a, b = b, a
	}
	if a.Overlaps(b) || abuts(a, b) {
		start := a.Start
		end := a.End
		if b.End > end {
			end = b.End
		}
		return []TimeInterval{{Start: start, End: end}}
	}
	return []TimeInterval{a, b}
}

func abuts(a, b TimeInterval) bool {
	return a.End != ^uint64(0) && a.End+1 == b.Start
}

// ToSegment encodes the interval as a 16-byte big-endian (start, end) pair,
// for bitset indexing in a T dimension keyed by interval rather than
// segment prefix.
func (t TimeInterval) ToSegment() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], t.Start)
	binary.BigEndian.PutUint64(b[8:16], t.End)
	return b
}

// FromSegment decodes the 16-byte form produced by ToSegment. It returns an
// error for input shorter than 16 bytes and, through New, when the decoded
// start exceeds the decoded end; trailing bytes are ignored.
func FromSegment(b []byte) (TimeInterval, error) {
	if len(b) < 16 {
		return TimeInterval{}, apperrors.Wrap(apperrors.CodeInvariantViolation, fmt.Sprintf("time segment must be at least 16 bytes, got %d", len(b)), apperrors.ErrMalformed)
	}
	start := binary.BigEndian.Uint64(b[0:8])
	end := binary.BigEndian.Uint64(b[8:16])
	return New(start, end)
}

func (t TimeInterval) String() string {
	return fmt.Sprintf("[%d,%d]", t.Start, t.End)
}
