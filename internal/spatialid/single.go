// Package spatialid implements the SingleId and RangeId value types: the
// validated, coordinate-free surface callers construct before decomposing
// into FlexIds for the set engine.
package spatialid

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/arx-os/s4d/pkg/errors"
	"github.com/arx-os/s4d/internal/flexid"
	"github.com/arx-os/s4d/internal/segment"
)

// SingleId names exactly one atomic 4D cell at level Z; it has no time
// axis. Totally ordered lexicographically for container use; the order
// has no geometric meaning.
type SingleId struct {
	Z uint8
	F int32
	X uint32
	Y uint32
}

// NewSingleId validates and constructs a SingleId.
func NewSingleId(z uint8, f int32, x, y uint32) (SingleId, error) {
	if int(z) > segment.MaxZoom {
		return SingleId{}, apperrors.ZOutOfRange(int(z))
	}
	if int64(f) < segment.FMin(int(z)) || int64(f) > segment.FMax(int(z)) {
		return SingleId{}, apperrors.FOutOfRange(int(z), int64(f))
	}
	if uint64(x) > segment.XYMax(int(z)) {
		return SingleId{}, apperrors.XOutOfRange(int(z), uint64(x))
	}
	if uint64(y) > segment.XYMax(int(z)) {
		return SingleId{}, apperrors.YOutOfRange(int(z), uint64(y))
	}
	return SingleId{Z: z, F: f, X: x, Y: y}, nil
}

// String renders "{z}/{f}/{x}/{y}".
func (s SingleId) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", s.Z, s.F, s.X, s.Y)
}

// ParseSingleId parses the "{z}/{f}/{x}/{y}" text form.
func ParseSingleId(text string) (SingleId, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 4 {
		return SingleId{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "single id must have 4 components", apperrors.ErrMalformed)
	}
	z, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return SingleId{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "bad zoom", err)
	}
	f, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return SingleId{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "bad f", err)
	}
	x, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return SingleId{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "bad x", err)
	}
	y, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return SingleId{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "bad y", err)
	}
	return NewSingleId(uint8(z), int32(f), uint32(x), uint32(y))
}

// Less gives SingleId a total order for container use (z, then f, x, y).
func (s SingleId) Less(other SingleId) bool {
	if s.Z != other.Z {
		return s.Z < other.Z
	}
	if s.F != other.F {
		return s.F < other.F
	}
	if s.X != other.X {
		return s.X < other.X
	}
	return s.Y < other.Y
}

// Parent returns the ancestor diff levels up, or an error if that would
// go below zoom 0.
func (s SingleId) Parent(diff int) (SingleId, error) {
	if diff < 0 {
		return SingleId{}, apperrors.New(apperrors.CodeInvariantViolation, "diff must be non-negative")
	}
	if int(s.Z)-diff < 0 {
		return SingleId{}, apperrors.ZOutOfRange(int(s.Z) - diff)
	}
	fSeg, err := segment.EncodeF(int(s.Z), int64(s.F))
	if err != nil {
		return SingleId{}, err
	}
	xSeg, err := segment.EncodeXY(int(s.Z), uint64(s.X))
	if err != nil {
		return SingleId{}, err
	}
	ySeg, err := segment.EncodeXY(int(s.Z), uint64(s.Y))
	if err != nil {
		return SingleId{}, err
	}
	for i := 0; i < diff; i++ {
		var ok bool
		fSeg, ok = mustParent(fSeg)
		if !ok {
			return SingleId{}, apperrors.New(apperrors.CodeInvariantViolation, "ran out of zoom levels")
		}
		xSeg, _ = mustParent(xSeg)
		ySeg, _ = mustParent(ySeg)
	}
	_, f := segment.DecodeF(fSeg)
	z, x := segment.DecodeXY(xSeg)
	_, y := segment.DecodeXY(ySeg)
	return SingleId{Z: uint8(z), F: int32(f), X: uint32(x), Y: uint32(y)}, nil
}

func mustParent(s segment.Segment) (segment.Segment, bool) {
	return s.Parent()
}

// Children produces the 2^(3*diff) descendants diff levels below s.
func (s SingleId) Children(diff int) ([]SingleId, error) {
	if diff < 0 {
		return nil, apperrors.New(apperrors.CodeInvariantViolation, "diff must be non-negative")
	}
	if int(s.Z)+diff > segment.MaxZoom {
		return nil, apperrors.ZOutOfRange(int(s.Z) + diff)
	}
	fSeg, err := segment.EncodeF(int(s.Z), int64(s.F))
	if err != nil {
		return nil, err
	}
	xSeg, err := segment.EncodeXY(int(s.Z), uint64(s.X))
	if err != nil {
		return nil, err
	}
	ySeg, err := segment.EncodeXY(int(s.Z), uint64(s.Y))
	if err != nil {
		return nil, err
	}
	fChildren, err := fSeg.ChildrenAt(diff)
	if err != nil {
		return nil, err
	}
	xChildren, err := xSeg.ChildrenAt(diff)
	if err != nil {
		return nil, err
	}
	yChildren, err := ySeg.ChildrenAt(diff)
	if err != nil {
		return nil, err
	}
	out := make([]SingleId, 0, len(fChildren)*len(xChildren)*len(yChildren))
	for _, fc := range fChildren {
		_, fv := segment.DecodeF(fc)
		for _, xc := range xChildren {
			z, xv := segment.DecodeXY(xc)
			for _, yc := range yChildren {
				_, yv := segment.DecodeXY(yc)
				out = append(out, SingleId{Z: uint8(z), F: int32(fv), X: uint32(xv), Y: uint32(yv)})
			}
		}
	}
	return out, nil
}

// FlexIds decomposes s into the single-element FlexId slice naming it, so
// SingleId satisfies the same decomposition surface as RangeId.
func (s SingleId) FlexIds() ([]flexid.FlexId, error) {
	f, err := s.FlexId()
	if err != nil {
		return nil, err
	}
	return []flexid.FlexId{f}, nil
}

// FlexId decomposes s into the single FlexId naming it, with T set to the
// root segment (z=0) since SingleId carries no time axis.
func (s SingleId) FlexId() (flexid.FlexId, error) {
	fSeg, err := segment.EncodeF(int(s.Z), int64(s.F))
	if err != nil {
		return flexid.FlexId{}, err
	}
	xSeg, err := segment.EncodeXY(int(s.Z), uint64(s.X))
	if err != nil {
		return flexid.FlexId{}, err
	}
	ySeg, err := segment.EncodeXY(int(s.Z), uint64(s.Y))
	if err != nil {
		return flexid.FlexId{}, err
	}
	tSeg, err := segment.EncodeXY(0, 0)
	if err != nil {
		return flexid.FlexId{}, err
	}
	return flexid.New(fSeg, xSeg, ySeg, tSeg), nil
}
