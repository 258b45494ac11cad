package spatialid

import (
	"fmt"

	"github.com/arx-os/s4d/internal/flexid"
	"github.com/arx-os/s4d/internal/segment"
	apperrors "github.com/arx-os/s4d/pkg/errors"
)

// RangeId names an axis-aligned box at zoom Z. F and Y are automatically
// kept ascending; X is ordered-meaningful: X[0] > X[1] denotes a
// wraparound interval crossing the date line. T is absolute time in units
// of the finest zoom level, sharing the segment domain with X/Y: T uses
// the same segment-prefix encoding, so T values must fit in
// [0, XYMax(MaxZoom)].
type RangeId struct {
	Z uint8
	F [2]int64
	X [2]uint64
	Y [2]uint64
	T [2]uint64
}

// NewRangeId constructs a RangeId with T defaulted to [0, 0].
func NewRangeId(z uint8, f [2]int64, x, y [2]uint64) (RangeId, error) {
	return NewRangeIdT(z, f, x, y, [2]uint64{0, 0})
}

// NewRangeIdT constructs a RangeId with an explicit T interval.
func NewRangeIdT(z uint8, f [2]int64, x, y, t [2]uint64) (RangeId, error) {
	r := RangeId{Z: z}
	if err := r.validateZ(); err != nil {
		return RangeId{}, err
	}
	if err := r.SetF(f[0], f[1]); err != nil {
		return RangeId{}, err
	}
	if err := r.setXraw(x[0], x[1]); err != nil {
		return RangeId{}, err
	}
	if err := r.SetY(y[0], y[1]); err != nil {
		return RangeId{}, err
	}
	if err := r.SetT(t[0], t[1]); err != nil {
		return RangeId{}, err
	}
	return r, nil
}

func (r *RangeId) validateZ() error {
	if int(r.Z) > segment.MaxZoom {
		return apperrors.ZOutOfRange(int(r.Z))
	}
	return nil
}

// SetF sets the F interval, sorting ascending.
func (r *RangeId) SetF(a, b int64) error {
	if a > b {
		a, b = b, a
	}
	lo, hi := segment.FMin(int(r.Z)), segment.FMax(int(r.Z))
	if a < lo || a > hi {
		return apperrors.FOutOfRange(int(r.Z), a)
	}
	if b < lo || b > hi {
		return apperrors.FOutOfRange(int(r.Z), b)
	}
	r.F = [2]int64{a, b}
	return nil
}

// SetY sets the Y interval, sorting ascending.
func (r *RangeId) SetY(a, b uint64) error {
	if a > b {
		a, b = b, a
	}
	max := segment.XYMax(int(r.Z))
	if a > max {
		return apperrors.YOutOfRange(int(r.Z), a)
	}
	if b > max {
		return apperrors.YOutOfRange(int(r.Z), b)
	}
	r.Y = [2]uint64{a, b}
	return nil
}

// SetX sets the X interval without sorting: a > b denotes wraparound.
func (r *RangeId) SetX(a, b uint64) error {
	return r.setXraw(a, b)
}

func (r *RangeId) setXraw(a, b uint64) error {
	max := segment.XYMax(int(r.Z))
	if a > max {
		return apperrors.XOutOfRange(int(r.Z), a)
	}
	if b > max {
		return apperrors.XOutOfRange(int(r.Z), b)
	}
	r.X = [2]uint64{a, b}
	return nil
}

// SetT sets the T interval, sorting ascending. T values must fit the
// segment domain's magnitude range at MaxZoom.
func (r *RangeId) SetT(a, b uint64) error {
	if a > b {
		a, b = b, a
	}
	max := segment.XYMax(segment.MaxZoom)
	if a > max || b > max {
		return apperrors.TOutOfRange(int64(a), int64(b))
	}
	r.T = [2]uint64{a, b}
	return nil
}

func (r RangeId) isWrapped() bool {
	return r.X[0] > r.X[1]
}

// SingleIds enumerates every constituent SingleId at zoom Z, expanding X
// correctly when the interval wraps the date line. T is not part of
// SingleId and is ignored here.
func (r RangeId) SingleIds() []SingleId {
	var xs []uint64
	if r.isWrapped() {
		max := segment.XYMax(int(r.Z))
		for v := r.X[0]; v <= max; v++ {
			xs = append(xs, v)
		}
		for v := uint64(0); v <= r.X[1]; v++ {
			xs = append(xs, v)
		}
	} else {
		for v := r.X[0]; v <= r.X[1]; v++ {
			xs = append(xs, v)
		}
	}
	var out []SingleId
	for f := r.F[0]; f <= r.F[1]; f++ {
		for _, x := range xs {
			for y := r.Y[0]; y <= r.Y[1]; y++ {
				out = append(out, SingleId{Z: r.Z, F: int32(f), X: uint32(x), Y: uint32(y)})
			}
		}
	}
	return out
}

// FlexIds decomposes r into the Cartesian product of each axis's minimal
// Segment cover: F, X (wraparound yields two covers
// concatenated), Y, T.
func (r RangeId) FlexIds() ([]flexid.FlexId, error) {
	fSegs, err := segment.SplitF(int(r.Z), r.F[0], r.F[1])
	if err != nil {
		return nil, err
	}
	xSegs, err := segment.SplitXYWrapped(int(r.Z), r.X[0], r.X[1])
	if err != nil {
		return nil, err
	}
	ySegs, err := segment.SplitXY(int(r.Z), r.Y[0], r.Y[1])
	if err != nil {
		return nil, err
	}
	tSegs, err := segment.SplitXY(segment.MaxZoom, r.T[0], r.T[1])
	if err != nil {
		return nil, err
	}
	out := make([]flexid.FlexId, 0, len(fSegs)*len(xSegs)*len(ySegs)*len(tSegs))
	for _, fs := range fSegs {
		for _, xs := range xSegs {
			for _, ys := range ySegs {
				for _, ts := range tSegs {
					out = append(out, flexid.New(fs, xs, ys, ts))
				}
			}
		}
	}
	return out, nil
}

// String renders "{z}/{f}/{x}/{y}" with each dimension shown as "a:b" when
// a != b, else just "a". T is not part of the text form.
func (r RangeId) String() string {
	return fmt.Sprintf("%d/%s/%s/%s", r.Z, pairString(r.F[0], r.F[1]), pairStringU(r.X[0], r.X[1]), pairStringU(r.Y[0], r.Y[1]))
}

func pairString(a, b int64) string {
	if a == b {
		return fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("%d:%d", a, b)
}

func pairStringU(a, b uint64) string {
	if a == b {
		return fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("%d:%d", a, b)
}
