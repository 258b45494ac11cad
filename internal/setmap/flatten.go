package setmap

import (
	apperrors "github.com/arx-os/s4d/pkg/errors"
	"github.com/arx-os/s4d/internal/flexid"
	"github.com/arx-os/s4d/internal/segment"
	"github.com/arx-os/s4d/internal/spatialid"
)

// deepestZoom returns the finest zoom used by any F, X, or Y axis across
// every stored entry. T carries no SingleId axis so it is excluded.
func deepestZoom[V any](e *engine[V]) int {
	z := 0
	for _, entry := range e.snapshot() {
		for _, axis := range []int{flexid.F, flexid.X, flexid.Y} {
			if entry.Flex[axis].Zoom() > z {
				z = entry.Flex[axis].Zoom()
			}
		}
	}
	return z
}

// expandToZoom enumerates every SingleId covered by f's F/X/Y axes at zoom
// z, which must be no coarser than any of the three axes' own zoom.
func expandToZoom(f flexid.FlexId, z int) ([]spatialid.SingleId, error) {
	fDiff := z - f[flexid.F].Zoom()
	xDiff := z - f[flexid.X].Zoom()
	yDiff := z - f[flexid.Y].Zoom()
	if fDiff < 0 || xDiff < 0 || yDiff < 0 {
		return nil, apperrors.New(apperrors.CodeInvariantViolation, "flatten zoom coarser than an entry's own zoom")
	}
	fChildren, err := f[flexid.F].ChildrenAt(fDiff)
	if err != nil {
		return nil, err
	}
	xChildren, err := f[flexid.X].ChildrenAt(xDiff)
	if err != nil {
		return nil, err
	}
	yChildren, err := f[flexid.Y].ChildrenAt(yDiff)
	if err != nil {
		return nil, err
	}
	out := make([]spatialid.SingleId, 0, len(fChildren)*len(xChildren)*len(yChildren))
	for _, fc := range fChildren {
		_, fv := segment.DecodeF(fc)
		for _, xc := range xChildren {
			zz, xv := segment.DecodeXY(xc)
			for _, yc := range yChildren {
				_, yv := segment.DecodeXY(yc)
				out = append(out, spatialid.SingleId{Z: uint8(zz), F: int32(fv), X: uint32(xv), Y: uint32(yv)})
			}
		}
	}
	return out, nil
}

// flatten expands every stored region to SingleIds at the deepest zoom
// actually used in the store.
func flatten[V any](e *engine[V]) ([]spatialid.SingleId, error) {
	z := deepestZoom(e)
	var out []spatialid.SingleId
	for _, entry := range e.snapshot() {
		ids, err := expandToZoom(entry.Flex, z)
		if err != nil {
			return nil, err
		}
		out = append(out, ids...)
	}
	return out, nil
}

// flattenValues is flatten but carries each entry's value alongside its
// expanded SingleIds, for Map.
func flattenValues[V any](e *engine[V]) ([]MapEntry[V], error) {
	z := deepestZoom(e)
	var out []MapEntry[V]
	for _, entry := range e.snapshot() {
		ids, err := expandToZoom(entry.Flex, z)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			out = append(out, MapEntry[V]{ID: id, Value: entry.Value})
		}
	}
	return out, nil
}

// flattenDeepValues is flattenValues at deepestZoom(e)+extra.
func flattenDeepValues[V any](e *engine[V], extra int) ([]MapEntry[V], error) {
	z := deepestZoom(e) + extra
	if z > segment.MaxZoom {
		return nil, apperrors.ZOutOfRange(z)
	}
	var out []MapEntry[V]
	for _, entry := range e.snapshot() {
		ids, err := expandToZoom(entry.Flex, z)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			out = append(out, MapEntry[V]{ID: id, Value: entry.Value})
		}
	}
	return out, nil
}

// flattenDeep is flatten but at deepestZoom(e)+extra, letting a caller force
// a uniform zoom finer than the set's own content.
func flattenDeep[V any](e *engine[V], extra int) ([]spatialid.SingleId, error) {
	z := deepestZoom(e) + extra
	if z > segment.MaxZoom {
		return nil, apperrors.ZOutOfRange(z)
	}
	var out []spatialid.SingleId
	for _, entry := range e.snapshot() {
		ids, err := expandToZoom(entry.Flex, z)
		if err != nil {
			return nil, err
		}
		out = append(out, ids...)
	}
	return out, nil
}
