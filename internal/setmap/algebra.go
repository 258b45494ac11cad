package setmap

import (
	"github.com/arx-os/s4d/internal/flexid"
	"github.com/arx-os/s4d/internal/segment"
)

// union builds a fresh engine holding every normalized region of a and b
//. Value collisions on overlap favor b, mirroring the
// later-write-wins convention of Insert being called with b's entries last.
func union[V any](a, b *engine[V], equal func(x, y V) bool) (*engine[V], error) {
	out := newEngine[V](equal)
	for _, entry := range a.snapshot() {
		if err := out.Insert(entry.Flex, entry.Value); err != nil {
			return nil, err
		}
	}
	for _, entry := range b.snapshot() {
		if err := out.Insert(entry.Flex, entry.Value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// intersection builds a fresh engine holding the overlap of a and b with a's
// values, walking whichever side holds fewer entries against the other's Get.
func intersection[V any](a, b *engine[V], equal func(x, y V) bool) (*engine[V], error) {
	out := newEngine[V](equal)
	small, big := a, b
	if len(big.snapshot()) < len(small.snapshot()) {
		small, big = big, small
	}
	for _, entry := range small.snapshot() {
		scratch := newEngine[V](equal)
		if err := big.Get(entry.Flex, scratch); err != nil {
			return nil, err
		}
		for _, hit := range scratch.snapshot() {
			v := hit.Value
			if small == a {
				v = entry.Value
			}
			if err := out.Insert(hit.Flex, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// difference builds a fresh engine holding a minus b:
// start from a's contents, then remove every region of b.
func difference[V any](a, b *engine[V], equal func(x, y V) bool) (*engine[V], error) {
	out := newEngine[V](equal)
	for _, entry := range a.snapshot() {
		if err := out.Insert(entry.Flex, entry.Value); err != nil {
			return nil, err
		}
	}
	discard := newEngine[V](equal)
	for _, entry := range b.snapshot() {
		if err := out.Remove(entry.Flex, discard); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// universe is the pair of FlexIds covering the entire 4D space at its
// coarsest zoom on every axis, used as the base for Complement. F has two
// z=0 cells (f=0 and f=-1, by sign), so two FlexIds are needed.
func universe() []flexid.FlexId {
	root, _ := segment.EncodeXY(0, 0)
	negF, _ := segment.EncodeF(0, -1)
	return []flexid.FlexId{flexid.New(root, root, root, root), flexid.New(negF, root, root, root)}
}

// complement builds universe() minus every region of e, carrying value zero
// through the uncovered region.
func complement[V any](e *engine[V], equal func(x, y V) bool) (*engine[V], error) {
	var zero V
	base := newEngine[V](equal)
	for _, u := range universe() {
		if err := base.Insert(u, zero); err != nil {
			return nil, err
		}
	}
	return difference(base, e, equal)
}
