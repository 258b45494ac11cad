package cmd

import (
	"strconv"
	"strings"
)

// parseIntPair parses "a:b" (or a bare "a", meaning a:a) into a signed pair.
func parseIntPair(s string) (a, b int64, err error) {
	lo, hi, found := strings.Cut(s, ":")
	a, err = strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return a, a, nil
	}
	b, err = strconv.ParseInt(hi, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseUintPair parses "a:b" (or a bare "a") into an unsigned pair.
func parseUintPair(s string) (a, b uint64, err error) {
	lo, hi, found := strings.Cut(s, ":")
	a, err = strconv.ParseUint(lo, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return a, a, nil
	}
	b, err = strconv.ParseUint(hi, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
