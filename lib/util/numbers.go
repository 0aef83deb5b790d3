package util

import (
	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp limits val to the closed range [lo, hi]
func Clamp[T constraints.Ordered](val, lo, hi T) T {
	return Max(lo, Min(val, hi))
}
