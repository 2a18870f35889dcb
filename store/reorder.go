package store

import (
	"fmt"
	"slices"

	"github.com/arloliu/meshattr/errs"
)

// compressValues applies an old2new mapping in place and returns the
// shrunk slice. The mapping is validated before any element moves.
func compressValues[T any](values []T, old2new []int) []T {
	if len(old2new) != len(values) {
		panic(fmt.Errorf("%w: mapping has %d entries for %d elements", errs.ErrInvalidMapping, len(old2new), len(values)))
	}

	survivors := 0
	for i, ni := range old2new {
		if ni == Removed {
			continue
		}
		if ni < 0 || ni > i {
			panic(fmt.Errorf("%w: element %d mapped to %d", errs.ErrInvalidMapping, i, ni))
		}
		survivors++
	}
	for i, ni := range old2new {
		if ni >= survivors {
			panic(fmt.Errorf("%w: element %d mapped to %d beyond %d survivors", errs.ErrInvalidMapping, i, ni, survivors))
		}
	}

	// old2new[i] <= i, so every destination has already been read.
	for i, ni := range old2new {
		if ni != Removed && ni != i {
			values[ni] = values[i]
		}
	}

	return slices.Clip(values[:survivors])
}

// visited flips a permutation entry into the negative range and back.
func visited(v int) int {
	return -v - 1
}

// permuteValues applies perm in place so that values[i] becomes the old
// values[perm[i]]. perm is used to mark visited positions and is restored
// before returning, including when the permutation is rejected.
func permuteValues[T any](values []T, perm []int) {
	n := len(values)
	if len(perm) != n {
		panic(fmt.Errorf("%w: permutation has %d entries for %d elements", errs.ErrInvalidPermutation, len(perm), n))
	}
	for i, p := range perm {
		if p < 0 || p >= n {
			panic(fmt.Errorf("%w: entry %d is %d", errs.ErrInvalidPermutation, i, p))
		}
	}

	for k := range n {
		if perm[k] < 0 {
			continue
		}

		tmp := values[k]
		j := k
		for {
			nj := perm[j]
			perm[j] = visited(nj)
			if nj == k {
				values[j] = tmp
				break
			}
			if perm[nj] < 0 {
				restorePermutation(perm)
				panic(fmt.Errorf("%w: index %d appears twice", errs.ErrInvalidPermutation, nj))
			}
			values[j] = values[nj]
			j = nj
		}
	}

	restorePermutation(perm)
}

func restorePermutation(perm []int) {
	for i, p := range perm {
		if p < 0 {
			perm[i] = visited(p)
		}
	}
}

func checkIndex(i, size int) {
	if i < 0 || i >= size {
		panic(fmt.Errorf("%w: index %d, size %d", errs.ErrIndexOutOfRange, i, size))
	}
}
