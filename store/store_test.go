package store

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/logger"
)

func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	fn()
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })

	return logs
}

func TestVectorStore_Resize(t *testing.T) {
	s := NewVector[int32]()
	require.Equal(t, 0, s.Size())
	require.Equal(t, 4, s.ElementSize())

	s.Resize(3)
	require.Equal(t, 3, s.Size())
	require.Equal(t, []int32{0, 0, 0}, s.Values())

	s.Values()[2] = 9
	s.Resize(2)
	s.Resize(4)
	require.Equal(t, []int32{0, 0, 0, 0}, s.Values(), "regrown elements must not resurrect old values")

	s.Clear()
	require.Equal(t, 0, s.Size())
}

func TestVectorStore_Bytes(t *testing.T) {
	s := NewVectorFrom([]uint16{0x0102, 0x0304})
	require.Len(t, s.Bytes(), 4)

	empty := NewVector[float64]()
	require.Empty(t, empty.Bytes())

	flags := NewVectorFrom([]uint8{1, 0, 1})
	require.Equal(t, []byte{1, 0, 1}, flags.Bytes())
}

func TestVectorStore_Compress(t *testing.T) {
	t.Run("moves survivors to their new index", func(t *testing.T) {
		s := NewVectorFrom([]string{"a", "b", "c", "d", "e"})
		old2new := []int{0, Removed, 1, Removed, 2}
		s.Compress(old2new)
		require.Equal(t, []string{"a", "c", "e"}, s.Values())
		require.Equal(t, 3, cap(s.Values()))
	})

	t.Run("keeps everything with identity mapping", func(t *testing.T) {
		s := NewVectorFrom([]int{1, 2, 3})
		s.Compress([]int{0, 1, 2})
		require.Equal(t, []int{1, 2, 3}, s.Values())
	})

	t.Run("removes everything", func(t *testing.T) {
		s := NewVectorFrom([]int{1, 2})
		s.Compress([]int{Removed, Removed})
		require.Equal(t, 0, s.Size())
	})

	t.Run("rejects forward moves", func(t *testing.T) {
		s := NewVectorFrom([]int{1, 2, 3})
		requirePanicsWith(t, errs.ErrInvalidMapping, func() { s.Compress([]int{1, 0, 2}) })
		require.Equal(t, []int{1, 2, 3}, s.Values(), "rejected mapping must not move anything")
	})

	t.Run("rejects length mismatch", func(t *testing.T) {
		s := NewVectorFrom([]int{1, 2, 3})
		requirePanicsWith(t, errs.ErrInvalidMapping, func() { s.Compress([]int{0, 1}) })
	})

	t.Run("rejects destinations beyond survivors", func(t *testing.T) {
		s := NewVectorFrom([]int{1, 2, 3})
		requirePanicsWith(t, errs.ErrInvalidMapping, func() { s.Compress([]int{0, Removed, 2}) })
	})
}

func TestVectorStore_CompressProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for iter := range 50 {
		n := rng.IntN(64)
		values := make([]int, n)
		for i := range values {
			values[i] = rng.Int()
		}

		old2new := make([]int, n)
		next := 0
		for i := range old2new {
			if rng.IntN(3) == 0 {
				old2new[i] = Removed
				continue
			}
			old2new[i] = next
			next++
		}

		s := NewVectorFrom(values)
		s.Compress(old2new)
		require.Equal(t, next, s.Size(), "iteration %d", iter)
		for i, ni := range old2new {
			if ni != Removed {
				require.Equal(t, values[i], s.Values()[ni], "iteration %d element %d", iter, i)
			}
		}
	}
}

func TestVectorStore_ApplyPermutation(t *testing.T) {
	t.Run("position i takes value at perm[i]", func(t *testing.T) {
		s := NewVectorFrom([]string{"a", "b", "c", "d"})
		perm := []int{2, 0, 3, 1}
		s.ApplyPermutation(perm)
		require.Equal(t, []string{"c", "a", "d", "b"}, s.Values())
		require.Equal(t, []int{2, 0, 3, 1}, perm, "permutation must be restored")
	})

	t.Run("identity", func(t *testing.T) {
		s := NewVectorFrom([]int{5, 6, 7})
		s.ApplyPermutation([]int{0, 1, 2})
		require.Equal(t, []int{5, 6, 7}, s.Values())
	})

	t.Run("rejects out of range entries", func(t *testing.T) {
		s := NewVectorFrom([]int{5, 6, 7})
		perm := []int{0, 3, 1}
		requirePanicsWith(t, errs.ErrInvalidPermutation, func() { s.ApplyPermutation(perm) })
		require.Equal(t, []int{0, 3, 1}, perm)
	})

	t.Run("rejects duplicates and restores the array", func(t *testing.T) {
		s := NewVectorFrom([]int{5, 6, 7})
		perm := []int{1, 1, 0}
		requirePanicsWith(t, errs.ErrInvalidPermutation, func() { s.ApplyPermutation(perm) })
		require.Equal(t, []int{1, 1, 0}, perm)
	})

	t.Run("rejects length mismatch", func(t *testing.T) {
		s := NewVectorFrom([]int{5, 6, 7})
		requirePanicsWith(t, errs.ErrInvalidPermutation, func() { s.ApplyPermutation([]int{0, 1}) })
	})
}

func TestVectorStore_PermutationInverseProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, n := range []int{0, 1, 2, 17, 256} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			values := make([][3]float64, n)
			for i := range values {
				values[i] = [3]float64{rng.Float64(), rng.Float64(), float64(i)}
			}
			perm := rng.Perm(n)
			inverse := make([]int, n)
			for i, p := range perm {
				inverse[p] = i
			}
			permCopy := slices.Clone(perm)

			s := NewVectorFrom(values)
			s.ApplyPermutation(perm)
			for i := range n {
				require.Equal(t, values[perm[i]], s.Values()[i])
			}
			require.Equal(t, permCopy, perm)

			s.ApplyPermutation(inverse)
			require.Equal(t, values, append([][3]float64{}, s.Values()...))
		})
	}
}

func TestVectorStore_CopyItem(t *testing.T) {
	s := NewVectorFrom([]float32{1, 2, 3})
	s.CopyItem(0, 2)
	require.Equal(t, []float32{3, 2, 3}, s.Values())

	requirePanicsWith(t, errs.ErrIndexOutOfRange, func() { s.CopyItem(3, 0) })
	requirePanicsWith(t, errs.ErrIndexOutOfRange, func() { s.CopyItem(0, -1) })
}

func TestVectorStore_Clone(t *testing.T) {
	s := NewVectorFrom([]int64{1, 2, 3})
	c := s.Clone()
	require.IsType(t, &VectorStore[int64]{}, c)

	clone := c.(*VectorStore[int64])
	require.Equal(t, s.Values(), clone.Values())

	clone.Values()[0] = 100
	s.Values()[1] = 200
	require.Equal(t, []int64{1, 200, 3}, s.Values())
	require.Equal(t, []int64{100, 2, 3}, clone.Values())
}

func TestVectorStore_TypeIdentity(t *testing.T) {
	s := NewVector[[3]float64]()
	require.Equal(t, "[3]float64", s.ElementTypeIDName())
	require.True(t, s.ElementsTypeMatches(TypeID[[3]float64]()))
	require.False(t, s.ElementsTypeMatches(TypeID[float64]()))
	require.Equal(t, reflect.TypeFor[[3]float64](), s.ElementType())
	require.Equal(t, 24, s.ElementSize())
	require.False(t, s.IsConstant())
}

func TestVectorStore_ToConstant(t *testing.T) {
	s := NewVectorFrom([]int{4, 5})
	c := s.ToConstant()
	require.True(t, c.IsConstant())
	require.Equal(t, 4, c.(*ConstantStore[int]).Value())

	empty := NewVector[int]().ToConstant()
	require.Equal(t, 0, empty.(*ConstantStore[int]).Value())
}

func TestConstantStore(t *testing.T) {
	t.Run("resize keeps size one and warns", func(t *testing.T) {
		logs := observeLogs(t)

		s := NewConstantOf(3.5)
		for _, n := range []int{0, 1, 10, 1 << 20} {
			require.NotPanics(t, func() { s.Resize(n) })
			require.Equal(t, 1, s.Size())
		}
		require.Equal(t, 4, logs.Len())
		entry := logs.All()[0]
		require.Equal(t, zapcore.WarnLevel, entry.Level)
		require.Equal(t, int64(0), entry.ContextMap()["requested_size"])
	})

	t.Run("structural operations are no-ops", func(t *testing.T) {
		s := NewConstantOf[int32](8)
		s.Clear()
		s.Compress([]int{Removed, 0})
		s.ApplyPermutation([]int{1, 0})
		s.CopyItem(5, 9)
		require.Equal(t, 1, s.Size())
		require.Equal(t, int32(8), s.Value())
		require.Equal(t, []int32{8}, s.Values())
	})

	t.Run("clone is independent", func(t *testing.T) {
		s := NewConstantOf[uint8](1)
		c := s.Clone().(*ConstantStore[uint8])
		c.SetValue(2)
		require.Equal(t, uint8(1), s.Value())
		require.Equal(t, uint8(2), c.Value())
		require.True(t, c.IsConstant())
	})

	t.Run("bytes alias the value", func(t *testing.T) {
		s := NewConstantOf[uint8](7)
		require.Equal(t, []byte{7}, s.Bytes())
		s.Bytes()[0] = 9
		require.Equal(t, uint8(9), s.Value())
	})
}

func TestIsFlat(t *testing.T) {
	type point struct {
		X, Y float64
		ID   int32
	}
	type named struct {
		Name string
	}

	tests := []struct {
		typ  reflect.Type
		flat bool
	}{
		{reflect.TypeFor[float64](), true},
		{reflect.TypeFor[bool](), true},
		{reflect.TypeFor[[4]uint8](), true},
		{reflect.TypeFor[point](), true},
		{reflect.TypeFor[[2]point](), true},
		{reflect.TypeFor[string](), false},
		{reflect.TypeFor[[]int](), false},
		{reflect.TypeFor[*int](), false},
		{reflect.TypeFor[named](), false},
		{reflect.TypeFor[map[int]int](), false},
		{reflect.TypeFor[any](), false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.flat, IsFlat(tt.typ), tt.typ.String())
	}
}

func BenchmarkVectorStore_ApplyPermutation(b *testing.B) {
	const n = 1 << 16
	s := NewVector[[3]float64]()
	s.Resize(n)
	perm := rand.New(rand.NewPCG(3, 5)).Perm(n)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		s.ApplyPermutation(perm)
	}
}

func BenchmarkVectorStore_Compress(b *testing.B) {
	const n = 1 << 16
	old2new := make([]int, n)
	next := 0
	for i := range old2new {
		if i%4 == 0 {
			old2new[i] = Removed
			continue
		}
		old2new[i] = next
		next++
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s := NewVector[float64]()
		s.Resize(n)
		b.StartTimer()
		s.Compress(old2new)
	}
}
