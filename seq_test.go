package packarray

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	a := newArray(t, Width64, []int{1, 2, 3, 4, 5, 6, 7, 8})
	sumV, sumK := 0, 0
	for k, v := range a.All() {
		sumV += v
		sumK += k
	}
	assert.Equal(t, 1+2+3+4+5+6+7+8, sumV)
	assert.Equal(t, 0+1+2+3+4+5+6+7, sumK)

	// Restartable, and stops when the consumer does.
	var firstTwo []int
	for _, v := range a.All() {
		firstTwo = append(firstTwo, v)
		if len(firstTwo) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, firstTwo)
	assert.Equal(t, toSlice(t, a), slices.Collect(a.Values()))
}

func TestIndexed(t *testing.T) {
	a := newArray(t, Width64, nil)
	x := Index(a)
	for i := 0; i < 10; i++ {
		require.NoError(t, x.Put(Append, i))
	}
	assert.Equal(t, 10, x.Len())

	v, err := x.At(3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, x.Put(3, 42))
	v, err = x.At(3)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	assert.True(t, x.Has(9))
	assert.False(t, x.Has(10))
	assert.False(t, x.Has(-1))

	require.NoError(t, x.Delete(0))
	assert.Equal(t, 9, a.Len())
	assert.ErrorIs(t, x.Put(10, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, x.Delete(10), ErrIndexOutOfRange)
}

func TestString(t *testing.T) {
	a := newArray(t, Width16, []int{0, -1, 2})
	assert.Equal(t, "int16[ 0, -1, 2 ]", a.String())

	empty := newArray(t, Width32, nil)
	assert.Equal(t, "int32[]", empty.String())

	require.NoError(t, a.Close())
	assert.Equal(t, "int16(closed)", a.String())
}
