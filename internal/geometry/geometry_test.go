package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hert97/CSD2181-memory-allocator/internal/geometry"
)

func TestComputeNoAlignmentNoPadding(t *testing.T) {
	layout, err := geometry.Compute(geometry.Inputs{
		ObjectSize:     8,
		ObjectsPerPage: 4,
	})
	require.NoError(t, err)
	require.Equal(t, 0, layout.LeftAlignBytes)
	require.Equal(t, 0, layout.InterAlignBytes)
	require.Equal(t, 8, layout.SlotStride)
	require.Equal(t, geometry.PointerSize+4*8, layout.PageBytes)
}

func TestComputeAlignmentKeepsEverySlotAligned(t *testing.T) {
	layout, err := geometry.Compute(geometry.Inputs{
		ObjectSize:     12,
		ObjectsPerPage: 3,
		Alignment:      8,
	})
	require.NoError(t, err)
	require.Equal(t, 4, layout.InterAlignBytes)
	require.Equal(t, 16, layout.SlotStride)
	require.Equal(t, 52, layout.PageBytes)

	offset := layout.FirstSlotOffset
	for i := 0; i < 3; i++ {
		require.Zero(t, offset%8, "slot %d offset %d is not 8-aligned", i, offset)
		offset += layout.SlotStride
	}
}

func TestComputeSingleObjectPerPageHasNoInterAlign(t *testing.T) {
	layout, err := geometry.Compute(geometry.Inputs{
		ObjectSize:     24,
		ObjectsPerPage: 1,
		Alignment:      16,
	})
	require.NoError(t, err)
	require.Zero(t, layout.InterAlignBytes)
}

func TestComputeRejectsUndersizedObject(t *testing.T) {
	_, err := geometry.Compute(geometry.Inputs{
		ObjectSize:     2,
		ObjectsPerPage: 4,
	})
	require.Error(t, err)
}

func TestComputeRejectsNonPowerOfTwoAlignment(t *testing.T) {
	_, err := geometry.Compute(geometry.Inputs{
		ObjectSize:     8,
		ObjectsPerPage: 4,
		Alignment:      6,
	})
	require.Error(t, err)
}
