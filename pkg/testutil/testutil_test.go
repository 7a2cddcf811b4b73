package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/errors"
)

func TestBuildBlock(t *testing.T) {
	blk := BuildBlock(t, nil, []byte{0x01}, nil, []byte{})

	assert.Equal(t, 3, blk.PositionCount())
	assert.False(t, blk.IsNull(0))
	assert.True(t, blk.IsNull(1))
	assert.False(t, blk.IsNull(2))

	arrow := BuildBlock(t, block.NewArrowBlockBuilder(nil, 0), []byte("abc"))
	assert.IsType(t, &block.ArrowBlock{}, arrow)
	assert.Equal(t, 3, arrow.SliceLength(0))
}

func TestRequirePanicType(t *testing.T) {
	err := RequirePanicType(t, errors.ErrorTypeCapability, func() {
		panic(errors.New(errors.ErrorTypeCapability, "not comparable"))
	})
	assert.Contains(t, err.Error(), "not comparable")
}

func TestTestContext(t *testing.T) {
	ctx := TestContext(t)
	_, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.NoError(t, ctx.Err())
}
