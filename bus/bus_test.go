package bus

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusWidth(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		width int
		want  int
	}){
		{8, 8},
		{1, 1},
		{31, 31},
		{32, 31},
		{64, 31},
		{0, 1},
		{-3, 1},
	}

	for _, entry := range table {
		b := NewBus("w", entry.width)
		assert.Equal(entry.want, b.Width(), fmt.Sprintf("%+v", entry))
		assert.Equal((1<<entry.want)-1, b.Mask(), fmt.Sprintf("%+v", entry))
	}
}

func TestBusWrite(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		width     int
		value     int
		read      int
		truncated bool
	}){
		{8, 0, 0, false},
		{8, 255, 255, false},
		{8, 256, 0, true},
		{8, 300, 44, true},
		{8, -1, 255, true},
		{8, -256, 0, true},
		{8, -257, 255, true},
		{3, 9, 1, true},
		{31, 1<<31 - 1, 1<<31 - 1, false},
		{31, 1 << 31, 0, true},
	}

	for _, entry := range table {
		name := fmt.Sprintf("%+v", entry)
		b := NewBus("w", entry.width)
		err := b.Write(entry.value)
		assert.Equal(entry.read, b.Read(), name)
		assert.True(b.Dirty(), name)
		assert.Equal(entry.truncated, errors.Is(err, ErrValueTruncated), name)
		assert.False(errors.Is(err, ErrBusContention), name)

		modulus := ((entry.value % (b.Mask() + 1)) + b.Mask() + 1) % (b.Mask() + 1)
		assert.Equal(modulus, b.Read(), name)
	}
}

func TestBusWriteFloat(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value     float64
		read      int
		truncated bool
	}){
		{3, 3, false},
		{3.7, 3, true},
		{-0.5, 255, true},
		{255.99, 255, true},
		{256.5, 0, true},
		{-1, 255, true},
	}

	for _, entry := range table {
		name := fmt.Sprintf("%+v", entry)
		b := NewBus("f", 8)
		err := b.WriteFloat(entry.value)
		assert.Equal(entry.read, b.Read(), name)
		assert.Equal(entry.truncated, errors.Is(err, ErrValueTruncated), name)
	}
}

func TestBusContention(t *testing.T) {
	assert := assert.New(t)

	b := NewBus("data", 8)

	assert.NoError(b.Write(1))
	err := b.Write(2)
	assert.ErrorIs(err, ErrBusContention)
	assert.Equal(2, b.Read())

	var berr *ErrBus
	if assert.ErrorAs(err, &berr) {
		assert.Equal("data", berr.Bus)
	}

	// Reported only once per cycle.
	assert.NoError(b.Write(3))
	assert.Equal(3, b.Read())

	// Write, clean, write: no report.
	b.Clean()
	assert.False(b.Dirty())
	assert.NoError(b.Write(4))
	b.Clean()
	assert.NoError(b.Write(5))
	assert.Equal(5, b.Read())

	// And a new cycle reports again.
	b.Clean()
	assert.NoError(b.Write(6))
	assert.ErrorIs(b.Write(7), ErrBusContention)
}

func TestBusResetPrecharge(t *testing.T) {
	assert := assert.New(t)

	b := NewBus("data", 8)
	assert.NoError(b.Write(0x5a))
	b.Precharge()
	assert.Equal(0, b.Read())
	assert.False(b.Dirty())
	assert.NoError(b.Write(0x11))

	b.Reset()
	assert.Equal(0, b.Read())
	assert.False(b.Dirty())
	assert.Equal("data=0x00", b.String())
}
