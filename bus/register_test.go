package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterDrive(t *testing.T) {
	assert := assert.New(t)

	data := NewBus("data", 8)
	a := NewRegister("a", 8, data)
	a.store(0x42)
	a.Clean()

	assert.Equal("a.ctl", a.Control().Name())
	assert.Same(data, a.Data())

	// Not enabled: no drive.
	assert.NoError(a.Drive())
	assert.False(data.Dirty())

	assert.NoError(a.Control().Write(CTRL_ENABLE))
	assert.NoError(a.Drive())
	assert.Equal(0x42, data.Read())
	assert.True(data.Dirty())

	// A second driver on the same cycle is contention.
	b := NewRegister("b", 8, data)
	b.store(0x24)
	assert.NoError(b.Control().Write(CTRL_ENABLE))
	assert.ErrorIs(b.Drive(), ErrBusContention)
	assert.Equal(0x24, data.Read())
}

func TestRegisterLatch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		control int
		dirty   bool
		start   int
		data    int
		want    int
	}){
		{"idle", 0, false, 7, 9, 7},
		{"set", CTRL_SET, false, 7, 9, 9},
		{"increment", CTRL_INCREMENT, false, 7, 9, 8},
		{"increment-wrap", CTRL_INCREMENT, false, 255, 9, 0},
		{"increment-dirty", CTRL_INCREMENT, true, 7, 9, 7},
		{"set-over-increment", CTRL_SET | CTRL_INCREMENT, false, 7, 9, 9},
		{"set-dirty", CTRL_SET, true, 7, 9, 9},
		{"enable-only", CTRL_ENABLE, false, 7, 9, 7},
	}

	for _, entry := range table {
		data := NewBus("data", 8)
		r := NewRegister("pc", 8, data)
		r.store(entry.start)
		r.Clean()
		if entry.dirty {
			r.store(entry.start)
		}
		assert.NoError(data.Write(entry.data), entry.name)
		assert.NoError(r.Control().Write(entry.control), entry.name)

		r.Latch()
		assert.Equal(entry.want, r.Read(), entry.name)
	}
}

func TestRegisterLatchTwice(t *testing.T) {
	assert := assert.New(t)

	data := NewBus("data", 8)
	pc := NewRegister("pc", 8, data)
	assert.NoError(pc.Control().Write(CTRL_INCREMENT))

	// Both latch passes of one cycle only increment once.
	pc.Latch()
	pc.Latch()
	assert.Equal(1, pc.Read())

	pc.Clean()
	pc.Latch()
	pc.Latch()
	assert.Equal(2, pc.Read())

	// A set register recaptures the data bus on the second pass.
	ir := NewRegister("ir", 8, data)
	assert.NoError(ir.Control().Write(CTRL_SET))
	ir.Latch()
	assert.Equal(0, ir.Read())
	data.Precharge()
	assert.NoError(data.Write(0x4a))
	ir.Latch()
	assert.Equal(0x4a, ir.Read())
}

func TestRegisterReset(t *testing.T) {
	assert := assert.New(t)

	data := NewBus("data", 8)
	r := NewRegister("t1", 8, data)
	r.store(3)
	assert.NoError(r.Control().Write(CTRL_SET))

	r.Reset()
	assert.Equal(0, r.Read())
	assert.False(r.Dirty())
	assert.Equal(0, r.Control().Read())
	assert.False(r.Control().Dirty())
}
