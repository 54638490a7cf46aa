package bus

// Control bus bits, shared by every register and unit.
const (
	CTRL_SET       = 0b001 // Latch from the data bus.
	CTRL_ENABLE    = 0b010 // Drive onto the data bus.
	CTRL_INCREMENT = 0b100 // Self-increment.

	CTRL_WIDTH = 3 // Width of a register control bus.
)

// Register is a named storage cell on a shared data bus, governed by
// its own control bus.
type Register struct {
	Bus

	data    *Bus
	control *Bus
}

// NewRegister creates a register attached to the data bus. The register
// creates and owns its control bus.
func NewRegister(name string, width int, data *Bus) (r *Register) {
	r = &Register{
		Bus:     *NewBus(name, width),
		data:    data,
		control: NewBus(name+".ctl", CTRL_WIDTH),
	}

	return
}

// Control returns the private control bus.
func (r *Register) Control() *Bus {
	return r.control
}

// Data returns the shared data bus.
func (r *Register) Data() *Bus {
	return r.data
}

// Drive writes the stored value onto the data bus, if enabled.
func (r *Register) Drive() (err error) {
	if r.control.Read()&CTRL_ENABLE != 0 {
		err = r.data.Write(r.Read())
	}

	return
}

// Latch captures the data bus if set, else increments if requested and
// the register has not been written yet this cycle.
func (r *Register) Latch() {
	ctl := r.control.Read()

	switch {
	case ctl&CTRL_SET != 0:
		r.store(r.data.Read())
	case ctl&CTRL_INCREMENT != 0 && !r.Dirty():
		r.store(r.Read() + 1)
	}
}

// Clean clears the dirty bit of the register and its control bus.
func (r *Register) Clean() {
	r.Bus.Clean()
	r.control.Clean()
}

// Reset zeros the register and its control bus.
func (r *Register) Reset() {
	r.Bus.Reset()
	r.control.Reset()
}
