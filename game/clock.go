package game

// Clock gates the simulation phases. A stopped clock freezes physics and
// behaviours while the lifecycle keeps running.
type Clock struct {
	running bool
	ticks   uint64
}

func (c *Clock) Start() { c.running = true }
func (c *Clock) Stop()  { c.running = false }

func (c *Clock) Running() bool { return c.running }

// Tick counts one simulated step when running.
func (c *Clock) Tick() {
	if c.running {
		c.ticks++
	}
}

func (c *Clock) Ticks() uint64 { return c.ticks }
