package game

// Clock turns variable frame times into a whole number of fixed physics ticks.
type Clock struct {
	Step     float32 // seconds per tick
	MaxSteps int     // ticks allowed per frame before time is dropped

	acc     float32
	dropped int
}

func NewClock(step float32, maxSteps int) *Clock {
	return &Clock{Step: step, MaxSteps: maxSteps}
}

// Advance adds frameDt to the accumulator and returns how many ticks to run.
// When more than MaxSteps are owed the backlog is discarded so a long stall
// does not turn into a burst of catch-up ticks.
func (c *Clock) Advance(frameDt float32) int {
	if frameDt > 0 {
		c.acc += frameDt
	}
	n := int(c.acc / c.Step)
	if n > c.MaxSteps {
		c.dropped += n - c.MaxSteps
		n = c.MaxSteps
		c.acc = 0
		return n
	}
	c.acc -= float32(n) * c.Step
	return n
}

// Dropped counts ticks discarded because a frame owed more than MaxSteps.
func (c *Clock) Dropped() int {
	return c.dropped
}
