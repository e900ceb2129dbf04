package core

import "time"

// DefaultTickRate is the simulation rate when none is configured.
const DefaultTickRate = 5

// RuntimeConfig is what a terminal session is started with: the size of
// the screen it draws on and how often the simulation steps.
type RuntimeConfig struct {
	ScreenW  int // columns
	ScreenH  int // rows available to the game, excluding the help line
	TickRate int // ticks per second; <= 0 means DefaultTickRate
}

// TickInterval is the time between two simulation steps.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// AtLeast grows the screen to minW x minH if it is smaller.
func (c RuntimeConfig) AtLeast(minW, minH int) RuntimeConfig {
	c.ScreenW = max(c.ScreenW, minW)
	c.ScreenH = max(c.ScreenH, minH)
	return c
}
