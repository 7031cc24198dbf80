package textcloud

import (
	"time"

	"github.com/gekko3d/textcloud/pointcloud/core"
)

// FrameClock tracks time since the app started and the last frame delta.
type FrameClock struct {
	Start   time.Time
	Time    time.Time
	Dt      time.Duration
	Elapsed float64 // seconds

	now func() time.Time
}

func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	start := now()
	return &FrameClock{
		Start: start,
		Time:  start,
		now:   now,
	}
}

func (c *FrameClock) Tick() {
	now := c.now()
	c.Dt = now.Sub(c.Time)
	c.Time = now
	c.Elapsed = now.Sub(c.Start).Seconds()
}

type TimeModule struct {
	Now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewFrameClock(mod.Now))
	cmd.UseSystem(
		System(timeSystem).
			InStage(Update),
	)
}

func timeSystem(clock *FrameClock, rc *core.RenderContext) {
	clock.Tick()
	rc.Tick(clock.Elapsed)
}
