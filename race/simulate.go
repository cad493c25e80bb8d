package race

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRaceTimeout = errors.New("race: time limit reached before every horse finished")

// DefaultStep is one frame at 60 ticks per second.
const DefaultStep = time.Second / 60

// Simulate drives m with fixed steps until the race completes, ctx is done or
// race time passes limit. It starts the race if needed. A zero limit means no
// limit.
func Simulate(ctx context.Context, m *Manager, step, limit time.Duration) ([]Result, error) {
	if step <= 0 {
		step = DefaultStep
	}
	m.Start()
	for i := 0; !m.Done(); i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return m.Results(), fmt.Errorf("simulate: %w", err)
			}
		}
		if limit > 0 && m.Elapsed() >= limit {
			return m.Results(), fmt.Errorf("simulate after %v: %w", m.Elapsed(), ErrRaceTimeout)
		}
		m.Update(step)
	}
	return m.Results(), nil
}
