package world

import "time"

type ClockConfig struct {
	StartAt      time.Time
	TickDuration time.Duration
}

// Clock maps wall time onto simulation ticks for real-time drivers.
type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = time.Millisecond
	}
	if cfg.StartAt.IsZero() {
		cfg.StartAt = time.Unix(0, 0)
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

func (c Clock) TickAt(now time.Time) int64 {
	elapsed := now.Sub(c.cfg.StartAt)
	if elapsed < 0 {
		return 0
	}
	return int64(elapsed / c.cfg.TickDuration)
}

func (c Clock) TickDuration() time.Duration {
	return c.cfg.TickDuration
}
