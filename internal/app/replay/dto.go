package replay

import "time"

type Request struct {
	RunID    string
	Limit    int
	FromTick int64
	ToTick   int64
}

type Response struct {
	Run          *Run           `json:"run,omitempty"`
	Records      []Record       `json:"records" jsonschema:"required"`
	TotalFired   int            `json:"total_fired"`
	LatestCounts map[string]int `json:"latest_counts"`
}

type Run struct {
	RunID     string    `json:"run_id"`
	Seed      string    `json:"seed"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	StartedAt time.Time `json:"started_at"`
}

type Record struct {
	FromTick   int64          `json:"from_tick"`
	ToTick     int64          `json:"to_tick"`
	Fired      int            `json:"fired"`
	Changed    int            `json:"changed"`
	Counts     map[string]int `json:"counts,omitempty"`
	RecordedAt time.Time      `json:"recorded_at"`
}
