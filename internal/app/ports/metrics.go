package ports

import "minerworld/internal/domain/sim"

// SimMetrics hears every dispatched action and placed entity, plus the
// service-level outcomes around them.
type SimMetrics interface {
	sim.Observer
	RecordAdvance(ticks int64, changed int)
	RecordRejected()
}
