package sim

import (
	"minerworld/internal/domain/schedule"
	"minerworld/internal/domain/world"
)

type Kind uint8

const (
	KindBackground Kind = iota
	KindObstacle
	KindMinerNotFull
	KindMinerFull
	KindVein
	KindOre
	KindOreBlob
	KindBlacksmith
	KindQuake
)

var kindNames = map[Kind]string{
	KindBackground:   "background",
	KindObstacle:     "obstacle",
	KindMinerNotFull: "miner_not_full",
	KindMinerFull:    "miner_full",
	KindVein:         "vein",
	KindOre:          "ore",
	KindOreBlob:      "ore_blob",
	KindBlacksmith:   "blacksmith",
	KindQuake:        "quake",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	switch s {
	case "miner":
		return KindMinerNotFull, true
	case "blob":
		return KindOreBlob, true
	}
	return 0, false
}

// Kinds lists every placeable kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindObstacle,
		KindMinerNotFull,
		KindMinerFull,
		KindVein,
		KindOre,
		KindOreBlob,
		KindBlacksmith,
		KindQuake,
	}
}

// Category is the asset category whose frames an entity of this kind shows.
// Both miner variants share one sprite sheet.
func (k Kind) Category() string {
	switch k {
	case KindMinerNotFull, KindMinerFull:
		return "miner"
	case KindOreBlob:
		return "blob"
	case KindBackground:
		return "background"
	default:
		return k.String()
	}
}

func (k Kind) IsMiner() bool {
	return k == KindMinerNotFull || k == KindMinerFull
}

// Entity is a closed variant selected by Kind. Fields a kind does not use stay
// zero.
type Entity struct {
	Handle   Handle
	Kind     Kind
	Name     string
	Position world.Point
	Frames   []string
	Frame    int

	Rate          int64
	AnimationRate int64

	ResourceCount    int
	ResourceLimit    int
	ResourceDistance int

	pending []schedule.Ticket
}

func (e *Entity) Image() string {
	if len(e.Frames) == 0 {
		return ""
	}
	return e.Frames[e.Frame%len(e.Frames)]
}

func (e *Entity) NextFrame() {
	if len(e.Frames) == 0 {
		return
	}
	e.Frame = (e.Frame + 1) % len(e.Frames)
}

// Pending returns a copy of the tickets this entity still owns in the queue.
func (e *Entity) Pending() []schedule.Ticket {
	out := make([]schedule.Ticket, len(e.pending))
	copy(out, e.pending)
	return out
}

func (e *Entity) addPending(t schedule.Ticket) {
	e.pending = append(e.pending, t)
}

func (e *Entity) dropPending(t schedule.Ticket) {
	for i, p := range e.pending {
		if p == t {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
}
