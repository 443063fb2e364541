package sim

type ActionKind uint8

const (
	// ActionMiner runs the miner step matching the owner's current kind.
	ActionMiner ActionKind = iota
	ActionVein
	ActionOreTransform
	ActionBlob
	ActionAnimate
	ActionQuakeDeath
)

var actionNames = map[ActionKind]string{
	ActionMiner:        "miner",
	ActionVein:         "vein",
	ActionOreTransform: "ore_transform",
	ActionBlob:         "blob",
	ActionAnimate:      "animate",
	ActionQuakeDeath:   "quake_death",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "unknown"
}

// Action is the queued record. It names an owner by handle; the dispatcher
// looks the owner up when the action fires.
type Action struct {
	Kind  ActionKind
	Owner Handle
	// Repeat counts remaining animation steps; 0 animates forever.
	Repeat int
}

// PrimaryAction is the non-animation action that drives a kind, if any.
func (k Kind) PrimaryAction() (ActionKind, bool) {
	switch k {
	case KindMinerNotFull, KindMinerFull:
		return ActionMiner, true
	case KindVein:
		return ActionVein, true
	case KindOre:
		return ActionOreTransform, true
	case KindOreBlob:
		return ActionBlob, true
	case KindQuake:
		return ActionQuakeDeath, true
	default:
		return 0, false
	}
}

// ActionKinds lists every action kind in declaration order.
func ActionKinds() []ActionKind {
	return []ActionKind{ActionMiner, ActionVein, ActionOreTransform, ActionBlob, ActionAnimate, ActionQuakeDeath}
}
