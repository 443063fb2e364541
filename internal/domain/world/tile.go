package world

const DefaultBackgroundName = "grass"

// Background is the tile drawn under a cell when no entity occupies it.
type Background struct {
	Name   string
	Frames []string
	Frame  int
}

func NewBackground(name string, frames []string) Background {
	return Background{Name: name, Frames: frames}
}

func (b Background) Image() string {
	if len(b.Frames) == 0 {
		return ""
	}
	return b.Frames[b.Frame%len(b.Frames)]
}

func (b *Background) NextFrame() {
	if len(b.Frames) == 0 {
		return
	}
	b.Frame = (b.Frame + 1) % len(b.Frames)
}
