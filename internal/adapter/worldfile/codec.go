// Package worldfile reads and writes the line-oriented world layout format:
//
//	background name x y
//	miner name x y resource_limit rate animation_rate
//	vein name x y rate resource_distance
//	ore name x y rate
//	blacksmith name x y resource_limit rate resource_distance
//	obstacle name x y
//
// Blank lines and lines starting with '#' are ignored.
package worldfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"minerworld/internal/domain/sim"
	"minerworld/internal/domain/world"
)

var ErrMalformed = errors.New("malformed world file")

type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("world file line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }

const (
	keyBackground = "background"
	keyMiner      = "miner"
	keyVein       = "vein"
	keyOre        = "ore"
	keyBlacksmith = "blacksmith"
	keyObstacle   = "obstacle"
)

var arity = map[string]int{
	keyBackground: 4,
	keyMiner:      7,
	keyVein:       6,
	keyOre:        5,
	keyBlacksmith: 7,
	keyObstacle:   4,
}

// Codec adapts Load and Save to ports.LayoutCodec.
type Codec struct{}

func (Codec) Load(r io.Reader, w *sim.World) error { return Load(r, w) }

func (Codec) Save(out io.Writer, w *sim.World) error { return Save(out, w) }

// Load places every entity described by r into w and schedules its initial
// actions as of w.Now().
func Load(r io.Reader, w *sim.World) error {
	scanner := bufio.NewScanner(r)
	seen := map[string]bool{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := loadLine(w, strings.Fields(line), seen); err != nil {
			return &ParseError{Line: lineNo, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read world file: %w", err)
	}
	return nil
}

func loadLine(w *sim.World, fields []string, seen map[string]bool) error {
	key := fields[0]
	want, ok := arity[key]
	if !ok {
		return fmt.Errorf("unknown entry %q", key)
	}
	if len(fields) != want {
		return fmt.Errorf("%s expects %d fields, got %d", key, want, len(fields))
	}
	p := parser{fields: fields}
	name := fields[1]
	pt := world.Point{X: p.intAt(2), Y: p.intAt(3)}
	if p.err != nil {
		return p.err
	}
	if !w.WithinBounds(pt) {
		return fmt.Errorf("%s %q at %d,%d is outside the %dx%d grid", key, name, pt.X, pt.Y, w.Cols(), w.Rows())
	}
	if key == keyBackground {
		w.SetBackground(pt, world.NewBackground(name, w.Frames(name)))
		return nil
	}
	if _, taken := w.EntityByName(name); taken || seen[name] {
		return fmt.Errorf("duplicate name %q", name)
	}

	var e *sim.Entity
	switch key {
	case keyMiner:
		e = sim.NewMiner(w, name, pt, p.intAt(4), p.int64At(5), p.int64At(6))
	case keyVein:
		e = sim.NewVein(w, name, pt, p.int64At(4), p.intAt(5))
	case keyOre:
		e = sim.NewOre(w, name, pt, p.int64At(4))
	case keyBlacksmith:
		e = sim.NewBlacksmith(w, name, pt, p.intAt(4), p.int64At(5), p.intAt(6))
	case keyObstacle:
		e = sim.NewObstacle(w, name, pt)
	}
	if p.err == nil && (!sim.ValidRate(e.Rate) || !sim.ValidRate(e.AnimationRate)) {
		p.err = fmt.Errorf("%s %q: rates must be between 0 and %d", key, name, sim.MaxRate)
	}
	if p.err != nil {
		w.RemoveEntity(e)
		return p.err
	}
	seen[name] = true
	w.AddEntity(e)
	w.ScheduleEntity(e, w.Now())
	return nil
}

type parser struct {
	fields []string
	err    error
}

func (p *parser) int64At(i int) int64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(p.fields[i], 10, 64)
	if err != nil {
		p.err = fmt.Errorf("field %d of %s: %q is not an integer", i, p.fields[0], p.fields[i])
		return 0
	}
	return v
}

func (p *parser) intAt(i int) int {
	return int(p.int64At(i))
}

// Save writes the static layout of w: non-default backgrounds in row-major
// order, then placed entities in insertion order. Blobs and quakes are
// transient and are not written. Whitespace in names becomes '_'.
func Save(out io.Writer, w *sim.World) error {
	bw := bufio.NewWriter(out)
	for y := 0; y < w.Rows(); y++ {
		for x := 0; x < w.Cols(); x++ {
			bg, _ := w.Background(world.Point{X: x, Y: y})
			if bg.Name == "" || bg.Name == world.DefaultBackgroundName {
				continue
			}
			fmt.Fprintf(bw, "%s %s %d %d\n", keyBackground, safeName(bg.Name), x, y)
		}
	}
	for _, e := range w.Entities() {
		if line, ok := entityLine(e); ok {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func entityLine(e *sim.Entity) (string, bool) {
	if !e.Position.IsPlaced() {
		return "", false
	}
	name, x, y := safeName(e.Name), e.Position.X, e.Position.Y
	switch e.Kind {
	case sim.KindMinerNotFull, sim.KindMinerFull:
		return fmt.Sprintf("%s %s %d %d %d %d %d", keyMiner, name, x, y, e.ResourceLimit, e.Rate, e.AnimationRate), true
	case sim.KindVein:
		return fmt.Sprintf("%s %s %d %d %d %d", keyVein, name, x, y, e.Rate, e.ResourceDistance), true
	case sim.KindOre:
		return fmt.Sprintf("%s %s %d %d %d", keyOre, name, x, y, e.Rate), true
	case sim.KindBlacksmith:
		return fmt.Sprintf("%s %s %d %d %d %d %d", keyBlacksmith, name, x, y, e.ResourceLimit, e.Rate, e.ResourceDistance), true
	case sim.KindObstacle:
		return fmt.Sprintf("%s %s %d %d", keyObstacle, name, x, y), true
	default:
		return "", false
	}
}

func safeName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}
