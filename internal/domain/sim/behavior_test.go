package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerworld/internal/domain/world"
)

func TestNextPositionGreedyStep(t *testing.T) {
	w := newTestWorld(t, 4, 4)
	place(t, w, NewObstacle(w, "rock", pt(1, 0)))

	assert.Equal(t, pt(0, 0), w.NextPosition(pt(0, 0), pt(3, 0)))
	assert.Equal(t, pt(0, 1), w.NextPosition(pt(0, 0), pt(3, 2)))
	assert.Equal(t, pt(2, 2), w.NextPosition(pt(2, 1), pt(2, 3)))
	assert.Equal(t, pt(2, 1), w.NextPosition(pt(2, 1), pt(2, 1)))

	place(t, w, NewObstacle(w, "rock", pt(0, 1)))
	assert.Equal(t, pt(0, 0), w.NextPosition(pt(0, 0), pt(3, 2)))
}

func TestBlobNextPositionPassesOre(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	place(t, w, NewOre(w, "ore", pt(1, 0), 100))

	assert.Equal(t, pt(0, 0), w.NextPosition(pt(0, 0), pt(2, 0)))
	assert.Equal(t, pt(1, 0), w.BlobNextPosition(pt(0, 0), pt(2, 0)))

	place(t, w, NewObstacle(w, "rock", pt(1, 1)))
	assert.Equal(t, pt(0, 1), w.BlobNextPosition(pt(0, 1), pt(2, 1)))
}

func TestMinerCollectsOreAndDelivers(t *testing.T) {
	w := newTestWorld(t, 5, 5)
	miner := place(t, w, NewMiner(w, "miner", pt(0, 0), 1, 10, 5))
	ore := place(t, w, NewOre(w, "ore", pt(1, 0), 1_000_000))
	smith := place(t, w, NewBlacksmith(w, "smith", pt(4, 4), 100, 0, 1))
	w.ScheduleEntity(miner, 0)
	w.ScheduleEntity(ore, 0)

	w.AdvanceTo(11)
	require.Equal(t, KindMinerFull, miner.Kind)
	assert.Equal(t, 1, miner.ResourceCount)
	assert.Equal(t, pt(0, 0), miner.Position)
	assert.False(t, w.IsOccupied(pt(1, 0)))
	_, ok := w.Entity(ore.Handle)
	assert.False(t, ok)
	due, ok := w.NextDue(miner, ActionMiner)
	require.True(t, ok)
	assert.Equal(t, int64(20), due)
	assert.Equal(t, 0, miner.Frame)

	w.AdvanceTo(21)
	assert.Equal(t, pt(1, 0), miner.Position)

	// (2,0) (3,0) (4,0) (4,1) (4,2) (4,3), then the hand-off at 90.
	w.AdvanceTo(81)
	assert.Equal(t, pt(4, 3), miner.Position)
	assert.Equal(t, KindMinerFull, miner.Kind)

	w.AdvanceTo(91)
	assert.Equal(t, KindMinerNotFull, miner.Kind)
	assert.Equal(t, 0, miner.ResourceCount)
	assert.Equal(t, 1, smith.ResourceCount)
	assert.Equal(t, pt(4, 3), miner.Position)
	assert.NoError(t, w.CheckInvariants())
}

func TestMinerWithoutTargetsStaysAndReschedules(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	miner := place(t, w, NewMiner(w, "miner", pt(1, 1), 2, 10, 0))
	w.ScheduleEntity(miner, 0)

	w.AdvanceTo(11)
	assert.Equal(t, pt(1, 1), miner.Position)
	assert.Equal(t, KindMinerNotFull, miner.Kind)
	due, ok := w.NextDue(miner, ActionMiner)
	require.True(t, ok)
	assert.Equal(t, int64(20), due)
}

func TestTryTransformMovesToEndOfOrder(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	miner := place(t, w, NewMiner(w, "miner", pt(0, 0), 3, 10, 5))
	place(t, w, NewObstacle(w, "rock", pt(2, 2)))
	miner.Frame = 3
	handle := miner.Handle

	require.True(t, w.TryTransform(miner, KindMinerFull, 0))
	assert.Equal(t, handle, miner.Handle)
	assert.Equal(t, 0, miner.Frame)
	assert.Equal(t, 3, miner.ResourceCount)
	entities := w.Entities()
	assert.Same(t, miner, entities[len(entities)-1])
	_, ok := w.NextDue(miner, ActionAnimate)
	assert.True(t, ok)

	assert.False(t, w.TryTransform(miner, KindMinerFull, 0))
	rock, _ := w.EntityByName("rock")
	assert.False(t, w.TryTransform(rock, KindMinerFull, 0))
}

func TestVeinSpawnsOreInFirstOpenCell(t *testing.T) {
	w := newTestWorld(t, 5, 5)
	vein := place(t, w, NewVein(w, "vein", pt(2, 2), 100, 1))
	w.ScheduleEntity(vein, 0)

	tiles := w.AdvanceTo(101)
	assert.Equal(t, []world.Point{pt(1, 1)}, tiles)

	ore, ok := w.Occupant(pt(1, 1))
	require.True(t, ok)
	assert.Equal(t, KindOre, ore.Kind)
	assert.Equal(t, "ore - vein - 100", ore.Name)
	assert.GreaterOrEqual(t, ore.Rate, int64(DefaultOreCorruptMin))
	assert.LessOrEqual(t, ore.Rate, int64(DefaultOreCorruptMax))
	oreDue, ok := w.NextDue(ore, ActionOreTransform)
	require.True(t, ok)
	assert.Equal(t, 100+ore.Rate, oreDue)

	due, ok := w.NextDue(vein, ActionVein)
	require.True(t, ok)
	assert.Equal(t, int64(200), due)
}

func TestVeinWithoutRoomStillReschedules(t *testing.T) {
	w := newTestWorld(t, 1, 1)
	vein := place(t, w, NewVein(w, "vein", pt(0, 0), 50, 1))
	w.ScheduleEntity(vein, 0)

	assert.Empty(t, w.AdvanceTo(51))
	due, ok := w.NextDue(vein, ActionVein)
	require.True(t, ok)
	assert.Equal(t, int64(100), due)
}

func TestCreateVeinWaitsForSpawnDelay(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	vein := w.CreateVein("vein", pt(1, 1), 40)
	place(t, w, vein)

	assert.GreaterOrEqual(t, vein.Rate, int64(DefaultVeinRateMin))
	assert.LessOrEqual(t, vein.Rate, int64(DefaultVeinRateMax))
	due, ok := w.NextDue(vein, ActionVein)
	require.True(t, ok)
	assert.Equal(t, int64(40+DefaultVeinSpawnDelay), due)
}

func TestOreTurnsIntoBlob(t *testing.T) {
	w := newTestWorld(t, 4, 4)
	ore := place(t, w, NewOre(w, "ore", pt(2, 2), 40))
	w.ScheduleEntity(ore, 0)

	tiles := w.AdvanceTo(41)
	assert.Equal(t, []world.Point{pt(2, 2)}, tiles)
	_, ok := w.Entity(ore.Handle)
	assert.False(t, ok)

	blob, ok := w.Occupant(pt(2, 2))
	require.True(t, ok)
	assert.Equal(t, KindOreBlob, blob.Kind)
	assert.Equal(t, "ore -- blob", blob.Name)
	assert.Equal(t, int64(10), blob.Rate)
	assert.Contains(t, []int64{50, 100, 150}, blob.AnimationRate)
	due, ok := w.NextDue(blob, ActionBlob)
	require.True(t, ok)
	assert.Equal(t, int64(50), due)
	assert.Equal(t, 1, w.Counts()[KindOreBlob])
	assert.NoError(t, w.CheckInvariants())
}

func TestBlobDestroysAdjacentVeinAndSpawnsQuake(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	blob := place(t, w, NewOreBlob(w, "blob", pt(0, 0), 10, 50))
	place(t, w, NewVein(w, "vein", pt(1, 0), 100_000, 1))
	w.ScheduleEntity(blob, 0)

	tiles := w.AdvanceTo(11)
	assert.Equal(t, []world.Point{pt(1, 0)}, tiles)
	assert.Equal(t, 0, w.Counts()[KindVein])

	quake, ok := w.Occupant(pt(1, 0))
	require.True(t, ok)
	assert.Equal(t, KindQuake, quake.Kind)
	assert.True(t, strings.HasPrefix(quake.Name, "quake - blob"))

	due, ok := w.NextDue(blob, ActionBlob)
	require.True(t, ok)
	assert.Equal(t, int64(30), due)
	assert.Equal(t, pt(0, 0), blob.Position)
}

func TestBlobConsumesOreInItsPath(t *testing.T) {
	w := newTestWorld(t, 1, 4)
	blob := place(t, w, NewOreBlob(w, "blob", pt(0, 0), 10, 50))
	ore := place(t, w, NewOre(w, "ore", pt(1, 0), 100_000))
	place(t, w, NewVein(w, "vein", pt(3, 0), 100_000, 1))
	w.ScheduleEntity(blob, 0)
	w.ScheduleEntity(ore, 0)

	w.AdvanceTo(11)
	assert.Equal(t, pt(1, 0), blob.Position)
	_, ok := w.Entity(ore.Handle)
	assert.False(t, ok)
	assert.Equal(t, 0, w.Counts()[KindOre])
	assert.NoError(t, w.CheckInvariants())
}

func TestQuakeAnimatesThenDies(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	quake := place(t, w, w.createQuake("test", pt(1, 1), 100))
	require.Equal(t, 20, len(quake.Frames))

	w.AdvanceTo(100 + DefaultQuakeDuration)
	assert.Equal(t, DefaultQuakeSteps, quake.Frame)
	_, ok := w.Occupant(pt(1, 1))
	assert.True(t, ok)
	_, ok = w.NextDue(quake, ActionAnimate)
	assert.False(t, ok)

	tiles := w.AdvanceTo(100 + DefaultQuakeDuration + 1)
	assert.Equal(t, []world.Point{pt(1, 1)}, tiles)
	assert.False(t, w.IsOccupied(pt(1, 1)))
	assert.Equal(t, 0, w.QueueLen())
}

func TestAnimationRepeatCounts(t *testing.T) {
	w := newTestWorld(t, 1, 1)
	e := place(t, w, NewObstacle(w, "blinker", pt(0, 0)))
	e.Frames = numbered("f", 10)
	e.AnimationRate = 1

	w.ScheduleAnimation(e, 0, 3)
	w.AdvanceTo(100)
	assert.Equal(t, 3, e.Frame)
	assert.Equal(t, 0, w.QueueLen())
}

func TestRatesAreClampedToOneTick(t *testing.T) {
	w := newTestWorld(t, 1, 2)
	miner := place(t, w, NewMiner(w, "miner", pt(0, 0), 1, 0, -5))
	w.ScheduleEntity(miner, 7)

	due, ok := w.NextDue(miner, ActionMiner)
	require.True(t, ok)
	assert.Equal(t, int64(8), due)
	due, ok = w.NextDue(miner, ActionAnimate)
	require.True(t, ok)
	assert.Equal(t, int64(8), due)
}

func TestLongRunKeepsInvariants(t *testing.T) {
	w := newTestWorld(t, 16, 16)
	obs := newRecorder()
	w.observer = obs

	for i, p := range []world.Point{pt(1, 1), pt(14, 2), pt(7, 13)} {
		m := place(t, w, NewMiner(w, "miner"+string(rune('a'+i)), p, 2, 700, 100))
		w.ScheduleEntity(m, 0)
	}
	for i, p := range []world.Point{pt(4, 4), pt(11, 11), pt(3, 12)} {
		v := place(t, w, NewVein(w, "vein"+string(rune('a'+i)), p, 900, 1))
		w.ScheduleEntity(v, 0)
	}
	place(t, w, NewBlacksmith(w, "smith", pt(8, 8), 100, 0, 1))
	for x := 5; x < 11; x++ {
		place(t, w, NewObstacle(w, "wall", pt(x, 6)))
	}

	for tick := int64(500); tick <= 120_000; tick += 500 {
		w.AdvanceTo(tick)
		require.NoError(t, w.CheckInvariants(), "at tick %d", tick)
	}
	assert.Positive(t, obs.fired[ActionMiner])
	assert.Positive(t, obs.fired[ActionVein])
	assert.Positive(t, obs.fired[ActionOreTransform])
	assert.Positive(t, obs.added[KindOreBlob])
}
