package sim

const (
	DefaultBlobRateScale          = 4
	DefaultBlobAnimationRateScale = 50
	DefaultBlobAnimationMin       = 1
	DefaultBlobAnimationMax       = 3

	DefaultOreCorruptMin = 20000
	DefaultOreCorruptMax = 30000

	DefaultQuakeSteps         = 10
	DefaultQuakeDuration      = 1100
	DefaultQuakeAnimationRate = 100

	DefaultVeinSpawnDelay = 500
	DefaultVeinRateMin    = 8000
	DefaultVeinRateMax    = 17000

	// A rate below one tick would keep rescheduling inside the same advance.
	minRate = 1
)

// Tuning holds every behaviour constant. Ticks are int64 throughout.
type Tuning struct {
	BlobRateScale          int64
	BlobAnimationRateScale int64
	BlobAnimationMin       int64
	BlobAnimationMax       int64

	OreCorruptMin int64
	OreCorruptMax int64

	QuakeSteps         int
	QuakeDuration      int64
	QuakeAnimationRate int64

	VeinSpawnDelay int64
	VeinRateMin    int64
	VeinRateMax    int64
}

func DefaultTuning() Tuning {
	return Tuning{
		BlobRateScale:          DefaultBlobRateScale,
		BlobAnimationRateScale: DefaultBlobAnimationRateScale,
		BlobAnimationMin:       DefaultBlobAnimationMin,
		BlobAnimationMax:       DefaultBlobAnimationMax,
		OreCorruptMin:          DefaultOreCorruptMin,
		OreCorruptMax:          DefaultOreCorruptMax,
		QuakeSteps:             DefaultQuakeSteps,
		QuakeDuration:          DefaultQuakeDuration,
		QuakeAnimationRate:     DefaultQuakeAnimationRate,
		VeinSpawnDelay:         DefaultVeinSpawnDelay,
		VeinRateMin:            DefaultVeinRateMin,
		VeinRateMax:            DefaultVeinRateMax,
	}
}

// Normalized fills non-positive knobs with their defaults.
func (t Tuning) Normalized() Tuning {
	def := DefaultTuning()
	if t.BlobRateScale <= 0 {
		t.BlobRateScale = def.BlobRateScale
	}
	if t.BlobAnimationRateScale <= 0 {
		t.BlobAnimationRateScale = def.BlobAnimationRateScale
	}
	if t.BlobAnimationMin <= 0 {
		t.BlobAnimationMin = def.BlobAnimationMin
	}
	if t.BlobAnimationMax <= 0 {
		t.BlobAnimationMax = def.BlobAnimationMax
	}
	if t.OreCorruptMin <= 0 {
		t.OreCorruptMin = def.OreCorruptMin
	}
	if t.OreCorruptMax <= 0 {
		t.OreCorruptMax = def.OreCorruptMax
	}
	if t.QuakeSteps <= 0 {
		t.QuakeSteps = def.QuakeSteps
	}
	if t.QuakeDuration <= 0 {
		t.QuakeDuration = def.QuakeDuration
	}
	if t.QuakeAnimationRate <= 0 {
		t.QuakeAnimationRate = def.QuakeAnimationRate
	}
	if t.VeinSpawnDelay <= 0 {
		t.VeinSpawnDelay = def.VeinSpawnDelay
	}
	if t.VeinRateMin <= 0 {
		t.VeinRateMin = def.VeinRateMin
	}
	if t.VeinRateMax <= 0 {
		t.VeinRateMax = def.VeinRateMax
	}
	return t
}
