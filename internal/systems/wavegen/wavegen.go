package wavegen

import (
	"math"
	"sort"

	"github.com/toejough/maze-defence/internal/simcore"
)

const twoPi = math.Pi * 2.0

// System is a pure reactor that turns GenerateAttackPlan commands into
// AttackPlanReady events, reusing a Dirichlet scratch buffer across calls.
type System struct {
	dirichletWorkspace []float64
}

// Handle consumes commands and the current species/patch configuration to
// produce one AttackPlanReady event per GenerateAttackPlan command.
func (s *System) Handle(commands []simcore.Command, species simcore.SpeciesTableView, patches simcore.SpawnPatchTableView, pressure simcore.PressureConfig, seedContext simcore.WaveSeedContext, out *[]simcore.Event) {
	if len(species.Species) == 0 {
		for _, cmd := range commands {
			if cmd.Kind == simcore.CommandGenerateAttackPlan {
				*out = append(*out, simcore.AttackPlanReady(simcore.AttackPlan{Wave: cmd.SeedContext.Wave}))
			}
		}
		return
	}

	validPatches := patches.ValidPatches()

	for _, cmd := range commands {
		if cmd.Kind != simcore.CommandGenerateAttackPlan {
			continue
		}
		plan := s.generatePlan(cmd.SeedContext, species, validPatches, pressure)
		*out = append(*out, simcore.AttackPlanReady(plan))
	}
}

func (s *System) generatePlan(seedContext simcore.WaveSeedContext, species simcore.SpeciesTableView, validPatches map[simcore.SpawnPatchId]struct{}, pressureConfig simcore.PressureConfig) simcore.AttackPlan {
	curve := pressureConfig.Curve
	mean := float64(curve.MeanMicros)
	deviation := float64(curve.StdDevMicros)
	effectiveTier := seedContext.EffectiveTier()
	pressureScalar := effectiveTier + 1

	baseSeed := deriveBaseSeed(seedContext.GlobalSeed, seedContext.Wave, effectiveTier)
	pressureRNG := newSplitMix64(deriveLabeledSeed(baseSeed, simcore.RNGStreamPressure))
	dirichletRNG := newSplitMix64(deriveLabeledSeed(baseSeed, simcore.RNGStreamDirichlet))

	sampledPressure := samplePressure(mean, deviation, pressureRNG)
	pressureValue := saturatingMulPressure(simcore.Pressure(sampledPressure), pressureScalar)
	if pressureValue == 0 {
		return simcore.AttackPlan{Wave: seedContext.Wave, Budget: 0}
	}

	ordered := append([]simcore.SpeciesDefinition(nil), species.Species...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	s.prepareDirichletWorkspace(len(ordered))
	proportions := sampleDirichlet(dirichletRNG, ordered, s.dirichletWorkspace)

	pressureBudget := uint32(pressureValue)
	var bursts []simcore.BurstPlan

	for i, definition := range ordered {
		if _, ok := validPatches[definition.Patch]; !ok {
			continue
		}

		count := resolveSpeciesCount(pressureBudget, proportions[i], definition.Weight, definition.MinBurstSpawn, definition.MaxPopulation)
		if count == 0 {
			continue
		}

		speciesRNG := newSplitMix64(deriveSpeciesSeed(baseSeed, definition.ID))
		cadence := sampleCadence(definition.Scheduling.Cadence, speciesRNG)
		starts, sizes := sampleBurstStarts(count, definition.Scheduling, speciesRNG)

		bursts = append(bursts, simcore.BurstPlan{
			Species:   definition.ID,
			Patch:     definition.Patch,
			CadenceMs: cadence,
			StartsMs:  starts,
			CountEach: sizes,
		})
	}

	return simcore.AttackPlan{Wave: seedContext.Wave, Budget: pressureValue, Bursts: bursts}
}

func (s *System) prepareDirichletWorkspace(capacity int) {
	if len(s.dirichletWorkspace) < capacity {
		grown := make([]float64, capacity)
		copy(grown, s.dirichletWorkspace)
		s.dirichletWorkspace = grown
	}
}

func saturatingMulPressure(p simcore.Pressure, scalar uint32) simcore.Pressure {
	product := uint64(p) * uint64(scalar)
	if product > uint64(^uint32(0)) {
		return simcore.Pressure(^uint32(0))
	}
	return simcore.Pressure(product)
}

func samplePressure(mean, deviation float64, rng *splitMix64) uint32 {
	var sample float64
	if deviation == 0.0 {
		sample = mean
	} else {
		normal := sampleStandardNormal(rng)
		sample = mean + deviation*normal
	}

	if sample <= 0.0 {
		return 0
	}

	rounded := math.Round(sample)
	if rounded > float64(^uint32(0)) {
		rounded = float64(^uint32(0))
	}
	if rounded < 0 {
		rounded = 0
	}
	return uint32(rounded)
}

func sampleStandardNormal(rng *splitMix64) float64 {
	u1 := rng.nextUnitOpen()
	u2 := rng.nextUnit()
	radius := math.Sqrt(-2.0 * math.Log(u1))
	theta := twoPi * u2
	return radius * math.Cos(theta)
}

func sampleDirichlet(rng *splitMix64, species []simcore.SpeciesDefinition, workspace []float64) []float64 {
	total := 0.0
	for i, definition := range species {
		shape := uint32(definition.Dirichlet)
		sample := sampleGammaInteger(rng, shape)
		workspace[i] = sample
		total += sample
	}

	result := make([]float64, len(species))
	if total <= math.SmallestNonzeroFloat64 {
		uniform := 1.0 / float64(len(species))
		for i := range result {
			result[i] = uniform
		}
		return result
	}

	for i := range species {
		result[i] = workspace[i] / total
	}
	return result
}

func sampleGammaInteger(rng *splitMix64, shape uint32) float64 {
	if shape == 0 {
		return 0.0
	}
	sum := 0.0
	for i := uint32(0); i < shape; i++ {
		u := rng.nextUnitOpen()
		sum -= math.Log(u)
	}
	return sum
}

func resolveSpeciesCount(pressureBudget uint32, proportion float64, weight simcore.PressureWeight, minBurstSpawn, maxPopulation uint32) uint32 {
	if pressureBudget == 0 {
		return 0
	}

	target := math.Round(float64(pressureBudget) * proportion)
	if target <= 0.0 {
		return 0
	}

	numerator := uint64(target) * uint64(simcore.PressureFixedPointScale)
	denominator := uint64(weight)
	if denominator == 0 {
		return 0
	}
	count := uint32(numerator / denominator)

	if count > 0 && count < minBurstSpawn {
		count = minBurstSpawn
	}
	if count > maxPopulation {
		count = maxPopulation
	}
	return count
}

func sampleCadence(cadence simcore.CadenceRange, rng *splitMix64) uint32 {
	return sampleUniformInclusive(rng, cadence.MinMs, cadence.MaxMs)
}

// sampleBurstStarts splits count into bursts per scheduling's nominal burst
// size and burst cap, then schedules their start offsets: an initial
// jitter in [0, gapMin], followed by successive gaps uniform in
// [gapMin, gapMax].
func sampleBurstStarts(count uint32, scheduling simcore.BurstSchedulingConfig, rng *splitMix64) (starts []uint32, sizes []uint32) {
	burstCount := resolveBurstCount(count, scheduling)
	base := count / burstCount
	leftover := count % burstCount

	sizes = make([]uint32, burstCount)
	for i := uint32(0); i < burstCount; i++ {
		size := base
		if i < leftover {
			size++
		}
		if size < 1 {
			size = 1
		}
		sizes[i] = size
	}

	starts = make([]uint32, burstCount)
	jitter := sampleUniformInclusive(rng, 0, scheduling.Gap.MinMs)
	current := jitter
	for i := uint32(0); i < burstCount; i++ {
		starts[i] = current
		if i+1 < burstCount {
			gap := sampleUniformInclusive(rng, scheduling.Gap.MinMs, scheduling.Gap.MaxMs)
			current = saturatingAddU32(current, gap)
		}
	}

	return starts, sizes
}

func resolveBurstCount(totalCount uint32, scheduling simcore.BurstSchedulingConfig) uint32 {
	nominal := scheduling.NominalBurstSize
	maxBursts := scheduling.BurstCountMax
	var burstCount uint32
	if nominal == 0 {
		burstCount = 1
	} else {
		burstCount = (totalCount + nominal - 1) / nominal
		if burstCount < 1 {
			burstCount = 1
		}
	}
	if burstCount > maxBursts {
		burstCount = maxBursts
	}
	if burstCount < 1 {
		burstCount = 1
	}
	return burstCount
}

func sampleUniformInclusive(rng *splitMix64, min, max uint32) uint32 {
	if min == max {
		return min
	}
	rangeSize := uint64(max-min) + 1
	value := rng.nextU64()
	offset := value % rangeSize
	return saturatingAddU32(min, uint32(offset))
}

func saturatingAddU32(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}
