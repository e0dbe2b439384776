package wavegen

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/toejough/maze-defence/internal/simcore"
)

// deriveBaseSeed folds the world's global seed, the wave number, and the
// effective tier into a single SHA-256-derived seed. Every per-wave stream
// branches from this one value.
func deriveBaseSeed(globalSeed uint64, wave simcore.WaveId, tier uint32) uint64 {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], globalSeed)
	h.Write(buf[:])
	var waveBuf [4]byte
	binary.LittleEndian.PutUint32(waveBuf[:], uint32(wave))
	h.Write(waveBuf[:])
	var tierBuf [4]byte
	binary.LittleEndian.PutUint32(tierBuf[:], tier)
	h.Write(tierBuf[:])
	return finalizeSeed(h.Sum(nil))
}

// deriveLabeledSeed branches a named stream (pressure, dirichlet) off the
// base seed.
func deriveLabeledSeed(base uint64, label string) uint64 {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], base)
	h.Write(buf[:])
	h.Write([]byte(label))
	return finalizeSeed(h.Sum(nil))
}

// deriveSpeciesSeed branches a species-private stream off the base seed.
func deriveSpeciesSeed(base uint64, species simcore.SpeciesId) uint64 {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], base)
	h.Write(buf[:])
	h.Write([]byte(simcore.RNGStreamSpecies))
	var speciesBuf [4]byte
	binary.LittleEndian.PutUint32(speciesBuf[:], uint32(species))
	h.Write(speciesBuf[:])
	return finalizeSeed(h.Sum(nil))
}

func finalizeSeed(digest []byte) uint64 {
	return binary.LittleEndian.Uint64(digest[:8])
}
