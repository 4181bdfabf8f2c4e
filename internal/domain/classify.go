package domain

import "database/sql"

// Angstrom exponent thresholds, inclusive to their classes.
const (
	aeFineMin   = 1.5 // ae >= 1.5 -> fine
	aeCoarseMax = 1.0 // ae <= 1.0 -> coarse
)

// ClassifyParticle maps an Angstrom exponent to a particle-size class.
// The 1.5 and 1.0 boundaries are exact; no rounding tolerance.
func ClassifyParticle(ae sql.NullFloat64) ParticleClass {
	switch {
	case !ae.Valid:
		return ParticleUnknown
	case ae.Float64 >= aeFineMin:
		return ParticleFine
	case ae.Float64 <= aeCoarseMax:
		return ParticleCoarse
	default:
		return ParticleMixed
	}
}

// Classify attaches a particle class to every record in place and
// returns the slice for chaining.
func Classify(records []CleanedRecord) []CleanedRecord {
	for i := range records {
		records[i].Particle = ClassifyParticle(records[i].AngstromExponent)
	}
	return records
}
