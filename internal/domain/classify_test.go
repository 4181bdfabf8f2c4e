package domain

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyParticle(t *testing.T) {
	tests := []struct {
		name     string
		ae       sql.NullFloat64
		expected ParticleClass
	}{
		{"missing exponent", sql.NullFloat64{}, ParticleUnknown},
		{"boundary 1.5 is fine", nf(1.5), ParticleFine},
		{"above fine threshold", nf(2.1), ParticleFine},
		{"boundary 1.0 is coarse", nf(1.0), ParticleCoarse},
		{"below coarse threshold", nf(0.3), ParticleCoarse},
		{"negative exponent", nf(-0.2), ParticleCoarse},
		{"midpoint 1.25 is mixed", nf(1.25), ParticleMixed},
		{"just above coarse boundary", nf(1.0000001), ParticleMixed},
		{"just below fine boundary", nf(1.4999999), ParticleMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyParticle(tt.ae))
		})
	}
}

func TestClassify(t *testing.T) {
	records := []CleanedRecord{
		{Site: "A", AngstromExponent: nf(1.6)},
		{Site: "B", AngstromExponent: nf(0.8)},
		{Site: "C"},
	}

	out := Classify(records)

	assert.Equal(t, ParticleFine, out[0].Particle)
	assert.Equal(t, ParticleCoarse, out[1].Particle)
	assert.Equal(t, ParticleUnknown, out[2].Particle)
}
