package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toy-surface/pkg/fermi"
	"toy-surface/pkg/material"
)

func testConfig() Config {
	return Config{
		Params: material.Silicon(),
		Sample: material.Sample{Type: material.NType, Doping: 1e15},
		Nf:     1e12,
		Dit:    1e10,
		SigmaN: 1e-15,
		SigmaP: 1e-15,
	}
}

func TestOperatingPoint(t *testing.T) {
	cfg := testConfig()

	state, err := fermi.FromInjection(1e13, cfg.Sample, cfg.Params)
	require.NoError(t, err)

	op := NewOP(cfg)
	require.NoError(t, op.Run(state))

	results := op.GetResults()
	for _, key := range []string{KeyV, KeyPhiN, KeyPhiP, KeyDeltaN, KeyPsiS, KeyQRes, KeyNs, KeyPs, KeyUs} {
		require.Len(t, results[key], 1, "missing key %s", key)
	}

	assert.Equal(t, state.V, results[KeyV][0])
	assert.Equal(t, 1e13, results[KeyDeltaN][0])
	assert.Greater(t, results[KeyUs][0], 0.0)
}

func TestInjectionSweep(t *testing.T) {
	sw, err := NewInjectionSweep(testConfig(), 1e11, 1e13, 1)
	require.NoError(t, err)
	require.NoError(t, sw.Execute())

	results := sw.GetResults()
	sweep := results[KeySweep]
	require.Len(t, sweep, 3) // 1e11, 1e12, 1e13

	// Photovoltage grows with injection.
	vs := results[KeyV]
	require.Len(t, vs, len(sweep))
	for i := 1; i < len(vs); i++ {
		assert.Greater(t, vs[i], vs[i-1])
	}

	// Every point converged to a solved surface.
	for _, key := range []string{KeyPsiS, KeyUs, KeyNs, KeyPs} {
		assert.Len(t, results[key], len(sweep))
	}
}

func TestInjectionSweepBadRange(t *testing.T) {
	_, err := NewInjectionSweep(testConfig(), 0, 1e13, 2)
	require.Error(t, err)

	_, err = NewInjectionSweep(testConfig(), 1e13, 1e12, 2)
	require.Error(t, err)
}
