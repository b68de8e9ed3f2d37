// Package analysis runs the surface-physics pipeline — quasi-Fermi solve,
// surface-potential balance, recombination rate — for single operating
// points and for injection sweeps, collecting results keyed by variable
// name.
package analysis

import (
	"toy-surface/pkg/material"
	"toy-surface/pkg/surface"
)

// Result keys stored by the analyses.
const (
	KeySweep  = "SWEEP1"
	KeyV      = "V"      // Photovoltage (V)
	KeyPhiN   = "PHIN"   // Electron quasi-Fermi potential (V)
	KeyPhiP   = "PHIP"   // Hole quasi-Fermi potential (V)
	KeyDeltaN = "DELTAN" // Excess density (cm^-3)
	KeyPsiS   = "PSIS"   // Surface potential (V)
	KeyQRes   = "QRES"   // Charge residual at the solution (C/m^2)
	KeyNs     = "NS"     // Surface electron concentration (cm^-3)
	KeyPs     = "PS"     // Surface hole concentration (cm^-3)
	KeyUs     = "US"     // Surface recombination rate (cm^-2 s^-1)
)

// Config is the shared description of the surface under study.
type Config struct {
	Params         material.Params
	Sample         material.Sample
	Nf             float64 // Fixed interface charge (cm^-2)
	Dit            float64 // Midgap trap density (cm^-2)
	SigmaN         float64 // Electron capture cross section (cm^2)
	SigmaP         float64 // Hole capture cross section (cm^2)
	GateVoltage    float64
	OxideThickness float64
	Traps          surface.TrapDistribution
}

type BaseAnalysis struct {
	results map[string][]float64 // key: variable name, value: result per point
}

func NewBaseAnalysis() *BaseAnalysis {
	return &BaseAnalysis{results: make(map[string][]float64)}
}

func (a *BaseAnalysis) Store(name string, value float64) {
	a.results[name] = append(a.results[name], value)
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}
