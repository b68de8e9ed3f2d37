// Package fermi determines electron and hole quasi-Fermi potentials for a
// doped silicon sample under carrier injection or an induced photovoltage.
// The two entry points are exact duals: FromVoltage applied to the
// photovoltage computed by FromInjection reproduces the same carrier
// state.
package fermi

import (
	"fmt"
	"math"

	"toy-surface/pkg/material"
	"toy-surface/pkg/solver"
)

// CarrierState is the self-consistent carrier population of a sample.
// Concentrations are in cm^-3, potentials in volts. V = PhiP - PhiN by
// construction.
type CarrierState struct {
	N0     float64 // Equilibrium electron concentration
	P0     float64 // Equilibrium hole concentration
	N      float64 // Electron concentration under excitation
	P      float64 // Hole concentration under excitation
	PhiN   float64 // Electron quasi-Fermi potential
	PhiP   float64 // Hole quasi-Fermi potential
	V      float64 // Photovoltage PhiP - PhiN
	DeltaN float64 // Excess carrier density
	Sample material.Sample
}

// FromInjection computes the carrier state for an injected excess density
// deltaN (cm^-3) under the equal-injection assumption n = n0 + deltaN,
// p = p0 + deltaN. Closed form, no iteration.
func FromInjection(deltaN float64, sample material.Sample, params material.Params) (CarrierState, error) {
	n0, p0, err := material.Equilibrium(sample, params)
	if err != nil {
		return CarrierState{}, err
	}

	n := n0 + deltaN
	p := p0 + deltaN
	if n <= 0 || p <= 0 {
		return CarrierState{}, fmt.Errorf("%w: injection %g cm^-3 empties a carrier population (n0=%g, p0=%g)",
			material.ErrDomain, deltaN, n0, p0)
	}

	vt := params.Vt()
	phiN := -vt * math.Log(n/params.Ni)
	phiP := vt * math.Log(p/params.Ni)

	return CarrierState{
		N0:     n0,
		P0:     p0,
		N:      n,
		P:      p,
		PhiN:   phiN,
		PhiP:   phiP,
		V:      phiP - phiN,
		DeltaN: deltaN,
		Sample: sample,
	}, nil
}

// FromVoltage computes the carrier state that sustains the photovoltage v.
// The electron quasi-Fermi potential is the root of the bulk neutrality
// residual n - p - (n0 - p0) = 0 with n = ni*exp(-phiN/Vt) and
// p = ni*exp((phiN+v)/Vt). Newton iteration with the analytic derivative,
// seeded at the charge-neutral potential.
func FromVoltage(v float64, sample material.Sample, params material.Params) (CarrierState, error) {
	n0, p0, err := material.Equilibrium(sample, params)
	if err != nil {
		return CarrierState{}, err
	}

	vt := params.Vt()
	// Residual in units of ni so n-type and p-type share one scale.
	c := (n0 - p0) / params.Ni
	f := func(phiN float64) float64 {
		return math.Exp(-phiN/vt) - math.Exp((phiN+v)/vt) - c
	}
	df := func(phiN float64) float64 {
		return (-math.Exp(-phiN/vt) - math.Exp((phiN+v)/vt)) / vt
	}

	settings := solver.DefaultSettings()
	settings.MaxStep = 4 * vt // damp the flat-side Newton steps

	phiN, _, err := solver.Newton(f, df, 0, settings)
	if err != nil {
		return CarrierState{}, fmt.Errorf("quasi-Fermi solve for V=%g: %w", v, err)
	}

	phiP := phiN + v
	n := params.Ni * math.Exp(-phiN/vt)
	p := params.Ni * math.Exp(phiP/vt)

	return CarrierState{
		N0:     n0,
		P0:     p0,
		N:      n,
		P:      p,
		PhiN:   phiN,
		PhiP:   phiP,
		V:      v,
		DeltaN: ((p - p0) + (n - n0)) / 2,
		Sample: sample,
	}, nil
}
