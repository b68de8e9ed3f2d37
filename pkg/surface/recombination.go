package surface

import (
	"fmt"

	"toy-surface/pkg/material"
)

// Recombination evaluates the steady-state surface recombination rate
// (cm^-2 s^-1) for a single midgap trap level:
//
//	Us = (ns*ps - ni^2) * Dit / ((ns+n1)/sigmaP + (ps+p1)/sigmaN)
//
// with n1 = p1 = ni for a trap exactly at midgap. ns, ps are the surface
// carrier concentrations in cm^-3, dit the trap density in cm^-2, sigmaN
// and sigmaP the capture cross sections in cm^2. At equilibrium
// (ns*ps = ni^2) the rate is zero for any trap density.
func Recombination(ns, ps, dit, sigmaN, sigmaP float64, params material.Params) (float64, error) {
	if ns <= 0 || ps <= 0 {
		return 0, fmt.Errorf("%w: surface concentrations must be positive (ns=%g, ps=%g)",
			material.ErrDomain, ns, ps)
	}
	if sigmaN <= 0 || sigmaP <= 0 {
		return 0, fmt.Errorf("%w: capture cross sections must be positive (sigmaN=%g, sigmaP=%g)",
			material.ErrDomain, sigmaN, sigmaP)
	}
	if dit < 0 {
		return 0, fmt.Errorf("%w: trap density must not be negative, got %g", material.ErrDomain, dit)
	}

	n1 := params.Ni // midgap trap
	p1 := params.Ni

	denom := (ns+n1)/sigmaP + (ps+p1)/sigmaN
	if denom <= 0 {
		return 0, fmt.Errorf("%w: non-positive recombination denominator %g", material.ErrDomain, denom)
	}

	return (ns*ps - params.Ni*params.Ni) * dit / denom, nil
}
