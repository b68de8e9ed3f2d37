// Package surface models the electrostatics of a silicon surface: bulk
// semiconductor charge as a function of surface potential, fixed
// oxide-interface charge, an interface-trap extension point, and the
// balance solve that pins the surface potential where total charge
// vanishes.
package surface

import (
	"fmt"
	"math"

	"toy-surface/internal/consts"
	"toy-surface/pkg/fermi"
	"toy-surface/pkg/material"
	"toy-surface/pkg/solver"
)

// ChargeInputs collects everything the surface-potential balance needs.
// Nf is the fixed oxide-interface charge density in cm^-2. GateVoltage and
// OxideThickness describe the gate stack; they are accepted and exposed
// through OxideCapacitance but the gate term is not yet part of the
// balance equation.
//
// TODO: add the Cox*(GateVoltage - psiS) term to TotalCharge.
type ChargeInputs struct {
	State          fermi.CarrierState
	Nf             float64 // Fixed interface charge density (cm^-2)
	GateVoltage    float64 // Applied gate voltage (V)
	OxideThickness float64 // Oxide thickness (m)
}

// OxideCapacitance is the areal oxide capacitance (F/m^2), zero when no
// oxide thickness is set.
func (in ChargeInputs) OxideCapacitance(params material.Params) float64 {
	if in.OxideThickness <= 0 {
		return 0
	}
	return consts.EPS0 * params.EpsOx / in.OxideThickness
}

// PotentialResult is the outcome of a surface-potential balance solve.
// Residual is the total charge left at PsiS; at convergence it is
// negligible against the charge prefactor.
type PotentialResult struct {
	PsiS     float64 // Surface potential (V)
	Residual float64 // Total charge at PsiS (C/m^2)
}

// ChargePrefactor is sqrt(2*q*kT*ni*eps0*epsSi) in C/m^2, the scale of the
// bulk silicon charge. The intrinsic concentration enters in m^-3.
func ChargePrefactor(params material.Params) float64 {
	niSI := material.PerCm3ToPerM3(params.Ni)
	kt := consts.BOLTZMANN * params.Temp
	return math.Sqrt(2 * consts.CHARGE * kt * niSI * consts.EPS0 * params.EpsSi)
}

// BulkF is the dimensionless band-bending function multiplying the charge
// prefactor: the excess hole population minus the excess electron
// population at the surface, less the uncovered dopant term. Positive
// band bending accumulates holes (p_s = p*exp(psiS/Vt)). BulkF(0) = 0 for
// both branches: flat bands carry no bulk charge. The p-type branch keeps
// the carrier terms, written in the sample's own quasi-Fermi potentials,
// and flips the sign of the dopant term (acceptors carry -N).
func BulkF(psiS float64, state fermi.CarrierState, params material.Params) float64 {
	vt := params.Vt()
	dopingTerm := psiS * state.Sample.Doping / (params.Ni * vt)
	if state.Sample.Type == material.PType {
		dopingTerm = -dopingTerm
	}

	return math.Exp((state.PhiP+psiS)/vt) - math.Exp(state.PhiP/vt) -
		math.Exp((-psiS-state.PhiN)/vt) + math.Exp(-state.PhiN/vt) -
		dopingTerm
}

// BulkCharge is the bulk silicon charge density (C/m^2) at surface
// potential psiS.
func BulkCharge(psiS float64, state fermi.CarrierState, params material.Params) float64 {
	return ChargePrefactor(params) * BulkF(psiS, state, params)
}

// FixedCharge is the charge density (C/m^2) of the fixed oxide-interface
// charge Nf (cm^-2). Constant in psiS, so its contribution to any
// Jacobian is exactly zero.
func FixedCharge(nf float64, params material.Params) float64 {
	return consts.CHARGE * material.PerCm2ToPerM2(nf)
}

// TrapDistribution supplies the interface-trap charge at a given surface
// potential. The contract is the Fermi-Dirac-weighted occupation integral
//
//	Qit(psiS) = integral of q*Dit(E)*(occupation(E, psiS) - reference) dE
//
// over the trap energy distribution. No distribution is shipped; NoTraps
// stands in until one is measured.
type TrapDistribution interface {
	Charge(psiS float64, state fermi.CarrierState, params material.Params) float64
}

// NoTraps is the trap-free surface: zero trap charge at every potential.
type NoTraps struct{}

func (NoTraps) Charge(float64, fermi.CarrierState, material.Params) float64 { return 0 }

// TotalCharge is the residual of the surface balance: bulk silicon charge
// plus fixed charge plus interface-trap charge (C/m^2).
func TotalCharge(psiS float64, in ChargeInputs, traps TrapDistribution, params material.Params) float64 {
	if traps == nil {
		traps = NoTraps{}
	}
	return BulkCharge(psiS, in.State, params) +
		FixedCharge(in.Nf, params) +
		traps.Charge(psiS, in.State, params)
}

// Balance solve seed and bracket expansion bounds. The root moves only
// Vt per e-fold of the balancing charge, so the 4 V span covers fixed
// charge densities far beyond anything physical.
const (
	potentialSeed  = 0.5 // V
	bracketSpanMax = 4.0 // V
)

// SolvePotential finds the surface potential where the total charge
// vanishes. The trap term has no closed-form derivative, so the solve is
// derivative-free: expand a bracket around the seed until the residual
// changes sign, then hand the bracket to the scalar solver.
func SolvePotential(in ChargeInputs, traps TrapDistribution, params material.Params) (PotentialResult, error) {
	f := func(psiS float64) float64 {
		return TotalCharge(psiS, in, traps, params)
	}

	lo, hi, err := expandBracket(f, potentialSeed)
	if err != nil {
		return PotentialResult{}, err
	}

	root, residual, err := solver.Secant(f, lo, hi, solver.DefaultSettings())
	if err != nil {
		return PotentialResult{}, fmt.Errorf("surface potential solve: %w", err)
	}

	return PotentialResult{PsiS: root, Residual: residual}, nil
}

// expandBracket widens an interval around the seed until f changes sign.
func expandBracket(f solver.Func, seed float64) (lo, hi float64, err error) {
	fSeed := f(seed)
	if fSeed == 0 {
		return seed, seed, nil
	}

	for span := 0.25; span <= bracketSpanMax; span *= 2 {
		lo, hi = seed-span, seed+span
		if f(lo)*fSeed < 0 {
			return lo, seed, nil
		}
		if f(hi)*fSeed < 0 {
			return seed, hi, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: no sign change within %g V of seed %g",
		solver.ErrConvergence, bracketSpanMax, seed)
}

// SurfaceConcentrations evaluates the carrier concentrations (cm^-3) at
// the surface for band bending psiS, in the same convention as BulkF:
// holes follow exp(psiS/Vt), electrons the inverse, so ns*ps stays at the
// bulk n*p.
func SurfaceConcentrations(psiS float64, state fermi.CarrierState, params material.Params) (ns, ps float64) {
	vt := params.Vt()
	ns = state.N * math.Exp(-psiS/vt)
	ps = state.P * math.Exp(psiS/vt)
	return ns, ps
}
