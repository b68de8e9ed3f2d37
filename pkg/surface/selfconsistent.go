package surface

import (
	"fmt"
	"math"

	"toy-surface/pkg/fermi"
	"toy-surface/pkg/material"
	"toy-surface/pkg/matrix"
	"toy-surface/pkg/solver"
)

// SelfConsistentInputs describes a coupled solve: a photogeneration flux
// feeding the surface, the surface recombination channel that consumes it,
// and the charge environment that sets the band bending. Generation is in
// cm^-2 s^-1, Dit in cm^-2, cross sections in cm^2.
type SelfConsistentInputs struct {
	Sample     material.Sample
	Generation float64
	Nf         float64
	Dit        float64
	SigmaN     float64
	SigmaP     float64
	Traps      TrapDistribution

	// DeltaNGuess seeds the excess-density unknown. Zero picks a default.
	DeltaNGuess float64
}

// SelfConsistentResult is the converged operating point of the coupled
// system. FluxResidual and ChargeResidual are the normalized residuals of
// the two balance equations at the solution.
type SelfConsistentResult struct {
	State          fermi.CarrierState
	PsiS           float64
	Us             float64
	FluxResidual   float64
	ChargeResidual float64
	Iterations     int
}

// SelfConsistentSolver couples the quasi-Fermi, charge-balance and
// recombination models: it finds the excess density and surface potential
// where the generation flux equals the surface recombination rate while
// the total surface charge vanishes. Two unknowns, two equations, Newton
// iteration with a numerical Jacobian solved through the sparse LU
// backend.
type SelfConsistentSolver struct {
	Params   material.Params
	Settings solver.Settings
}

func NewSelfConsistentSolver(params material.Params) *SelfConsistentSolver {
	return &SelfConsistentSolver{
		Params:   params,
		Settings: solver.DefaultSettings(),
	}
}

// Per-iteration step caps. The excess density is iterated in log space,
// so the cap on du is a cap on its multiplicative change.
const (
	maxStepLogDeltaN = 2.0
	maxStepPotential = 0.25
)

func (s *SelfConsistentSolver) Solve(in SelfConsistentInputs) (SelfConsistentResult, error) {
	if in.Generation <= 0 {
		return SelfConsistentResult{}, fmt.Errorf("%w: generation flux must be positive, got %g",
			material.ErrInvalidArgument, in.Generation)
	}
	if err := in.Sample.Validate(); err != nil {
		return SelfConsistentResult{}, err
	}
	if in.Traps == nil {
		in.Traps = NoTraps{}
	}

	deltaN0 := in.DeltaNGuess
	if deltaN0 <= 0 {
		deltaN0 = 1e12 // cm^-3
	}

	mat, err := matrix.NewSystemMatrix(2)
	if err != nil {
		return SelfConsistentResult{}, err
	}
	defer mat.Destroy()
	mat.SetupElements()

	// Unknowns: x[0] = ln(deltaN), x[1] = psiS.
	x := [2]float64{math.Log(deltaN0), potentialSeed}

	var res SelfConsistentResult
	f, err := s.residuals(x, in, &res)
	if err != nil {
		return SelfConsistentResult{}, err
	}

	for iter := range s.Settings.MaxIter {
		if err := s.stampJacobian(mat, x, f, in); err != nil {
			return SelfConsistentResult{}, err
		}
		if err := mat.Solve(); err != nil {
			return SelfConsistentResult{}, fmt.Errorf("%w: %v", solver.ErrConvergence, err)
		}

		sol := mat.Solution()
		du := clamp(sol[1], maxStepLogDeltaN)
		dpsi := clamp(sol[2], maxStepPotential)

		xNew := [2]float64{x[0] + du, x[1] + dpsi}
		fNew, err := s.residuals(xNew, in, &res)
		if err != nil {
			return SelfConsistentResult{}, err
		}

		if s.Settings.Converged(x[0], xNew[0]) && s.Settings.Converged(x[1], xNew[1]) &&
			math.Abs(fNew[0]) < s.Settings.RelTol && math.Abs(fNew[1]) < s.Settings.RelTol {
			res.Iterations = iter + 1
			res.FluxResidual = fNew[0]
			res.ChargeResidual = fNew[1]
			return res, nil
		}

		x, f = xNew, fNew
	}

	return SelfConsistentResult{}, fmt.Errorf("%w: self-consistent solve failed in %d iterations",
		solver.ErrConvergence, s.Settings.MaxIter)
}

// residuals evaluates the normalized balance equations at x and fills res
// with the physical state at that point.
func (s *SelfConsistentSolver) residuals(x [2]float64, in SelfConsistentInputs, res *SelfConsistentResult) ([2]float64, error) {
	deltaN := math.Exp(x[0])
	psiS := x[1]

	state, err := fermi.FromInjection(deltaN, in.Sample, s.Params)
	if err != nil {
		return [2]float64{}, err
	}

	ns, ps := SurfaceConcentrations(psiS, state, s.Params)
	us, err := Recombination(ns, ps, in.Dit, in.SigmaN, in.SigmaP, s.Params)
	if err != nil {
		return [2]float64{}, err
	}

	qsi := BulkCharge(psiS, state, s.Params)
	qf := FixedCharge(in.Nf, s.Params)
	qit := in.Traps.Charge(psiS, state, s.Params)
	qtot := qsi + qf + qit

	// Charge scale: the balancing contributions themselves, with the
	// prefactor as a floor so flat bands do not divide by zero.
	qScale := math.Abs(qsi) + math.Abs(qf) + math.Abs(qit) + ChargePrefactor(s.Params)

	res.State = state
	res.PsiS = psiS
	res.Us = us

	return [2]float64{
		(us - in.Generation) / in.Generation,
		qtot / qScale,
	}, nil
}

// stampJacobian loads the forward-difference Jacobian and -f into the
// system matrix.
func (s *SelfConsistentSolver) stampJacobian(mat *matrix.SystemMatrix, x [2]float64, f [2]float64, in SelfConsistentInputs) error {
	mat.Clear()

	var scratch SelfConsistentResult
	for j := range 2 {
		h := 1e-6 * math.Max(math.Abs(x[j]), 1)
		xp := x
		xp[j] += h

		fp, err := s.residuals(xp, in, &scratch)
		if err != nil {
			return err
		}
		for i := range 2 {
			if err := mat.AddElement(i+1, j+1, (fp[i]-f[i])/h); err != nil {
				return err
			}
		}
	}

	for i := range 2 {
		if err := mat.AddRHS(i+1, -f[i]); err != nil {
			return err
		}
	}
	return nil
}

func clamp(v, limit float64) float64 {
	if math.Abs(v) > limit {
		return math.Copysign(limit, v)
	}
	return v
}
