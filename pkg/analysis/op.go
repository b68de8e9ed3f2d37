package analysis

import (
	"fmt"

	"toy-surface/pkg/fermi"
	"toy-surface/pkg/surface"
)

// OperatingPoint evaluates the surface for one carrier state: solve the
// charge balance for the surface potential, then the recombination rate
// there.
type OperatingPoint struct {
	*BaseAnalysis
	cfg Config
}

func NewOP(cfg Config) *OperatingPoint {
	return &OperatingPoint{
		BaseAnalysis: NewBaseAnalysis(),
		cfg:          cfg,
	}
}

// Run solves the surface for the given carrier state and stores one value
// per result key.
func (op *OperatingPoint) Run(state fermi.CarrierState) error {
	inputs := surface.ChargeInputs{
		State:          state,
		Nf:             op.cfg.Nf,
		GateVoltage:    op.cfg.GateVoltage,
		OxideThickness: op.cfg.OxideThickness,
	}

	pot, err := surface.SolvePotential(inputs, op.cfg.Traps, op.cfg.Params)
	if err != nil {
		return fmt.Errorf("operating point: %w", err)
	}

	ns, ps := surface.SurfaceConcentrations(pot.PsiS, state, op.cfg.Params)

	us, err := surface.Recombination(ns, ps, op.cfg.Dit, op.cfg.SigmaN, op.cfg.SigmaP, op.cfg.Params)
	if err != nil {
		return fmt.Errorf("operating point: %w", err)
	}

	op.Store(KeyV, state.V)
	op.Store(KeyPhiN, state.PhiN)
	op.Store(KeyPhiP, state.PhiP)
	op.Store(KeyDeltaN, state.DeltaN)
	op.Store(KeyPsiS, pot.PsiS)
	op.Store(KeyQRes, pot.Residual)
	op.Store(KeyNs, ns)
	op.Store(KeyPs, ps)
	op.Store(KeyUs, us)

	return nil
}
