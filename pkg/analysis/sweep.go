package analysis

import (
	"fmt"
	"math"

	"toy-surface/pkg/fermi"
	"toy-surface/pkg/surface"
)

// InjectionSweep runs the pipeline over a logarithmically spaced range of
// excess carrier densities. Sweep values land under KeySweep, per-point
// outputs under the shared result keys.
type InjectionSweep struct {
	*BaseAnalysis
	cfg       Config
	sweepVals []float64
}

// NewInjectionSweep spans [start, stop] cm^-3 with pointsPerDecade points
// per decade.
func NewInjectionSweep(cfg Config, start, stop float64, pointsPerDecade int) (*InjectionSweep, error) {
	if start <= 0 || stop <= start {
		return nil, fmt.Errorf("invalid sweep range [%g, %g]", start, stop)
	}
	if pointsPerDecade < 1 {
		pointsPerDecade = 1
	}

	sw := &InjectionSweep{
		BaseAnalysis: NewBaseAnalysis(),
		cfg:          cfg,
	}

	logStart := math.Log10(start)
	logStop := math.Log10(stop)
	step := 1.0 / float64(pointsPerDecade)
	for lg := logStart; lg <= logStop+step/2; lg += step {
		sw.sweepVals = append(sw.sweepVals, math.Pow(10, lg))
	}

	return sw, nil
}

func (sw *InjectionSweep) Execute() error {
	for _, deltaN := range sw.sweepVals {
		state, err := fermi.FromInjection(deltaN, sw.cfg.Sample, sw.cfg.Params)
		if err != nil {
			return fmt.Errorf("sweep at deltaN=%g: %w", deltaN, err)
		}

		inputs := surface.ChargeInputs{
			State:          state,
			Nf:             sw.cfg.Nf,
			GateVoltage:    sw.cfg.GateVoltage,
			OxideThickness: sw.cfg.OxideThickness,
		}
		pot, err := surface.SolvePotential(inputs, sw.cfg.Traps, sw.cfg.Params)
		if err != nil {
			return fmt.Errorf("sweep at deltaN=%g: %w", deltaN, err)
		}

		ns, ps := surface.SurfaceConcentrations(pot.PsiS, state, sw.cfg.Params)
		us, err := surface.Recombination(ns, ps, sw.cfg.Dit, sw.cfg.SigmaN, sw.cfg.SigmaP, sw.cfg.Params)
		if err != nil {
			return fmt.Errorf("sweep at deltaN=%g: %w", deltaN, err)
		}

		sw.Store(KeySweep, deltaN)
		sw.Store(KeyV, state.V)
		sw.Store(KeyPhiN, state.PhiN)
		sw.Store(KeyPhiP, state.PhiP)
		sw.Store(KeyPsiS, pot.PsiS)
		sw.Store(KeyQRes, pot.Residual)
		sw.Store(KeyNs, ns)
		sw.Store(KeyPs, ps)
		sw.Store(KeyUs, us)
	}

	return nil
}
