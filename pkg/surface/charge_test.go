package surface

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toy-surface/internal/consts"
	"toy-surface/pkg/fermi"
	"toy-surface/pkg/material"
)

var silicon = material.Silicon()

func nTypeState(t *testing.T, doping, deltaN float64) fermi.CarrierState {
	t.Helper()
	state, err := fermi.FromInjection(deltaN, material.Sample{Type: material.NType, Doping: doping}, silicon)
	require.NoError(t, err)
	return state
}

func pTypeState(t *testing.T, doping, deltaN float64) fermi.CarrierState {
	t.Helper()
	state, err := fermi.FromInjection(deltaN, material.Sample{Type: material.PType, Doping: doping}, silicon)
	require.NoError(t, err)
	return state
}

func TestChargePrefactorScale(t *testing.T) {
	pref := ChargePrefactor(silicon)
	assert.Greater(t, pref, 1e-17)
	assert.Less(t, pref, 1e-16)
}

// Flat bands carry no bulk charge: the band-bending function vanishes at
// psiS = 0 for both doping branches.
func TestBulkFZeroAtFlatBands(t *testing.T) {
	assert.InDelta(t, 0, BulkF(0, nTypeState(t, 1e15, 1e13), silicon), 1e-12)
	assert.InDelta(t, 0, BulkF(0, pTypeState(t, 1e15, 1e13), silicon), 1e-12)
}

// Near flat bands the linear dopant term dominates the carrier
// exponentials: donors pull F below zero on both sides of zero, while
// acceptors give F the sign of the band bending.
func TestBulkFSignNearFlatBands(t *testing.T) {
	n := nTypeState(t, 1e15, 1e13)
	assert.Less(t, BulkF(0.05, n, silicon), 0.0)
	assert.Less(t, BulkF(-0.05, n, silicon), 0.0)

	p := pTypeState(t, 1e15, 1e13)
	assert.Greater(t, BulkF(0.05, p, silicon), 0.0)
	assert.Less(t, BulkF(-0.05, p, silicon), 0.0)
}

// Negative band bending piles electrons up at the surface on the n-type
// branch: F grows monotonically more negative as psiS drops.
func TestBulkFElectronAccumulationSide(t *testing.T) {
	state := nTypeState(t, 1e15, 1e13)

	f1 := BulkF(-0.1, state, silicon)
	f2 := BulkF(-0.2, state, silicon)
	f3 := BulkF(-0.3, state, silicon)

	assert.Less(t, f1, 0.0)
	assert.Greater(t, f1, f2)
	assert.Greater(t, f2, f3)
}

// In the deep-depletion limit the surface electron population empties
// out: the electron exponential decays to zero as psiS grows.
func TestBulkFDeepDepletionLimit(t *testing.T) {
	state := nTypeState(t, 1e15, 1e13)

	nsPrev, _ := SurfaceConcentrations(0.1, state, silicon)
	for _, psi := range []float64{0.2, 0.4, 0.6} {
		ns, _ := SurfaceConcentrations(psi, state, silicon)
		assert.Less(t, ns, nsPrev, "psi=%g", psi)
		nsPrev = ns
	}
	assert.Less(t, nsPrev/state.N, 1e-9)
}

// The branches differ only in the dopant term: for the same carrier
// state, flipping the doping type shifts F by twice the linear term.
func TestBulkFBranchDopantTerm(t *testing.T) {
	n := nTypeState(t, 1e15, 1e13)
	asP := n
	asP.Sample.Type = material.PType

	vt := silicon.Vt()
	for _, psi := range []float64{-0.2, 0.1, 0.3} {
		diff := BulkF(psi, n, silicon) - BulkF(psi, asP, silicon)
		assert.InEpsilon(t, -2*psi*n.Sample.Doping/(silicon.Ni*vt), diff, 1e-6,
			"psi=%g", psi)
	}
}

func TestFixedCharge(t *testing.T) {
	q := FixedCharge(1e12, silicon)
	assert.InEpsilon(t, consts.CHARGE*1e16, q, 1e-12)
	assert.Equal(t, 0.0, FixedCharge(0, silicon))
}

func TestNoTraps(t *testing.T) {
	state := nTypeState(t, 1e15, 1e13)
	assert.Equal(t, 0.0, NoTraps{}.Charge(-0.3, state, silicon))
}

func TestOxideCapacitance(t *testing.T) {
	in := ChargeInputs{OxideThickness: 10e-9}
	cox := in.OxideCapacitance(silicon)
	assert.InEpsilon(t, consts.EPS0*silicon.EpsOx/10e-9, cox, 1e-12)

	assert.Equal(t, 0.0, ChargeInputs{}.OxideCapacitance(silicon))
}

// Representative balance solve: n-type 1e15 cm^-3, V = 0.3, fixed charge
// 1e12 cm^-2. The solver must converge to a root of the total charge with
// a residual negligible against the fixed-charge contribution.
func TestSolvePotentialRepresentative(t *testing.T) {
	state, err := fermi.FromVoltage(0.3, material.Sample{Type: material.NType, Doping: 1e15}, silicon)
	require.NoError(t, err)

	in := ChargeInputs{State: state, Nf: 1e12}
	res, err := SolvePotential(in, NoTraps{}, silicon)
	require.NoError(t, err)

	qf := FixedCharge(in.Nf, silicon)
	assert.Less(t, math.Abs(res.Residual), 1e-3*qf)
	assert.InDelta(t, res.Residual, TotalCharge(res.PsiS, in, NoTraps{}, silicon), 1e-18)

	// The root must be a genuine sign change, not a grazing touch.
	eps := 1e-3
	assert.Less(t, TotalCharge(res.PsiS-eps, in, NoTraps{}, silicon)*
		TotalCharge(res.PsiS+eps, in, NoTraps{}, silicon), 0.0)

	// Solving again reproduces the same root.
	res2, err := SolvePotential(in, NoTraps{}, silicon)
	require.NoError(t, err)
	assert.InDelta(t, res.PsiS, res2.PsiS, 1e-9)
}

// The root shifts by only Vt per e-fold of fixed charge, so densities
// far above the representative case still land inside the bracket
// expansion range.
func TestSolvePotentialLargeFixedCharge(t *testing.T) {
	state := nTypeState(t, 1e15, 1e13)

	small, err := SolvePotential(ChargeInputs{State: state, Nf: 1e12}, NoTraps{}, silicon)
	require.NoError(t, err)

	large, err := SolvePotential(ChargeInputs{State: state, Nf: 1e15}, NoTraps{}, silicon)
	require.NoError(t, err)

	assert.Less(t, large.PsiS, small.PsiS)
	assert.Less(t, math.Abs(large.Residual), 1e-3*FixedCharge(1e15, silicon))
}

func TestSolvePotentialNilTraps(t *testing.T) {
	state := nTypeState(t, 1e15, 1e13)
	in := ChargeInputs{State: state, Nf: 1e12}

	res, err := SolvePotential(in, nil, silicon)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(res.PsiS))
}

func TestSurfaceConcentrationsPreserveProduct(t *testing.T) {
	state := nTypeState(t, 1e15, 1e13)

	ns, ps := SurfaceConcentrations(-0.35, state, silicon)
	assert.Greater(t, ns, 0.0)
	assert.Greater(t, ps, 0.0)
	assert.InEpsilon(t, state.N*state.P, ns*ps, 1e-9)

	// Flat bands reproduce the bulk concentrations.
	ns0, ps0 := SurfaceConcentrations(0, state, silicon)
	assert.Equal(t, state.N, ns0)
	assert.Equal(t, state.P, ps0)
}
