package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"toy-surface/pkg/analysis"
	"toy-surface/pkg/fermi"
	"toy-surface/pkg/material"
	"toy-surface/pkg/util"
)

var opFlags struct {
	materialType string
	doping       float64
	injection    float64
	voltage      float64
	nf           float64
	dit          float64
	sigmaN       float64
	sigmaP       float64
	gateVoltage  float64
	oxideThick   float64
}

var opCmd = &cobra.Command{
	Use:   "op",
	Short: "Solve a single surface operating point",
	RunE:  runOP,
}

func init() {
	f := opCmd.Flags()
	f.StringVar(&opFlags.materialType, "material", "n-type", "doping type (n-type or p-type)")
	f.Float64Var(&opFlags.doping, "doping", 1e15, "doping concentration (cm^-3)")
	f.Float64Var(&opFlags.injection, "injection", 0, "excess carrier density (cm^-3)")
	f.Float64Var(&opFlags.voltage, "voltage", 0, "photovoltage (V), used when --injection is not set")
	f.Float64Var(&opFlags.nf, "nf", 1e12, "fixed interface charge density (cm^-2)")
	f.Float64Var(&opFlags.dit, "dit", 1e10, "midgap interface trap density (cm^-2)")
	f.Float64Var(&opFlags.sigmaN, "sigma-n", 1e-15, "electron capture cross section (cm^2)")
	f.Float64Var(&opFlags.sigmaP, "sigma-p", 1e-15, "hole capture cross section (cm^2)")
	f.Float64Var(&opFlags.gateVoltage, "vg", 0, "applied gate voltage (V)")
	f.Float64Var(&opFlags.oxideThick, "tox", 0, "oxide thickness (m)")
	rootCmd.AddCommand(opCmd)
}

func runOP(_ *cobra.Command, _ []string) error {
	params := materialParams()

	sample, err := sampleFromFlags(opFlags.materialType, opFlags.doping)
	if err != nil {
		return err
	}

	var state fermi.CarrierState
	if opFlags.injection != 0 {
		state, err = fermi.FromInjection(opFlags.injection, sample, params)
	} else {
		state, err = fermi.FromVoltage(opFlags.voltage, sample, params)
	}
	if err != nil {
		return err
	}
	slog.Debug("carrier state solved", "phiN", state.PhiN, "phiP", state.PhiP, "V", state.V)

	op := analysis.NewOP(analysis.Config{
		Params:         params,
		Sample:         sample,
		Nf:             opFlags.nf,
		Dit:            opFlags.dit,
		SigmaN:         opFlags.sigmaN,
		SigmaP:         opFlags.sigmaP,
		GateVoltage:    opFlags.gateVoltage,
		OxideThickness: opFlags.oxideThick,
	})
	if err := op.Run(state); err != nil {
		return err
	}

	printOPResults(sample, op.GetResults())
	return nil
}

func sampleFromFlags(materialType string, doping float64) (material.Sample, error) {
	dopingType, err := material.ParseDopingType(materialType)
	if err != nil {
		return material.Sample{}, err
	}
	sample := material.Sample{Type: dopingType, Doping: doping}
	return sample, sample.Validate()
}

func printOPResults(sample material.Sample, results map[string][]float64) {
	fmt.Println("\nOperating Point:")
	fmt.Println("================")
	fmt.Printf("Sample:  %v, N = %s\n", sample.Type, util.FormatConcentration(sample.Doping))
	fmt.Printf("DeltaN = %s\n", util.FormatConcentration(results[analysis.KeyDeltaN][0]))
	fmt.Printf("phi_n  = %s\n", util.FormatValueFactor(results[analysis.KeyPhiN][0], "V"))
	fmt.Printf("phi_p  = %s\n", util.FormatValueFactor(results[analysis.KeyPhiP][0], "V"))
	fmt.Printf("V      = %s\n", util.FormatValueFactor(results[analysis.KeyV][0], "V"))
	fmt.Printf("psi_s  = %s\n", util.FormatValueFactor(results[analysis.KeyPsiS][0], "V"))
	fmt.Printf("Qres   = %s\n", util.FormatCharge(results[analysis.KeyQRes][0]))
	fmt.Printf("n_s    = %s\n", util.FormatConcentration(results[analysis.KeyNs][0]))
	fmt.Printf("p_s    = %s\n", util.FormatConcentration(results[analysis.KeyPs][0]))
	fmt.Printf("U_s    = %s\n", util.FormatRate(results[analysis.KeyUs][0]))
}
