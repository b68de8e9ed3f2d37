package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"toy-surface/pkg/analysis"
	"toy-surface/pkg/plotout"
	"toy-surface/pkg/util"
)

var sweepFlags struct {
	materialType string
	doping       float64
	start        float64
	stop         float64
	perDecade    int
	nf           float64
	dit          float64
	sigmaN       float64
	sigmaP       float64
	plotPath     string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the injection level and solve the surface at each point",
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVar(&sweepFlags.materialType, "material", "n-type", "doping type (n-type or p-type)")
	f.Float64Var(&sweepFlags.doping, "doping", 1e15, "doping concentration (cm^-3)")
	f.Float64Var(&sweepFlags.start, "start", 1e10, "sweep start excess density (cm^-3)")
	f.Float64Var(&sweepFlags.stop, "stop", 1e16, "sweep stop excess density (cm^-3)")
	f.IntVar(&sweepFlags.perDecade, "points-per-decade", 2, "sweep points per decade")
	f.Float64Var(&sweepFlags.nf, "nf", 1e12, "fixed interface charge density (cm^-2)")
	f.Float64Var(&sweepFlags.dit, "dit", 1e10, "midgap interface trap density (cm^-2)")
	f.Float64Var(&sweepFlags.sigmaN, "sigma-n", 1e-15, "electron capture cross section (cm^2)")
	f.Float64Var(&sweepFlags.sigmaP, "sigma-p", 1e-15, "hole capture cross section (cm^2)")
	f.StringVar(&sweepFlags.plotPath, "plot", "", "write a potentials-vs-injection plot (png/svg/pdf)")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(_ *cobra.Command, _ []string) error {
	params := materialParams()

	sample, err := sampleFromFlags(sweepFlags.materialType, sweepFlags.doping)
	if err != nil {
		return err
	}

	sw, err := analysis.NewInjectionSweep(analysis.Config{
		Params: params,
		Sample: sample,
		Nf:     sweepFlags.nf,
		Dit:    sweepFlags.dit,
		SigmaN: sweepFlags.sigmaN,
		SigmaP: sweepFlags.sigmaP,
	}, sweepFlags.start, sweepFlags.stop, sweepFlags.perDecade)
	if err != nil {
		return err
	}

	if err := sw.Execute(); err != nil {
		return err
	}

	results := sw.GetResults()
	printSweepResults(results)

	if sweepFlags.plotPath != "" {
		err := plotout.SaveLines(results, analysis.KeySweep,
			[]string{analysis.KeyV, analysis.KeyPsiS},
			"Injection sweep", "deltaN (cm^-3)", "potential (V)",
			sweepFlags.plotPath)
		if err != nil {
			return err
		}
		slog.Info("plot written", "path", sweepFlags.plotPath)
	}

	return nil
}

func printSweepResults(results map[string][]float64) {
	sweep := results[analysis.KeySweep]
	fmt.Printf("\nInjection Sweep Results (%d points):\n", len(sweep))
	fmt.Println("DeltaN          V           psi_s       U_s")
	fmt.Println("------------------------------------------------")

	for i, deltaN := range sweep {
		fmt.Printf("%-14s  %-10s  %-10s  %s\n",
			util.FormatConcentration(deltaN),
			util.FormatValueFactor(results[analysis.KeyV][i], "V"),
			util.FormatValueFactor(results[analysis.KeyPsiS][i], "V"),
			util.FormatRate(results[analysis.KeyUs][i]))
	}
}
