package main

import (
	"fmt"
	"math"
	rand "math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/matsim/internal/analysis"
	"github.com/san-kum/matsim/internal/config"
	"github.com/san-kum/matsim/internal/export"
	"github.com/san-kum/matsim/internal/heat"
	"github.com/san-kum/matsim/internal/integrators"
	"github.com/san-kum/matsim/internal/lattice"
	"github.com/san-kum/matsim/internal/metrics"
	"github.com/san-kum/matsim/internal/particle"
	"github.com/san-kum/matsim/internal/potential"
	"github.com/san-kum/matsim/internal/sim"
	"github.com/san-kum/matsim/internal/store"
	"github.com/san-kum/matsim/internal/thermostat"
	"github.com/san-kum/matsim/internal/tui"
	"github.com/san-kum/matsim/internal/viz"
)

// Argon Lennard-Jones parameters, the default working substance.
const (
	argonEpsilon = 1.654e-21     // [J]
	argonSigma   = 3.405e-10     // [m]
	argonMass    = 6.6335209e-26 // [kg]
)

var (
	dataDir    string
	configFile string
	preset     string

	// MD flags
	dt           float64
	endTime      float64
	maxSteps     int
	numParticles int
	temperature  float64
	cutoff       float64
	skin         float64
	neighborList bool
	boxEdge      float64
	epsilon      float64
	sigma        float64
	mass         float64
	thermo       string
	tau          float64
	nu           float64
	seed         uint64
	integrator   string
	sampleEvery  int

	// heat flags
	alpha      float64
	gridDx     float64
	nCells     int
	nx, ny     int
	icName     string
	tHot       float64
	tBoundary  float64
	radiusFrac float64

	stepsPerFrame int

	// analyze/export flags
	column  string
	svgOut  string
	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "matsim",
		Short: "molecular dynamics and heat diffusion simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".matsim", "data directory")

	mdCmd := &cobra.Command{
		Use:   "md",
		Short: "run a molecular dynamics simulation",
		RunE:  runMD,
	}
	addMDFlags(mdCmd)

	heat1dCmd := &cobra.Command{
		Use:   "heat1d",
		Short: "run 1D heat diffusion on a rod",
		RunE:  runHeat1D,
	}
	addHeat1DFlags(heat1dCmd)

	heat2dCmd := &cobra.Command{
		Use:   "heat2d",
		Short: "run 2D heat diffusion on a plate",
		RunE:  runHeat2D,
	}
	addHeat2DFlags(heat2dCmd)

	liveCmd := &cobra.Command{
		Use:       "live [md|heat1d|heat2d]",
		Short:     "run with live terminal visualization",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"md", "heat1d", "heat2d"},
		RunE:      runLive,
	}
	addMDFlags(liveCmd)
	addHeat1DFlags(liveCmd)
	addHeat2DFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "simulation steps per rendered frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's observables",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved observable",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "etot", "series column to analyze")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a saved observable as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&column, "column", "etot", "series column to export")
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output file, default <run_id>_<column>.svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list MD parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDT\tEND_TIME\tTEMPERATURE\tCUTOFF")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", name, p.Dt, p.EndTime, p.Temperature, p.Cutoff)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(mdCmd, heat1dCmd, heat2dCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addMDFlags(cmd *cobra.Command) {
	defaults := sim.Defaults()
	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml or key=value)")
	cmd.Flags().StringVar(&preset, "preset", "", "named parameter preset")
	cmd.Flags().Float64Var(&dt, "dt", defaults.Dt, "timestep [s]")
	cmd.Flags().Float64Var(&endTime, "time", defaults.EndTime, "end time [s], 0 = bounded by steps")
	cmd.Flags().IntVar(&maxSteps, "steps", 10_000, "maximum steps")
	cmd.Flags().IntVar(&numParticles, "particles", 64, "number of particles")
	cmd.Flags().Float64Var(&temperature, "temperature", defaults.Temperature, "initial/target temperature [K]")
	cmd.Flags().Float64Var(&cutoff, "cutoff", defaults.Cutoff, "force cutoff [m]")
	cmd.Flags().Float64Var(&skin, "skin", defaults.NeighborSkin, "neighbor list skin [m]")
	cmd.Flags().BoolVar(&neighborList, "neighbor-list", defaults.UseNeighborList, "use Verlet neighbor list")
	cmd.Flags().Float64Var(&boxEdge, "box", 2.5e-9, "cubic cell edge [m], 0 = open boundaries")
	cmd.Flags().Float64Var(&epsilon, "epsilon", argonEpsilon, "LJ well depth [J]")
	cmd.Flags().Float64Var(&sigma, "sigma", argonSigma, "LJ diameter [m]")
	cmd.Flags().Float64Var(&mass, "mass", argonMass, "particle mass [kg]")
	cmd.Flags().StringVar(&thermo, "thermostat", "none", "thermostat: none, rescale, andersen")
	cmd.Flags().Float64Var(&tau, "tau", 100e-15, "rescale coupling time [s]")
	cmd.Flags().Float64Var(&nu, "nu", 1e12, "andersen collision frequency [1/s]")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 = non-reproducible")
	cmd.Flags().StringVar(&integrator, "integrator", "verlet", "integrator: verlet, euler")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 10, "record observables every N steps")
}

func addHeat1DFlags(cmd *cobra.Command) {
	d := heat.Defaults1D()
	cmd.Flags().Float64Var(&alpha, "alpha", d.Alpha, "thermal diffusivity [m²/s]")
	cmd.Flags().Float64Var(&gridDx, "dx", d.Dx, "grid spacing [m]")
	cmd.Flags().IntVar(&nCells, "cells", d.NCells, "rod cells (heat1d)")
	if cmd.Flags().Lookup("dt") == nil {
		cmd.Flags().Float64Var(&dt, "dt", d.Dt, "timestep [s]")
		cmd.Flags().Float64Var(&endTime, "time", d.EndTime, "end time [s]")
		cmd.Flags().IntVar(&maxSteps, "steps", d.MaxSteps, "maximum steps")
		cmd.Flags().IntVar(&sampleEvery, "sample-every", 10, "record observables every N steps")
	}
}

func addHeat2DFlags(cmd *cobra.Command) {
	d := heat.Defaults2D()
	cmd.Flags().IntVar(&nx, "nx", d.Nx, "grid columns (heat2d)")
	cmd.Flags().IntVar(&ny, "ny", d.Ny, "grid rows (heat2d)")
	cmd.Flags().StringVar(&icName, "ic", d.IC.String(), "initial condition: hot-center, uniform-hot")
	cmd.Flags().Float64Var(&tHot, "thot", d.THot, "hot region temperature [K]")
	cmd.Flags().Float64Var(&tBoundary, "tboundary", d.TBoundary, "boundary temperature [K]")
	cmd.Flags().Float64Var(&radiusFrac, "radius", d.HotRadiusFrac, "hot spot sigma as fraction of width")
	if cmd.Flags().Lookup("alpha") == nil {
		cmd.Flags().Float64Var(&alpha, "alpha", d.Alpha, "thermal diffusivity [m²/s]")
		cmd.Flags().Float64Var(&gridDx, "dx", d.Dx, "grid spacing [m]")
	}
	if cmd.Flags().Lookup("dt") == nil {
		cmd.Flags().Float64Var(&dt, "dt", d.Dt, "timestep [s]")
		cmd.Flags().Float64Var(&endTime, "time", d.EndTime, "end time [s], 0 = continuous")
		cmd.Flags().IntVar(&maxSteps, "steps", 2_000, "maximum steps")
		cmd.Flags().IntVar(&sampleEvery, "sample-every", 10, "record observables every N steps")
	}
	if cmd.Flags().Lookup("svg") == nil {
		cmd.Flags().StringVar(&svgOut, "svg", "", "write the final temperature field to this SVG file")
	}
}

// mdParams resolves the preset, config file, and flag layers; flags set
// on the command line win.
func mdParams(cmd *cobra.Command) (sim.Params, error) {
	var params sim.Params
	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return params, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		params = p
	} else {
		p, err := config.Load(configFile)
		if err != nil {
			return params, err
		}
		params = p
	}
	flags := cmd.Flags()
	if flags.Changed("dt") {
		params.Dt = dt
	}
	if flags.Changed("time") {
		params.EndTime = endTime
	}
	if flags.Changed("steps") {
		params.MaxSteps = maxSteps
	} else if params.EndTime == 0 && params.MaxSteps >= 10_000_000 {
		// Unbounded defaults would run for hours; cap the casual case.
		params.MaxSteps = 10_000
	}
	if flags.Changed("temperature") {
		params.Temperature = temperature
	}
	if flags.Changed("cutoff") {
		params.Cutoff = cutoff
	}
	if flags.Changed("skin") {
		params.NeighborSkin = skin
	}
	if flags.Changed("neighbor-list") {
		params.UseNeighborList = neighborList
	}
	return params, params.Validate()
}

func newRNG() *rand.Rand {
	s := seed
	if s == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

func buildMD(cmd *cobra.Command) (*sim.Simulation, sim.Params, error) {
	params, err := mdParams(cmd)
	if err != nil {
		return nil, params, err
	}
	pot := potential.NewLennardJones(epsilon, sigma, params.Cutoff)
	s, err := sim.New(params, pot)
	if err != nil {
		return nil, params, err
	}
	if boxEdge > 0 {
		if err := s.SetLattice(lattice.Cubic(boxEdge)); err != nil {
			return nil, params, err
		}
	}
	edge := boxEdge
	if edge <= 0 {
		edge = 2.5e-9
	}
	if err := particle.FillCubic(s.System(), numParticles, mass, edge); err != nil {
		return nil, params, err
	}
	particle.SeedMaxwell(s.System(), params.Temperature, newRNG())

	switch thermo {
	case "none", "":
	case "rescale":
		s.SetThermostat(thermostat.NewVelocityRescale(params.Temperature, tau))
	case "andersen":
		s.SetThermostat(thermostat.NewAndersen(params.Temperature, nu, seed))
	default:
		return nil, params, fmt.Errorf("unknown thermostat %q (want none, rescale, or andersen)", thermo)
	}

	switch integrator {
	case "verlet", "":
	case "euler":
		s.SetIntegrator(integrators.NewEuler(params.Dt))
	default:
		return nil, params, fmt.Errorf("unknown integrator %q (want verlet or euler)", integrator)
	}
	return s, params, nil
}

func runMD(cmd *cobra.Command, args []string) error {
	s, params, err := buildMD(cmd)
	if err != nil {
		return err
	}

	if !integrators.IsStableDt(params.Dt, s.System()) {
		fmt.Fprintf(os.Stderr, "warning: dt %g may be too large; recommended max %g\n",
			params.Dt, integrators.RecommendedMaxDt(s.System()))
	}

	series := &store.Series{Columns: []string{"ekin", "epot", "etot", "temperature"}}
	drift := metrics.NewEnergyDrift()
	meanT := metrics.NewMeanTemperature()
	s.SetStepCallback(func(s *sim.Simulation) {
		drift.Observe(s)
		meanT.Observe(s)
		if sampleEvery > 0 && s.StepCount()%sampleEvery == 0 {
			series.Append(s.Time(), s.KineticEnergy(), s.PotentialEnergy(), s.TotalEnergy(), s.Temperature())
		}
	})

	fmt.Printf("running md: %d particles, dt=%g s\n", s.System().Len(), params.Dt)
	start := time.Now()
	if err := s.Run(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Mode:      s.Mode().String(),
		Dt:        params.Dt,
		EndTime:   params.EndTime,
		Steps:     s.StepCount(),
		FinalTime: s.Time(),
		Particles: s.System().Len(),
		Summary: map[string]float64{
			"ekin":        s.KineticEnergy(),
			"epot":        s.PotentialEnergy(),
			"etot":        s.TotalEnergy(),
			"temperature": s.Temperature(),
			drift.Name():  drift.Value(),
			meanT.Name():  meanT.Value(),
		},
	}, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", s.StepCount(), elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "time\t%.6e s\n", s.Time())
	fmt.Fprintf(w, "E kinetic\t%.6e J\n", s.KineticEnergy())
	fmt.Fprintf(w, "E potential\t%.6e J\n", s.PotentialEnergy())
	fmt.Fprintf(w, "E total\t%.6e J\n", s.TotalEnergy())
	fmt.Fprintf(w, "temperature\t%.2f K\n", s.Temperature())
	fmt.Fprintf(w, "mean temperature\t%.2f K\n", meanT.Value())
	fmt.Fprintf(w, "energy drift\t%.3e\n", drift.Value())
	return w.Flush()
}

// heat1DParams layers changed flags over the 1D defaults. The numeric
// flags are shared across commands, so unchanged ones always fall back
// to this mode's defaults rather than another command's.
func heat1DParams(cmd *cobra.Command) heat.Params1D {
	p := heat.Defaults1D()
	flags := cmd.Flags()
	if flags.Changed("alpha") {
		p.Alpha = alpha
	}
	if flags.Changed("dx") {
		p.Dx = gridDx
	}
	if flags.Changed("dt") {
		p.Dt = dt
	}
	if flags.Changed("time") {
		p.EndTime = endTime
	}
	if flags.Changed("steps") {
		p.MaxSteps = maxSteps
	}
	if flags.Changed("cells") {
		p.NCells = nCells
	}
	return p
}

func runHeat1D(cmd *cobra.Command, args []string) error {
	s, err := sim.NewHeat1D(heat1DParams(cmd), 0)
	if err != nil {
		return err
	}

	series := &store.Series{Columns: []string{"tmin", "tmean", "tmax"}}
	s.SetStepCallback(func(s *sim.Simulation) {
		if sampleEvery > 0 && s.StepCount()%sampleEvery == 0 {
			lo, mean, hi := fieldStats(s.Heat1D().Temperature())
			series.Append(s.Time(), lo, mean, hi)
		}
	})

	if err := s.Run(); err != nil {
		return err
	}

	m := s.Heat1D()
	fmt.Println(viz.Profile(m.Temperature(), 80, 12, fmt.Sprintf("temperature [K] after %.4g s", s.Time())))
	fmt.Println()

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	_, mean, hi := fieldStats(m.Temperature())
	runID, err := st.Save(store.RunMetadata{
		Mode:      s.Mode().String(),
		Dt:        m.Params().Dt,
		EndTime:   m.Params().EndTime,
		Steps:     s.StepCount(),
		FinalTime: s.Time(),
		Grid:      fmt.Sprintf("%d", m.NCells()),
		Summary:   map[string]float64{"tmean": mean, "tmax": hi},
	}, series)
	if err != nil {
		return err
	}
	fmt.Printf("steps: %d   run id: %s\n", s.StepCount(), runID)
	return nil
}

func heat2DParams(cmd *cobra.Command) (heat.Params2D, error) {
	ic, err := heat.ParseIC2D(icName)
	if err != nil {
		return heat.Params2D{}, err
	}
	p := heat.Defaults2D()
	p.IC = ic
	flags := cmd.Flags()
	if flags.Changed("alpha") {
		p.Alpha = alpha
	}
	if flags.Changed("dx") {
		p.Dx = gridDx
	}
	if flags.Changed("dt") {
		p.Dt = dt
	}
	if flags.Changed("time") {
		p.EndTime = endTime
	}
	if flags.Changed("steps") {
		p.MaxSteps = maxSteps
	} else if p.EndTime == 0 {
		p.MaxSteps = 2_000
	}
	if flags.Changed("nx") {
		p.Nx = nx
	}
	if flags.Changed("ny") {
		p.Ny = ny
	}
	if flags.Changed("thot") {
		p.THot = tHot
	}
	if flags.Changed("tboundary") {
		p.TBoundary = tBoundary
	}
	if flags.Changed("radius") {
		p.HotRadiusFrac = radiusFrac
	}
	return p, nil
}

func runHeat2D(cmd *cobra.Command, args []string) error {
	params, err := heat2DParams(cmd)
	if err != nil {
		return err
	}
	s, err := sim.NewHeat2D(params, 0)
	if err != nil {
		return err
	}

	series := &store.Series{Columns: []string{"tmin", "tmean", "tmax"}}
	s.SetStepCallback(func(s *sim.Simulation) {
		if sampleEvery > 0 && s.StepCount()%sampleEvery == 0 {
			lo, mean, hi := fieldStats(s.Heat2D().Temperature())
			series.Append(s.Time(), lo, mean, hi)
		}
	})

	if err := s.Run(); err != nil {
		return err
	}

	m := s.Heat2D()
	fmt.Println(viz.Heatmap(m.Temperature(), m.Nx(), m.Ny(), viz.HeatmapOptions{
		MaxCols: 40, MaxRows: 20,
		TMin: m.TCold(), TMax: m.THot(),
	}))
	fmt.Printf("\nscale: %.0f K … %.0f K   t = %.4g s\n", m.TCold(), m.THot(), s.Time())

	if svgOut != "" {
		doc := export.FieldSVG(m.Temperature(), m.Nx(), m.Ny(), m.TCold(), m.THot(), 8)
		if err := os.WriteFile(svgOut, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	_, mean, hi := fieldStats(m.Temperature())
	runID, err := st.Save(store.RunMetadata{
		Mode:      s.Mode().String(),
		Dt:        params.Dt,
		EndTime:   params.EndTime,
		Steps:     s.StepCount(),
		FinalTime: s.Time(),
		Grid:      fmt.Sprintf("%dx%d", m.Nx(), m.Ny()),
		Summary:   map[string]float64{"tmean": mean, "tmax": hi},
	}, series)
	if err != nil {
		return err
	}
	fmt.Printf("steps: %d   run id: %s\n", s.StepCount(), runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	var (
		s   *sim.Simulation
		err error
	)
	switch args[0] {
	case "md":
		s, _, err = buildMD(cmd)
	case "heat1d":
		s, err = sim.NewHeat1D(heat1DParams(cmd), 0)
	case "heat2d":
		var p heat.Params2D
		if p, err = heat2DParams(cmd); err != nil {
			return err
		}
		if !cmd.Flags().Changed("steps") {
			// Live continuous mode keeps running; the batch cap is for
			// the non-interactive command.
			p.MaxSteps = heat.Defaults2D().MaxSteps
		}
		s, err = sim.NewHeat2D(p, 0)
	default:
		return fmt.Errorf("unknown mode %q (want md, heat1d, or heat2d)", args[0])
	}
	if err != nil {
		return err
	}
	return tui.Run(s, stepsPerFrame)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tSTEPS\tFINAL_TIME\tSIZE")
	for _, run := range runs {
		size := run.Grid
		if run.Mode == "md" {
			size = fmt.Sprintf("%d particles", run.Particles)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4g s\t%s\n",
			run.ID, run.Mode, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps, run.FinalTime, size)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if series.Len() < 2 {
		return fmt.Errorf("run %s has no plottable series", args[0])
	}

	fmt.Printf("run: %s (%s, %d samples)\n\n", meta.ID, meta.Mode, series.Len())
	for col, name := range series.Columns {
		data := make([]float64, series.Len())
		for i := range series.Rows {
			data[i] = series.Rows[i][col]
		}
		fmt.Println(viz.EnergySeries(data, 80, 8, name))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	data, err := seriesColumn(series, column)
	if err != nil {
		return err
	}
	if len(data) < 4 {
		return fmt.Errorf("run %s has only %d samples, need at least 4", args[0], len(data))
	}

	sampleDt := series.Times[1] - series.Times[0]
	ps := analysis.PowerSpectrum(data)
	// Skip the DC bin so the plot shows the oscillatory content.
	fmt.Printf("run: %s   column: %s   %d samples, spacing %.4g s\n\n", args[0], column, len(data), sampleDt)
	fmt.Println(viz.EnergySeries(ps[1:], 80, 10, "power spectrum"))

	if f := analysis.DominantFrequency(data, sampleDt); f > 0 {
		fmt.Printf("\ndominant frequency: %.6e Hz (period %.6e s)\n", f, 1/f)
	} else {
		fmt.Println("\nno dominant frequency found")
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	data, err := seriesColumn(series, column)
	if err != nil {
		return err
	}

	doc := export.SeriesSVG(series.Times, data, 800, 400, "#00e0c0")
	if doc == "" {
		return fmt.Errorf("run %s has no plottable series", args[0])
	}
	path := outPath
	if path == "" {
		path = fmt.Sprintf("%s_%s.svg", args[0], column)
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// seriesColumn extracts one named column from a loaded series.
func seriesColumn(series *store.Series, name string) ([]float64, error) {
	col := -1
	for i, c := range series.Columns {
		if c == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no column %q (available: %v)", name, series.Columns)
	}
	data := make([]float64, series.Len())
	for i := range series.Rows {
		data[i] = series.Rows[i][col]
	}
	return data, nil
}

func fieldStats(field []float64) (lo, mean, hi float64) {
	if len(field) == 0 {
		return 0, 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, v := range field {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}
	return lo, sum / float64(len(field)), hi
}
