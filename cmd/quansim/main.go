package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/quansim/internal/automation"
	"github.com/san-kum/quansim/internal/config"
	"github.com/san-kum/quansim/internal/epr"
	"github.com/san-kum/quansim/internal/logging"
	"github.com/san-kum/quansim/internal/storage"
	"github.com/san-kum/quansim/internal/sweep"
	"github.com/san-kum/quansim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	pretty   bool
	preset   string
	fock     int
	cosine   int
	save     bool
	format   string
	fockList []int
	cosList  []int
	tol      float64

	logger zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quansim",
		Short: "quantum parameters of superconducting circuits by numerical diagonalization",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(os.Stderr, logLevel, pretty)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".quansim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "human readable logs")

	runCmd := &cobra.Command{
		Use:   "run [circuit.yaml]",
		Short: "compute dressed frequencies and chi matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCalculation,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset circuit")
	runCmd.Flags().IntVar(&fock, "fock", 0, "fock truncation per mode (overrides circuit)")
	runCmd.Flags().IntVar(&cosine, "cosine", 0, "cosine series truncation (overrides circuit)")
	runCmd.Flags().BoolVar(&save, "save", false, "save run to data directory")
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table, json)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [circuit.yaml]",
		Short: "truncation convergence sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset circuit")
	sweepCmd.Flags().IntSliceVar(&fockList, "fock", []int{4, 5, 6, 7}, "fock truncations")
	sweepCmd.Flags().IntSliceVar(&cosList, "cosine", []int{4, 6, 8}, "cosine truncations")
	sweepCmd.Flags().Float64Var(&tol, "tol", 1e-3, "convergence tolerance (MHz)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset circuits",
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of circuits",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(runCmd, sweepCmd, batchCmd, listCmd, showCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCircuit resolves the circuit from a file argument, the --preset flag,
// or the default transmon, in that order.
func loadCircuit(args []string) (*config.Circuit, error) {
	if len(args) == 1 {
		c, err := config.Load(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load circuit: %w", err)
		}
		return c, nil
	}
	if preset != "" {
		c := config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return c, nil
	}
	return config.DefaultCircuit(), nil
}

type runOutput struct {
	Circuit        string             `json:"circuit"`
	RunID          string             `json:"run_id,omitempty"`
	FockTruncation int                `json:"fock_truncation"`
	CosineTrunc    int                `json:"cosine_truncation"`
	Labels         []string           `json:"labels"`
	FrequenciesGHz []float64          `json:"frequencies_ghz"`
	ChiMHz         [][]float64        `json:"chi_mhz"`
	SingleOverlaps []float64          `json:"single_overlaps"`
	Summary        map[string]float64 `json:"summary"`
}

func runCalculation(cmd *cobra.Command, args []string) error {
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	c, err := loadCircuit(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fock") {
		c.Truncation.Fock = fock
	}
	if cmd.Flags().Changed("cosine") {
		c.Truncation.Cosine = cosine
	}

	opts := c.Options()
	opts.Logger = logger
	res, err := c.Calculate(opts)
	if err != nil {
		return err
	}

	labels := c.Labels()
	var runID string
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(c.Name, labels, opts, res)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logger.Info().Str("run_id", runID).Msg("saved run")
	}

	if format == "json" {
		summary, err := res.Flatten(labels)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runOutput{
			Circuit:        c.Name,
			RunID:          runID,
			FockTruncation: opts.FockTruncation,
			CosineTrunc:    opts.CosineTruncation,
			Labels:         labels,
			FrequenciesGHz: res.FrequenciesGHz,
			ChiMHz:         res.ChiMHz,
			SingleOverlaps: res.SingleOverlaps,
			Summary:        summary,
		})
	}

	title := fmt.Sprintf("%s  (fock %d, cosine %d)", c.Name, opts.FockTruncation, opts.CosineTruncation)
	fmt.Println(viz.Report(title, labels, res))
	if runID != "" {
		fmt.Println(viz.Subtle.Render("saved as " + runID))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	c, err := loadCircuit(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := &sweep.Sweep{Circuit: c, FockValues: fockList, CosineValues: cosList, Logger: logger}
	points, err := s.Run(ctx)
	if err != nil && len(points) == 0 {
		return err
	}

	labels := c.Labels()
	fmt.Println(viz.Title.Render("convergence: " + c.Name))
	fmt.Println(viz.SweepTable(points, tol))
	fmt.Println()
	for i := range labels {
		fmt.Println(viz.ConvergencePlot(points, labels, i, i))
		fmt.Println()
	}
	if len(labels) > 1 {
		fmt.Println(viz.ConvergencePlot(points, labels, 0, 1))
		fmt.Println()
	}

	if idx := sweep.Converged(points, tol); idx >= 0 {
		p := points[idx]
		fmt.Printf("converged below %g MHz at fock %d, cosine %d\n", tol, p.Fock, p.Cosine)
	} else {
		fmt.Println(viz.Warning.Render(fmt.Sprintf("not converged below %g MHz", tol)))
	}
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, storage.New(dataDir), logger)
	for _, r := range results {
		title := fmt.Sprintf("%s  (fock %d, cosine %d)", r.Circuit.Name, r.Circuit.Truncation.Fock, r.Circuit.Truncation.Cosine)
		fmt.Println(viz.Report(title, r.Circuit.Labels(), r.Result))
		if r.RunID != "" {
			fmt.Println(viz.Subtle.Render("saved as " + r.RunID))
		}
	}
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCIRCUIT\tTIME\tMODES\tFOCK\tCOSINE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Circuit,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Labels),
			run.FockTruncation,
			run.CosineTrunc,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	res := &epr.Result{FrequenciesGHz: meta.FrequenciesGHz, ChiMHz: meta.ChiMHz}
	title := fmt.Sprintf("%s  %s", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println(viz.Report(title, meta.Labels, res))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODES\tJUNCTIONS\tFOCK\tCOSINE")
	for _, name := range config.ListPresets() {
		c := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", name, len(c.Modes), len(c.Junctions), c.Truncation.Fock, c.Truncation.Cosine)
	}
	return w.Flush()
}
