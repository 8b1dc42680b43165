// Command genforge discovers a closed-form formula that fits a CSV data
// set via evolutionary search. Startup follows a fixed shape: parse
// flags, load configuration, build a logger, wire dependencies, start
// optional background services, then either run to completion or block
// on a signal/REPL.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/cumbiambero/genforge/internal/api"
	"github.com/cumbiambero/genforge/internal/artifacts"
	"github.com/cumbiambero/genforge/internal/config"
	"github.com/cumbiambero/genforge/internal/csvdata"
	"github.com/cumbiambero/genforge/internal/events"
	"github.com/cumbiambero/genforge/internal/fitness"
	"github.com/cumbiambero/genforge/internal/repl"
	"github.com/cumbiambero/genforge/internal/scheduler"
	"github.com/cumbiambero/genforge/internal/solver"
	"github.com/cumbiambero/genforge/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the full CLI contract and returns the process exit
// code, kept separate from main so tests can drive it without calling
// os.Exit.
func run(args []string) int {
	fs := flag.NewFlagSet("genforge", flag.ContinueOnError)
	fitnessMode := fs.String("fitness", "", "basic|enhanced|ultra (default: enhanced)")
	ultra := fs.Bool("ultra", false, "shorthand for --fitness ultra")
	target := fs.Float64("target", 0, "target fitness in (0,1] (default ~0.9999999999)")
	timeSeconds := fs.Int("time", 0, "time budget in seconds (0 = no limit)")
	threads := fs.Int("threads", 0, "worker thread count (0 = auto)")
	noCLI := fs.Bool("no-cli", false, "batch mode, disables the REPL")
	httpAddr := fs.String("http", "", "optional HTTP control plane address, e.g. :8080")
	cronSpec := fs.String("cron", "", "optional cron schedule for periodic re-discovery")
	exportBucket := fs.String("export-s3", "", "optional S3 bucket to export the final report to")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()
	if len(positional) < 3 {
		fmt.Fprintln(os.Stderr, "usage: genforge inputs.csv expected.csv var1 [var2 ...]")
		return 1
	}
	inputsPath, expectedPath := positional[0], positional[1]
	variables := positional[2:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		return 1
	}
	applyFlags(cfg, *fitnessMode, *ultra, *target, *timeSeconds, *threads, *noCLI, *httpAddr, *cronSpec, *exportBucket)

	log := logger.New(logger.Config{Level: "info", Pretty: true})

	inputs, err := csvdata.LoadInputs(inputsPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load inputs")
		return 1
	}
	expectedRows, err := csvdata.LoadExpected(expectedPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load expected values")
		return 1
	}
	expected := make([][]float64, len(expectedRows))
	for i, v := range expectedRows {
		expected[i] = []float64{v}
	}

	solveCfg := solver.DefaultConfig()
	solveCfg.Evaluator = resolveEvaluator(cfg.FitnessMode)
	if cfg.Target > 0 {
		solveCfg.Target = cfg.Target
	}
	if cfg.TimeSeconds > 0 {
		solveCfg.TimeBudget = time.Duration(cfg.TimeSeconds) * time.Second
	}
	if cfg.Threads > 0 {
		solveCfg.Threads = cfg.Threads
	}

	bus := events.NewBus(log)
	s := solver.New(solveCfg, variables, inputs, expected, bus, log)

	if cfg.HTTPAddr != "" {
		httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.NewRouter(log)}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("http control plane stopped")
			}
		}()
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http control plane started")
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(ctx)
		}()
	}

	if cfg.CronSchedule != "" {
		sched, err := scheduler.New(cfg.CronSchedule, func() {
			rerun := solver.New(solveCfg, variables, inputs, expected, bus, log)
			rerun.Start()
			rerun.Wait()
		}, log)
		if err != nil {
			log.Error().Err(err).Msg("failed to build scheduler, periodic re-discovery disabled")
		} else {
			sched.Start()
			log.Info().Str("schedule", cfg.CronSchedule).Msg("scheduler started")
			defer sched.Stop()
		}
	}

	s.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		s.Stop()
	}()

	if cfg.NoCLI {
		s.Wait()
	} else {
		m := repl.New(s, bus)
		p := tea.NewProgram(m)
		go s.Wait()
		if _, err := p.Run(); err != nil {
			log.Error().Err(err).Msg("REPL exited with error")
		}
		s.Stop()
		s.Wait()
	}

	fmt.Println(s.Report(solver.DefaultReportConfig()))

	if cfg.ExportS3Bucket != "" {
		exportReport(cfg.ExportS3Bucket, s, log)
	}

	best, ok := bestFitness(s)
	if ok && (best >= solveCfg.Target || s.DoneReason() == "perfect_match") {
		return 0
	}
	return 1
}

func applyFlags(cfg *config.Config, fitnessMode string, ultra bool, target float64, timeSeconds, threads int, noCLI bool, httpAddr, cronSpec, exportBucket string) {
	if ultra {
		fitnessMode = "ultra"
	}
	if fitnessMode != "" {
		cfg.FitnessMode = fitnessMode
	}
	if target > 0 {
		cfg.Target = target
	}
	if timeSeconds > 0 {
		cfg.TimeSeconds = timeSeconds
	}
	if threads > 0 {
		cfg.Threads = threads
	}
	if noCLI {
		cfg.NoCLI = true
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if cronSpec != "" {
		cfg.CronSchedule = cronSpec
	}
	if exportBucket != "" {
		cfg.ExportS3Bucket = exportBucket
	}
}

func resolveEvaluator(mode string) fitness.Evaluator {
	switch mode {
	case "basic":
		return fitness.Basic{}
	case "ultra":
		return fitness.Ultra{}
	default:
		return fitness.Enhanced{}
	}
}

func bestFitness(s *solver.Solver) (float64, bool) {
	pool := s.Pool()
	if len(pool) == 0 {
		return 0, false
	}
	return pool[len(pool)-1].Fitness, true
}

// exportReport uploads the final report to S3, logging (rather than
// failing the run) if credentials or the bucket are unavailable — export
// is never required for the solver's own termination contract.
func exportReport(bucket string, s *solver.Solver, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exporter, err := artifacts.NewExporter(ctx, bucket, log)
	if err != nil {
		log.Warn().Err(err).Msg("s3 export unavailable, skipping")
		return
	}

	hof := s.HallOfFame()
	pool := s.Pool()

	report := artifacts.Report{
		RunID:       s.RunID(),
		GeneratedAt: time.Now(),
	}
	if len(pool) > 0 {
		best := pool[len(pool)-1]
		report.BestFormula = best.Formula.String()
		report.BestFitness = best.Fitness
	}
	for _, sol := range hof {
		report.HallOfFame = append(report.HallOfFame, sol.Formula.String())
		report.Code = append(report.Code, sol.Formula.ToCode())
	}

	if err := exporter.Export(ctx, report); err != nil {
		log.Warn().Err(err).Msg("s3 export failed")
	}
}
