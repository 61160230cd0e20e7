package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"cell-recon/internal/config"
	"cell-recon/internal/exporter"
	"cell-recon/internal/logger"
	"cell-recon/internal/model"
	"cell-recon/internal/stage"
	"cell-recon/internal/ui"
)

const (
	appName    = "Cell Recon"
	appVersion = "1.0.0"
	appDesc    = "Repairs merged-cell header artifacts in Excel workbooks"
)

var (
	configPath  string
	verbose     bool
	showVersion bool
	noPause     bool
	inputPath   string
	outputDir   string
	stages      string
	formats     string
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&noPause, "no-pause", false, "Exit without waiting for Enter")
	flag.StringVar(&inputPath, "input", "", "Override input workbook from config")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&stages, "stage", stage.All, "Comma-separated stages to run (clean,headers,merge or all)")
	flag.StringVar(&formats, "format", "excel,html,word,json", "Comma-separated report formats (excel,html,word,json)")
}

func main() {
	// CRITICAL: Ensure "Press Enter to Exit" runs even on panic or error.
	// os.Exit skips deferred calls, so the pause happens before it.
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
			pause()
			os.Exit(2)
		}
	}()

	exitCode := run()
	pause()
	os.Exit(exitCode)
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	printBanner()

	// 1. Initialize
	logger.Info("Loading configuration...")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}

	if inputPath != "" {
		cfg.Input.Path = inputPath
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	if err := logger.Init(os.Stdout, cfg.LogPath(), verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if !verbose {
		logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		return 1
	}
	if verbose {
		cfg.Print()
	}

	selected, err := stage.ParseStages(stages)
	if err != nil {
		logger.Error("%v (valid: clean, headers, merge, all)", err)
		return 1
	}

	if err := runStages(cfg, selected); err != nil {
		logger.Error("Run failed: %v", err)
		return 1
	}

	logger.Info("✅ Cleaning Complete. Check [%s] directory.", cfg.Output.Dir)
	return 0
}

func pause() {
	if !noPause && !showVersion {
		waitForEnter()
	}
}

// waitForEnter pauses execution and waits for user to press Enter
// This prevents the console window from closing immediately when double-clicked
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func runStages(cfg *config.Config, selected []string) error {
	phases := make([]ui.Phase, 0, len(selected)+1)
	for _, name := range selected {
		phases = append(phases, ui.PhaseFor(name))
	}
	phases = append(phases, ui.PhaseReporting)
	pipeline := ui.NewPipeline(phases)

	// --- Stages ---
	runner := stage.NewRunner(cfg, func(name string) stage.Tracker {
		logger.Info("Stage %s...", name)
		bar := pipeline.NextPhase(0)
		if bar == nil {
			return nil
		}
		return bar
	})

	run, runErr := runner.Run(selected)
	if run == nil {
		return runErr
	}

	// --- Reporting ---
	// A report is still written for a run that stopped early
	logger.Info("Generating Reports...")
	exporters := exporter.GetExporters(strings.Split(formats, ","))

	genBar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		if err := exp.Export(run, cfg); err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors = append(exportErrors, err)
		}
		if genBar != nil {
			genBar.Increment()
		}
	}
	pipeline.Finish()

	printSummary(run)

	if runErr != nil {
		return runErr
	}
	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}

	return nil
}

func printSummary(run *model.RunSummary) {
	fmt.Println()
	for _, s := range run.Stages {
		logger.Info("[%s] %d/%d sheets succeeded, %d skipped, %d failed (%s)",
			s.Stage, s.Succeeded(), s.Total(), s.Skipped(), s.Failed(), s.Duration().Round(time.Millisecond))
	}
	if n := run.TotalFailed(); n > 0 {
		logger.Warn("%d sheet results failed, see %s for details", n, logger.GetLogFilePath())
	}
	logger.Debug("Run ID: %s", run.ID)
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                      CELL RECON v1.0.0                    ║
║       Merged-Cell Header Reconciliation for Excel         ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
