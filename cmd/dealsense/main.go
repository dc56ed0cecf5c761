// Package main is the dealsense CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gocanopy/dealsense/internal/app"
	"github.com/gocanopy/dealsense/internal/classify"
	"github.com/gocanopy/dealsense/internal/config"
	"github.com/gocanopy/dealsense/internal/history"
	"github.com/gocanopy/dealsense/internal/mockgen"
	"github.com/gocanopy/dealsense/internal/models"
	"github.com/gocanopy/dealsense/internal/pipeline"
	"github.com/gocanopy/dealsense/internal/samples"
	"github.com/gocanopy/dealsense/internal/search"
	"github.com/gocanopy/dealsense/internal/server"
	"github.com/gocanopy/dealsense/internal/watcher"
	"github.com/gocanopy/dealsense/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/dealsense/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "dealsense server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "init":
		runInit()
	case "analyze":
		runAnalyze()
	case "history":
		runHistory()
	case "samples":
		runSamples()
	case "clear":
		runClear()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("dealsense version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	sessionOpts := []app.Option{}
	if components.Index != nil {
		sessionOpts = append(sessionOpts, app.WithIndexer(components.Index))
	}
	if cfg.Processing.Fast {
		sessionOpts = append(sessionOpts, app.WithSleeper(instantSleeper{}))
	}
	session := app.NewSession(components.Store, logger, sessionOpts...)

	// The file backend can be rewritten by another process; pick the change
	// up and re-sync the search index. Last write wins, no merge.
	var watch *watcher.FileWatcher
	if cfg.Storage.Backend == "file" && cfg.Storage.WatchHistoryOrDefault() {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watch = watcher.NewFileWatcher(cfg.Storage.HistoryPath, func() {
			logger.Info("history file changed externally, re-syncing")
			if components.Index != nil {
				h := components.Store.Load()
				if err := components.Index.Rebuild(h.Analyses); err != nil {
					logger.Warn("search index re-sync failed", zap.Error(err))
				}
			}
		}, watchOpts...)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := watch.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start history watcher", zap.Error(err))
		}
		defer watch.Stop()
	}

	srv := server.NewServer(session, components.Store, components.Index, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// instantSleeper runs the stage script with no delay.
type instantSleeper struct{}

func (instantSleeper) Sleep(time.Duration) {}

func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", "./config.yaml", "where to write the config file")
	_ = fs.Parse(os.Args[2:])

	if err := writeDefaultConfig(*configPath); err != nil {
		fmt.Printf("Failed to write config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *configPath)
}

// writeDefaultConfig writes a config file populated with the default settings.
// Refuses to overwrite an existing file.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return config.Save(path, cfg)
}

// mimeFromExt maps a filename extension to the MIME type used for validation.
// Unknown extensions map to empty, which validation rejects.
func mimeFromExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return ""
	}
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	fast := fs.Bool("fast", false, "skip the staged progress delays")
	sampleID := fs.String("sample", "", "analyze a catalog sample instead of a file")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 && *sampleID == "" {
		fmt.Println("Usage: dealsense analyze [flags] <file>")
		fmt.Println("       dealsense analyze --sample <sample-id>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	var doc *models.UploadedDocument
	if *sampleID != "" {
		loaded, ok := resolveSample(*sampleID)
		if !ok {
			fmt.Printf("Unknown sample: %s\n", *sampleID)
			os.Exit(1)
		}
		doc = loaded
	} else {
		path := fs.Arg(0)
		info, err := os.Stat(path)
		if err != nil {
			fmt.Printf("Failed to stat file: %v\n", err)
			os.Exit(1)
		}
		name := filepath.Base(path)
		req := models.UploadRequest{
			Name:     name,
			Size:     info.Size(),
			MimeType: mimeFromExt(name),
		}
		if err := req.Validate(); err != nil {
			fmt.Printf("Cannot analyze %s: %v\n", name, err)
			os.Exit(1)
		}
		doc = &models.UploadedDocument{
			ID:           utils.NewID(),
			Name:         name,
			Size:         info.Size(),
			MimeType:     req.MimeType,
			UploadedAt:   time.Now(),
			DocumentType: classify.Detect(name),
		}
	}

	fmt.Printf("Analyzing %s (%s, %s)\n", doc.Name, doc.DocumentType, utils.FormatFileSize(doc.Size))

	var sleeper pipeline.Sleeper = pipeline.SystemSleeper{}
	if *fast || cfg.Processing.Fast {
		sleeper = instantSleeper{}
	}
	lastStage := -1
	runner := pipeline.NewRunner(sleeper, func(p pipeline.Progress) {
		if p.CurrentStage != lastStage {
			lastStage = p.CurrentStage
			stage := p.Stages[p.CurrentStage]
			fmt.Printf("  [%d/%d] %s\n", p.CurrentStage+1, len(p.Stages), stage.Label)
		}
	})
	runner.Run()

	gen := mockgen.New(mockgen.WithSource(rand.NewSource(time.Now().UnixNano())))
	result := gen.Generate(doc.ID, doc.DocumentType)

	if err := components.Store.Save(result); err != nil {
		logger.Warn("failed to save analysis to history", zap.Error(err))
	}
	if components.Index != nil {
		if err := components.Index.IndexAnalysis(result); err != nil {
			logger.Warn("failed to index analysis", zap.Error(err))
		}
	}

	printAnalysis(result)
}

func printAnalysis(a *models.AnalysisResult) {
	fmt.Println()
	fmt.Printf("Recommendation:  %s (%d%% confidence)\n", a.AIInsight.Recommendation, a.AIInsight.Confidence)
	fmt.Printf("Property value:  %s\n", utils.FormatCurrency(a.Metrics.PropertyValue))
	fmt.Printf("Cap rate:        %s\n", utils.FormatPercentage(a.Metrics.CapRate, 2))
	fmt.Printf("Occupancy:       %s\n", utils.FormatPercentage(a.Metrics.OccupancyRate, 1))
	fmt.Printf("NOI:             %s\n", utils.FormatMillions(a.Metrics.NetOperatingIncome))
	fmt.Println()
	fmt.Println("Key findings:")
	for _, f := range a.AIInsight.KeyFindings {
		fmt.Printf("  • %s\n", f)
	}
	fmt.Println()
	fmt.Printf("Analysis saved: %s\n", a.ID)
}

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	h := components.Store.Load()
	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(h); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Println(history.FormatSummary(components.Store))
		for _, a := range h.Analyses {
			fmt.Printf("  %s  %-14s %-12s %s at %s\n",
				utils.FormatDate(a.AnalyzedAt),
				a.DocumentType,
				a.AIInsight.Recommendation,
				utils.FormatCurrency(a.Metrics.PropertyValue),
				utils.FormatPercentage(a.Metrics.CapRate, 2))
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// resolveSample accepts either a catalog sample id or a document type alias
// like "rent-roll".
func resolveSample(key string) (*models.UploadedDocument, bool) {
	if doc, ok := samples.Load(key); ok {
		return doc, true
	}
	if entry, ok := samples.ByType(models.DocumentType(key)); ok {
		return samples.Load(entry.ID)
	}
	return nil, false
}

func runSamples() {
	for _, s := range samples.All() {
		fmt.Printf("%-22s %-14s %-10s %s\n", s.ID, s.Type, utils.FormatFileSize(s.Size), s.Name)
	}
}

func runClear() {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	if err := components.Store.Clear(); err != nil {
		fmt.Printf("Clear failed: %v\n", err)
		os.Exit(1)
	}
	if components.Index != nil {
		if err := components.Index.Rebuild(nil); err != nil {
			logger.Warn("failed to reset search index", zap.Error(err))
		}
	}
	fmt.Println("Analysis history cleared.")
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	h := components.Store.Load()
	diskBytes := history.DiskUsageBytes(
		cfg.Storage.HistoryPath,
		cfg.Storage.DatabasePath,
		cfg.Storage.IndexPath,
	)

	switch *outputFormat {
	case "json":
		resp := map[string]interface{}{
			"total_deals":      h.TotalDeals,
			"average_cap_rate": h.AverageCapRate,
			"total_value":      h.TotalValue,
			"backend":          cfg.Storage.Backend,
			"disk_usage_bytes": diskBytes,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("total_deals:       %d\n", h.TotalDeals)
		fmt.Printf("average_cap_rate:  %.2f%%\n", h.AverageCapRate)
		fmt.Printf("total_value:       %s\n", utils.FormatCurrency(h.TotalValue))
		fmt.Printf("backend:           %s\n", cfg.Storage.Backend)
		fmt.Printf("disk_usage:        %s\n", utils.FormatFileSize(diskBytes))
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store history.Store
	Index *search.Index
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	var store history.Store
	var err error
	switch cfg.Storage.Backend {
	case "file":
		store, err = history.NewFileStore(cfg.Storage.HistoryPath, logger)
	case "sqlite":
		store, err = history.NewSQLiteStore(cfg.Storage.DatabasePath, logger)
	case "memory":
		store = history.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	index, err := search.NewIndex(cfg.Storage.IndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize search index: %w", err)
	}

	// The index can drift from the store between runs; rebuild it from the
	// store on startup so search always reflects what history holds.
	h := store.Load()
	if err := index.Rebuild(h.Analyses); err != nil {
		logger.Warn("search index rebuild failed", zap.Error(err))
	}

	return &Components{Store: store, Index: index}, nil
}

func printUsage() {
	fmt.Println(`dealsense - AI-assisted real estate document analysis

Usage:
  dealsense server [flags]            Start the HTTP server
  dealsense init [flags]              Write a default config file
  dealsense analyze [flags] <file>    Analyze a document
  dealsense history [flags]           Show analysis history
  dealsense samples                   List sample documents
  dealsense clear [flags]             Clear analysis history
  dealsense status [flags]            Show totals and storage status
  dealsense version                   Show version
  dealsense help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/dealsense/config.yaml)
  --debug            Enable debug logging

Analyze Flags:
  --config string    Config file path
  --fast             Skip the staged progress delays
  --sample string    Analyze a catalog sample by id or document type

History Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)

Status Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)

Examples:
  dealsense server
  dealsense init --config ./config.yaml
  dealsense analyze parkside_rent_roll.xlsx
  dealsense analyze --fast --sample offering-memo
  dealsense history --output json
  dealsense status`)
}
