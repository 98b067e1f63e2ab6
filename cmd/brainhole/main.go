package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dax233/brainhole/internal/cli"
	"github.com/dax233/brainhole/internal/config"
	"github.com/dax233/brainhole/internal/db"
	"github.com/dax233/brainhole/internal/dispatch"
	"github.com/dax233/brainhole/internal/importer"
	"github.com/dax233/brainhole/internal/lexicon"
	"github.com/dax233/brainhole/internal/repository"
	"github.com/dax233/brainhole/internal/wordgen"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := resolveConfigPath(os.Args[1:])

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}

	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	entries := repository.NewSQLiteEntryRepo(database)
	importLogs := repository.NewSQLiteImportLogRepo(database)
	wordLogs := repository.NewSQLiteGeneratedWordRepo(database)

	registry, err := lexicon.FromSettings(cfg.Lexicons, entries)
	if err != nil {
		return fmt.Errorf("building lexicon registry: %w", err)
	}

	var generator dispatch.WordGenerator
	if cfg.WordGenerator.Enabled {
		generator = buildGenerator(cfg, registry, entries, wordLogs)
	}

	app := &cli.App{
		Config:    cfg,
		Registry:  registry,
		Entries:   entries,
		Router:    dispatch.NewRouter(registry, entries, generator),
		Importer:  importer.NewService(entries, importLogs, cfg.BaseDataPath),
		Generator: generator,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// resolveConfigPath picks the config file before cobra parses anything:
// the services have to exist before the command tree is built. Flag
// beats env beats the working-directory default.
func resolveConfigPath(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	if env := os.Getenv("BRAINHOLE_CONFIG"); env != "" {
		return env
	}
	return "config.json"
}

func buildGenerator(cfg *config.Config, registry *lexicon.Registry, entries repository.EntryRepo, wordLogs repository.GeneratedWordRepo) *wordgen.Service {
	var observer wordgen.Observer = wordgen.NoopObserver{}
	if os.Getenv("BRAINHOLE_LOG_CHAT_CALLS") != "" {
		observer = wordgen.NewLogObserver(os.Stderr)
	}

	client := wordgen.NewChatClient(wordgen.ClientConfig{
		BaseURL: cfg.WordGenerator.BaseURL,
		Model:   cfg.WordGenerator.ModelName,
		APIKeys: cfg.WordGenerator.APIKeys,
		Timeout: time.Duration(cfg.WordGenerator.TimeoutMs) * time.Millisecond,
	}, observer)

	sources := make([]wordgen.Source, 0, len(registry.All()))
	for _, d := range registry.All() {
		sources = append(sources, wordgen.Source{Table: d.Table, Column: d.SearchColumn})
	}

	// keys were validated as integers at config load
	weights := make(map[int]float64, len(cfg.WordGenerator.GenerationProbabilities))
	for length, weight := range cfg.WordGenerator.GenerationProbabilities {
		n, _ := strconv.Atoi(length)
		weights[n] = weight
	}

	return wordgen.NewService(entries, wordLogs, client, cfg.WordGenerator.ModelName, sources, wordgen.Config{
		MaxPerRequest: cfg.WordGenerator.MaxCombinationsPerRequest,
		LengthWeights: weights,
	})
}
