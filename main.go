package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"chronolist/internal/chrono"
	"chronolist/internal/config"
	"chronolist/internal/document"
	"chronolist/internal/gitlog"
	"chronolist/internal/history"
	"chronolist/internal/logs"
	"chronolist/internal/match"
	"chronolist/internal/tui"
)

func main() {
	// Parse CLI flags
	repoFlag := flag.String("repo", "", "Path to the git repository")
	flag.StringVar(repoFlag, "r", "", "Path to the git repository (shorthand)")
	sourceFlag := flag.String("source", "", "Tracked document name inside the repository")
	outputFlag := flag.String("output", "", "Output document name")
	sectionsFlag := flag.String("sections", "", "Only emit sections matching these names (comma-separated)")
	quietFlag := flag.Bool("quiet", false, "Suppress progress output")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(config.CLIFlags{
		RepoPath:   *repoFlag,
		SourceFile: *sourceFlag,
		OutputFile: *outputFlag,
		Sections:   config.ParseCommaSeparated(*sectionsFlag),
	})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	// Prompt for the repository path when nothing supplied it
	if cfg.RepoPath == "" {
		path, err := tui.Ask("Repository path", "~/awesome-list", "", func(s string) error {
			return tui.ValidateDir(config.ExpandPath(s))
		})
		if err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				os.Exit(1)
			}
			log.Fatalf("Failed to read repository path: %v", err)
		}
		cfg.RepoPath = config.ExpandPath(path)
	}

	// Reinitialize logger next to the repository
	if err := logs.Initialize(cfg.RepoPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	os.Exit(run(cfg, *quietFlag))
}

func run(cfg *config.Config, quiet bool) int {
	announce := func(msg string) {
		logs.Logger.Println(msg)
		if !quiet {
			fmt.Println(msg)
		}
	}

	announce("reading git history...")
	rawLog, err := gitlog.History(cfg.RepoPath, cfg.SourceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	announce("extracting additions...")
	records := history.Extract(rawLog)
	logs.Logger.Printf("extracted %d distinct added lines", len(records))

	announce("parsing document...")
	content, err := os.ReadFile(cfg.SourcePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read %s: %v\n", cfg.SourcePath(), err)
		return 1
	}
	items := document.Parse(string(content))

	announce("matching entries...")
	results, stats := match.Match(items, records)
	if len(cfg.Sections) > 0 {
		results = chrono.FilterSections(results, cfg.Sections)
	}

	announce("writing chronological view...")
	rendered := chrono.Render(results)
	if err := os.WriteFile(cfg.OutputPath(), []byte(rendered), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write %s: %v\n", cfg.OutputPath(), err)
		return 1
	}

	fmt.Printf("%s written\n", cfg.OutputPath())
	fmt.Printf("matched %d/%d entries (%.1f%%), %d inferred\n",
		stats.Matched, stats.Total, stats.Rate(), stats.Inferred)
	return 0
}
