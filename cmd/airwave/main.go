package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlamsal/airwave/internal/catalog"
	"github.com/dlamsal/airwave/internal/config"
	"github.com/dlamsal/airwave/internal/domain"
	"github.com/dlamsal/airwave/internal/favorites"
	"github.com/dlamsal/airwave/internal/log"
	"github.com/dlamsal/airwave/internal/player"
	"github.com/dlamsal/airwave/internal/source"
	"github.com/dlamsal/airwave/internal/store"
	"github.com/dlamsal/airwave/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("airwave %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting airwave", "version", Version)

	// First run: ask for a name and a home country before opening the TUI
	if !cfg.Preferences.OnboardingCompleted {
		if err := runOnboarding(cfg); err != nil {
			return err
		}
	}

	// Open the persistent store; fall back to memory-only if it fails
	userStore, err := store.NewUserStore(config.DefaultDataPath())
	if err != nil {
		logger.Warn("persistent store unavailable, favorites will not survive restart", "error", err)
		userStore, _ = store.NewUserStore("")
	}
	defer userStore.Close()

	// Create station sources and services
	sources := source.NewSources(cfg, logger)
	catalogSvc := catalog.NewService(sources, logger)
	favoritesSvc := favorites.NewService(userStore, logger)

	// Create the playback controller around an mpv process
	backend := player.NewMPVBackend(cfg.Player.Command, cfg.Player.Args, logger)
	controller := player.NewController(backend, cfg.Player.Volume, logger)
	controller.OnPlaying(func(st domain.Station) {
		favoritesSvc.RecordRecentPlay(st)
		favoritesSvc.RecordPlay(st.ID)
	})

	// Create TUI model
	model := tui.NewModel(cfg, catalogSvc, favoritesSvc, controller)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	controller.Stop()
	logger.Info("shutting down")
	return nil
}

// runOnboarding prompts for a username and a home country on first run.
// Skipped when stdin is not a terminal so scripted runs keep the defaults.
func runOnboarding(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		cfg.Preferences.OnboardingCompleted = true
		return config.SaveConfig(cfg)
	}

	fmt.Println()
	fmt.Println("Welcome to Airwave!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("What should we call you? (press enter to skip): ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if name := strings.TrimSpace(input); name != "" {
		cfg.Preferences.Username = name
	}

	fmt.Printf("Home country for the station filter [%s]: ", cfg.Preferences.Country)
	input, err = reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if country := strings.TrimSpace(input); country != "" {
		cfg.Preferences.Country = country
	}

	cfg.Preferences.OnboardingCompleted = true
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()

	return nil
}
