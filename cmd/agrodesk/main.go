// agrodesk is a terminal client for the Agro Auto-Resolve helpdesk. It
// opens a chat session against the backend and offers a dashboard view of
// tickets, agents, runbooks and metrics.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"agrodesk/pkg/api"
	"agrodesk/pkg/config"
	"agrodesk/pkg/logging"
	"agrodesk/pkg/session"
	"agrodesk/pkg/ui"
	"agrodesk/pkg/version"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version information and exit")
		configPath  = flag.String("config", "", "path to the configuration file")
		apiBaseURL  = flag.String("api", "", "backend base URL, overrides the configuration")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Summary())
		return
	}

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *apiBaseURL != "" {
		cfg.API.BaseURL = *apiBaseURL
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	logger.Info("agrodesk_starting", "version", version.Version, "api_base_url", cfg.API.BaseURL)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "agrodesk needs an interactive terminal")
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL)
	client.SetTimeout(cfg.API.Timeout())

	ctrl := session.NewController(cfg.User)
	model := ui.NewModel(client, ctrl)

	if _, err := tea.NewProgram(model).Run(); err != nil {
		slog.Error("program_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
