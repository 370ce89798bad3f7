package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quicknotes/internal/ai"
	"quicknotes/internal/cli"
	"quicknotes/internal/config"
	"quicknotes/internal/logs"
	"quicknotes/internal/notes"
	"quicknotes/internal/tags"
	"quicknotes/internal/tui"
	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/theme"
	"quicknotes/internal/watch"
)

func main() {
	// Parse CLI flags
	dirFlag := flag.String("dir", "", "Notes directory")
	flag.StringVar(dirFlag, "d", "", "Notes directory (shorthand)")
	aiFlag := flag.String("ai", "", "AI auto-tagging: on or off")
	viewFlag := flag.String("view", "", "Initial view: notes, tags, reminders")
	flag.Parse()

	cliFlags := config.CLIFlags{
		DataDir: *dirFlag,
		AIMode:  *aiFlag,
	}

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create notes directory: %v", err)
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	store, err := notes.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open notes store: %v", err)
	}
	lib := notes.NewLibrary(store)

	secrets, err := config.NewSecrets()
	if err != nil {
		logs.Logger.Warnf("Could not open credential store: %v", err)
		secrets = config.NewSecretsAt(cfg.DataDir)
	}
	client := ai.NewClient(secrets.APIKey())

	// Check for CLI subcommands. AI tagging is asynchronous and the
	// process exits as soon as the command returns, so CLI adds always
	// use the keyword strategy.
	args := flag.Args()
	if len(args) > 0 {
		mgr := tags.NewManager(lib, store, theme.TagPalette(), client, cfg.WithoutAI(), secrets, tags.SyncDispatcher)
		lib.SetTagService(mgr)
		os.Exit(cli.Run(args, lib, mgr, secrets))
	}

	// Apply --view flag override
	if *viewFlag != "" {
		cfg.DefaultView = *viewFlag
	}

	// TUI mode. Deferred auto-tag results are sent into the event loop
	// so every mutation happens on the update goroutine.
	var program *tea.Program
	dispatch := func(fn func()) {
		if program != nil {
			program.Send(messages.ExecMsg{Fn: fn})
		}
	}
	mgr := tags.NewManager(lib, store, theme.TagPalette(), client, cfg, secrets, dispatch)
	mgr.OnInfo = func(msg string) {
		if program != nil {
			go program.Send(messages.StatusMsg{Text: msg})
		}
	}
	mgr.OnError = func(msg string) {
		if program != nil {
			go program.Send(messages.StatusMsg{Text: msg, IsError: true})
		}
	}
	lib.SetTagService(mgr)

	logs.Logger.Infof("Starting app in TUI mode")
	appModel := tui.NewAppModel(lib, mgr, cfg.DefaultView)
	program = tea.NewProgram(appModel, tea.WithAltScreen())

	// Pick up edits made by other processes.
	watcher, err := watch.New(store.NotesPath(), func() {
		program.Send(messages.NotesChangedMsg{})
	})
	if err != nil {
		logs.Logger.Warnf("Could not watch notes file: %v", err)
	} else {
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
