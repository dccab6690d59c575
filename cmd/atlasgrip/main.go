package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"atlasgrip/internal/config"
	"atlasgrip/internal/eventbus"
	"atlasgrip/internal/logging"
	"atlasgrip/internal/project"
	"atlasgrip/internal/ui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every command needs once flags and config are read
type app struct {
	bus      eventbus.EventBus
	cfg      *config.Config
	manager  project.Manager
	closeLog func() error
}

func (a *app) close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// newRootCmd builds the command tree. Each call returns fresh instances so
// tests can run commands in isolation.
func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	cmd := &cobra.Command{
		Use:   "atlasgrip [project]",
		Short: "Browse and edit sprite atlas projects",
		Long: `atlasgrip shows a project's atlases, folders and sprites as a tree.
Rows are selected with space, ctrl+space and shift+arrows the way a file
manager does it. Selected atlases can be removed and new ones registered.

Running without a subcommand launches the interactive TUI.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, cfgFile, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the user config dir)")
	cmd.PersistentFlags().String("project", "", "project descriptor to open")
	cmd.PersistentFlags().String("log-level", "", `log level ("debug", "info", "warn", "error")`)
	cmd.PersistentFlags().String("log-file", "", "file the log is written to")

	cmd.AddCommand(newTreeCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newAddAtlasCmd(a))
	return cmd
}

// setup reads the config, starts logging and opens the project if it exists
func (a *app) setup(cmd *cobra.Command, cfgFile string, args []string) error {
	a.bus = eventbus.New()

	cfg, err := config.NewConfigServiceWithBus(cfgFile, a.bus, cmd.Flags()).Load()
	if err != nil {
		return err
	}
	if !cmd.HasParent() && len(args) == 1 {
		cfg.Project = args[0]
	}
	a.cfg = cfg

	closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.closeLog = closeLog
	logging.Infof("Starting atlasgrip %s with project %s", version, cfg.Project)

	a.manager = project.NewManager(a.bus, nil)
	if _, err := os.Stat(cfg.Project); err == nil {
		return a.manager.Open(cfg.Project)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat project: %w", err)
	}
	return nil
}

// requireProject fails commands that need an existing descriptor
func (a *app) requireProject() error {
	if a.manager.Project().Path == "" {
		return fmt.Errorf("project %s not found", a.cfg.Project)
	}
	return nil
}

func runTUI(a *app) error {
	model := ui.NewModel(a.bus, a.cfg, a.manager)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	a.bus.Subscribe(eventbus.EventError, forward)

	logging.Infof("Starting TUI")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
