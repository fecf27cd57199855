package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rentaldash/internal/api"
	"rentaldash/internal/config"
	"rentaldash/internal/eventbus"
	"rentaldash/internal/logging"
	"rentaldash/internal/ui"
)

// app holds what every command needs once flags are parsed
type app struct {
	configPath string
	apiURL     string
	pageSize   int
	verbose    bool

	cfg    *config.Config
	log    *zap.Logger
	client *api.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "rentaldash",
		Short:         "Terminal dashboard for the vehicle rental backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to the config file")
	flags.StringVar(&a.apiURL, "api-url", "", "base URL of the rental API")
	flags.IntVar(&a.pageSize, "page-size", 0, "rows per page")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newListCmd(a), newReportCmd(a))
	return root
}

// setup loads the configuration, applies flag overrides and opens the log file
func (a *app) setup(cmd *cobra.Command) error {
	svc := config.NewConfigService()
	if a.configPath != "" {
		svc = config.NewConfigServiceWithPath(a.configPath)
	}
	cfg, err := svc.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = a.apiURL
	}
	if cmd.Flags().Changed("page-size") {
		cfg.UI.PageSize = a.pageSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Log.File, cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.client = api.New(cfg.API.BaseURL, cfg.API.Timeout.Duration, logger)
	logger.Info("starting", zap.String("command", cmd.Name()), zap.String("api", cfg.API.BaseURL))
	return nil
}

func (a *app) runTUI(ctx context.Context) error {
	bus := eventbus.New(a.log)
	defer bus.Close()

	model := ui.NewModel(a.cfg, bus, a.client, a.log)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Set up event forwarding to UI
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, t := range []eventbus.EventType{eventbus.EventAlert, eventbus.EventEntityChanged, eventbus.EventError} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	a.log.Info("exiting")
	return nil
}
