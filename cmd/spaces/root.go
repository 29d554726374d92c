package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/LyzrCore/spaces/internal/apps"
	"github.com/LyzrCore/spaces/internal/config"
	"github.com/LyzrCore/spaces/internal/telemetry"
	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/registry"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// Styles for terminal output
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
)

type rootOptions struct {
	configPath string
	overrides  []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "spaces",
		Short:         "Lyzr Spaces - demo dashboards backed by a mock agent orchestrator",
		Long:          `Serve, render and exercise the Lyzr Spaces demo apps from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (YAML)")
	cmd.PersistentFlags().StringArrayVarP(&opts.overrides, "option", "o", nil, "config override key=value (repeatable)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newSubmitCmd(opts),
		newAppsCmd(opts),
		newOpenAPICmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// runtime is what every command builds from configuration: logging,
// telemetry, the registry and the app catalog.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
	catalog  *apps.Catalog
	palette  ui.Palette
	shutdown telemetry.ShutdownFunc
}

func (o *rootOptions) runtime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(o.configPath, o.overrides...)
	if err != nil {
		return nil, err
	}
	logger := telemetry.ConfigureSlog(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	shutdown, err := telemetry.Init(telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Exporter: cfg.Telemetry.Exporter,
		Service:  cfg.Telemetry.Service,
		Version:  version,
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	reg := registry.Default()
	if cfg.Registry.Path != "" {
		if reg, err = registry.Load(cfg.Registry.Path); err != nil {
			return nil, err
		}
	}

	ids, err := orchestrator.IDGeneratorByName(cfg.Orchestrator.IDs)
	if err != nil {
		return nil, err
	}
	selector, err := ui.NewManifestSelector("", ui.DefaultManifest())
	if err != nil {
		return nil, err
	}
	palette, err := ui.SelectPalette(selector, cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, err
	}
	catalog, err := apps.Build(reg,
		apps.WithPalette(palette),
		apps.WithOrchestratorOptions(
			orchestrator.WithIDGenerator(ids),
			orchestrator.WithStageDelays(cfg.Orchestrator.Delays.StageDelays()),
		),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("runtime ready", "apps", catalog.Len(), "registry", reg.Len())

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		catalog:  catalog,
		palette:  palette,
		shutdown: shutdown,
	}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.shutdown(ctx); err != nil {
		r.logger.Warn("telemetry shutdown failed", "error", err)
	}
}

func (r *runtime) app(id string) (*app.App, error) {
	a, ok := r.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown app %q (available: %s)", id, strings.Join(r.catalog.IDs(), ", "))
	}
	return a, nil
}
