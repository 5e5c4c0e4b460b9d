package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/clustertop/internal/config"
	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/monitor"
	"github.com/rileyhilliard/clustertop/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write into, default "."
	Grid           string // Pre-selected grid preset
	Interval       string // Pre-selected update interval
	Source         string // Pre-selected source kind
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
	Out            io.Writer
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .clustertop.yaml config file",
	Long: `Create a .clustertop.yaml config file in the current directory.

Prompts for the grid preset, update interval and cluster source. The
--grid, --interval and --source flags pre-fill the answers. Use
--non-interactive to write them without prompting.

Examples:
  clustertop init
  clustertop init --non-interactive --grid 3x3 --source kube
  clustertop init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Out = cmd.OutOrStdout()
		// The global --grid, --interval and --source flags pre-fill the answers.
		if f := cmd.Flag("grid"); f != nil && f.Changed {
			opts.Grid = globals.Grid
		}
		if f := cmd.Flag("interval"); f != nil && f.Changed {
			opts.Interval = globals.Interval.String()
		}
		if f := cmd.Flag("source"); f != nil && f.Changed {
			opts.Source = globals.Source
		}
		return Init(opts)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initOpts.Overwrite, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts and use defaults")
}

// Init creates a new .clustertop.yaml configuration file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	grid := firstNonEmpty(opts.Grid, cfg.Grid)
	interval := firstNonEmpty(opts.Interval, cfg.UpdateInterval.String())
	source := firstNonEmpty(opts.Source, cfg.Source.Kind)

	if !opts.NonInteractive {
		if err := promptInit(&grid, &interval, &source, cfg); err != nil {
			return err
		}
	}

	cfg.Grid = grid
	d, err := parseInterval(interval)
	if err != nil {
		return err
	}
	cfg.UpdateInterval = d
	cfg.Source.Kind = source

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(cfg, configPath, true); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Success("Created "+configPath))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  clustertop            # Start the dashboard")
	fmt.Fprintln(out, "  clustertop presets    # See other grid sizes")
	if source == config.SourceKube {
		fmt.Fprintln(out, ui.Muted("  The kube source needs metrics-server for CPU and memory usage."))
	}
	return nil
}

// promptInit collects the init answers interactively. Empty answers keep
// the pre-filled values.
func promptInit(grid, interval, source *string, cfg *config.Config) error {
	presetOptions := make([]huh.Option[string], len(monitor.Presets))
	for i, p := range monitor.Presets {
		presetOptions[i] = huh.NewOption(fmt.Sprintf("%s (%d nodes)", p.Name, p.Capacity()), p.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Grid preset").
				Description("Node panels shown at once; extra nodes are counted in the summary").
				Options(presetOptions...).
				Value(grid),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Update interval").
				Description("Time between data updates").
				Placeholder(cfg.UpdateInterval.String()).
				Value(interval).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := parseInterval(s)
					if err != nil {
						return fmt.Errorf("use a duration of at least %s, like 1s or 500ms", monitor.MinUpdateInterval)
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Cluster source").
				Options(
					huh.NewOption("fake (generated demo cluster)", config.SourceFake),
					huh.NewOption("kube (current kubeconfig context)", config.SourceKube),
				).
				Value(source),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	if strings.TrimSpace(*interval) == "" {
		*interval = cfg.UpdateInterval.String()
	}
	return nil
}

// parseInterval parses an update interval and enforces the minimum.
func parseInterval(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", s),
			"Try something like 1s, 2s, or 500ms.")
	}
	if d < monitor.MinUpdateInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Update interval %s is too short", d),
			fmt.Sprintf("Use an interval of at least %s", monitor.MinUpdateInterval))
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
