package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/ui"
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "clustertop",
	Short: "Live terminal dashboard for cluster node health",
	Long: `clustertop polls a cluster state source on a fixed interval and draws a
grid of node panels, a cluster summary, and a ranked alert list.

The fake source generates a demo cluster. The kube source reads nodes and
metrics.k8s.io usage from the current kubeconfig context.

Examples:
  clustertop
  clustertop --grid 3x3 --interval 2s
  clustertop --source kube --metrics-addr :9090
  clustertop --headless | tee cluster.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runDashboard(cmd.Context(), cfg, dashboardIO{
			Out:      cmd.OutOrStdout(),
			ErrOut:   cmd.ErrOrStderr(),
			Headless: globals.Headless,
		})
	},
}

func init() {
	registerGlobalFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError leaves coded errors alone, since they render their own
// symbol, and marks plain ones such as cobra flag errors.
func formatError(err error) string {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		return err.Error()
	}
	return ui.Failure(err.Error())
}
