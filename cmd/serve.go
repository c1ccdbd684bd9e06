package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gitissues/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP service",
	Long:  `Runs the HTTP service answering GET /search?githubUrl=<url> with open issue counts per time window.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e := httpapi.NewServer(httpapi.NewSearchHandler(a.aggregator, a.logger), a.logger)
		return httpapi.Run(ctx, e, a.cfg.Server.Addr, a.cfg.Server.ShutdownTimeout, a.logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
