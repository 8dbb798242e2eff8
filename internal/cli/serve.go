package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/youruser/cardsheet/internal/api"
	"github.com/youruser/cardsheet/internal/sheet"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		f    layoutFlags
		addr string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and sheet HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if addr == "" {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				addr = ":" + port
			}

			gin.SetMode(gin.ReleaseMode)
			srv := api.NewServer(cfg, sheet.NewRunner(cfg.Workers(), c.Logger), c.Logger)
			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           api.NewEngine(srv),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return c.listen(cmd.Context(), httpSrv)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT or :8080)")
	return cmd
}

// listen serves until ctx is canceled, then shuts down gracefully.
func (c *CLI) listen(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("starting server", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
