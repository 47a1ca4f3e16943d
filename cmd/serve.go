package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"bdl-cms/app"
	"bdl-cms/cache"
	"bdl-cms/config"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)
			if e.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			db, closeDB, err := openDB(e)
			if err != nil {
				return err
			}
			defer closeDB()

			if migrate {
				if err := config.Migrate(db); err != nil {
					return err
				}
			}

			c := cache.New(e.cfg.RedisURL, e.cfg.CacheTTL, e.log)
			defer c.Close()

			a := app.New(db, c, e.cfg, e.log)
			if err := a.Scheduler.Start(e.cfg.CloseScrutinsSpec); err != nil {
				return err
			}
			defer a.Scheduler.Stop()

			srv := &http.Server{
				Addr:              ":" + e.cfg.Port,
				Handler:           a.Router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				e.log.WithField("port", e.cfg.Port).Info("Server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			e.log.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations before serving")
	return cmd
}
