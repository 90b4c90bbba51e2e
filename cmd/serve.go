package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kasuboski/marquee/pkg/cache"
	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const cachePurgeInterval = 5 * time.Minute

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the discovery api",
	Long:  `start the discovery api`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			logger.Get().Fatal(err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go purgeExpired(ctx, a.log, a.cache)

		s := server.New(a.log, a.manager, a.config)
		if err := s.Serve(ctx); err != nil {
			a.log.Error(err)
		}
	},
}

// purgeExpired drops expired TMDB responses until ctx is done.
func purgeExpired(ctx context.Context, log *zap.SugaredLogger, c *cache.Cache[string, []byte]) {
	ticker := time.NewTicker(cachePurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Purge(); n > 0 {
				log.Debugw("purged expired tmdb responses", "purged", n, "remaining", c.Size())
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
