package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ux-career-assessment/internal/config"
	"ux-career-assessment/internal/logger"
)

// NewSweepCacheCmd removes expired and stale content cache entries.
func NewSweepCacheCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-cache",
		Short: "Remove expired or outdated cached content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Mode)
			if err != nil {
				return err
			}
			defer log.Sync()

			b, err := openBackends(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()

			removed := newCache(cfg, b.kv, log).ClearExpired(cmd.Context())
			log.Info("cache sweep finished", zap.Int("removed", removed))
			return nil
		},
	}
}
