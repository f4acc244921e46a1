// Package rank implements the manual ranking snapshot command, for running
// the daily snapshot from an external cron instead of the in-process
// scheduler.
package rank

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	rankingusecases "github.com/terplist/terplist/internal/application/ranking/usecases"
	"github.com/terplist/terplist/internal/infrastructure/cache"
	"github.com/terplist/terplist/internal/infrastructure/config"
	"github.com/terplist/terplist/internal/infrastructure/database"
	"github.com/terplist/terplist/internal/infrastructure/repository"
	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/db"
	"github.com/terplist/terplist/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Run the daily rating snapshot once",
		Long:  `Compute and persist today's rating snapshot for every producer category. The redis run lock still applies, so concurrent invocations are safe.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	biztime.MustInit(cfg.Time.BusinessTimezone)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	uc := rankingusecases.NewRecordDailyRankingUseCase(
		repository.NewProducerRepository(database.Get(), log),
		repository.NewVoteRepository(database.Get(), log),
		repository.NewSnapshotRepository(database.Get(), log),
		db.NewTransactionManager(database.Get()),
		cache.NewRankLock(redisClient, time.Duration(cfg.Ranking.LockTTLMinutes)*time.Minute),
		log.Named("snapshot"),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Ranking.JobTimeoutMinutes)*time.Minute)
	defer cancel()

	count, err := uc.Execute(ctx)
	if err != nil {
		return fmt.Errorf("snapshot run failed: %w", err)
	}

	fmt.Printf("Recorded %d rating snapshots\n", count)
	return nil
}
