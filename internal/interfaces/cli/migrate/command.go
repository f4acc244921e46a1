// Package migrate implements the database migration commands.
package migrate

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/terplist/terplist/internal/domain/user"
	"github.com/terplist/terplist/internal/infrastructure/auth"
	"github.com/terplist/terplist/internal/infrastructure/config"
	"github.com/terplist/terplist/internal/infrastructure/database"
	"github.com/terplist/terplist/internal/infrastructure/migration"
	"github.com/terplist/terplist/internal/infrastructure/repository"
	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/id"
	"github.com/terplist/terplist/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply database migrations and seed the initial admin account.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newSeedAdminCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newSeedAdminCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the initial global admin user",
		Long:  `Create a global admin user interactively. The password is read from the terminal without echo.`,
		RunE:  runSeedAdmin,
	}
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	biztime.MustInit(cfg.Time.BusinessTimezone)
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return logger.NewLogger(), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	manager := migration.NewManager(env)
	if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations applied", "environment", env)
	return nil
}

func runSeedAdmin(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Admin email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Admin name: ")
	name, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	name = strings.TrimSpace(name)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(passwordBytes) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	cfg := config.Get()
	hasher := auth.NewPasswordHasher(cfg.Auth.Password.BcryptCost)
	passwordHash, err := hasher.Hash(string(passwordBytes))
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userRepo := repository.NewUserRepository(database.Get(), log)
	ctx := cmd.Context()

	exists, err := userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return fmt.Errorf("a user with email %s already exists", email)
	}

	sid, err := id.GenerateWithPrefix(id.PrefixUser, id.DefaultLength)
	if err != nil {
		return fmt.Errorf("failed to generate user sid: %w", err)
	}

	entity, err := user.NewUser(sid, email, name, passwordHash)
	if err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	entity.PromoteToAdmin()

	if err := userRepo.Create(ctx, entity); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Infow("admin user created", "id", sid, "email", email)
	fmt.Printf("Created global admin %s (%s)\n", email, sid)
	return nil
}
