package bootstrap

import (
	"fmt"

	"sequoiacare/config"
	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/infrastructure/database"
	"sequoiacare/internal/service"
	"sequoiacare/pkg/jwt"
	"sequoiacare/pkg/validator"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the sequoiacare CLI. Running it without a
// subcommand starts the API server.
func NewRootCommand() *cobra.Command {
	serveCmd := newServeCommand()

	rootCmd := &cobra.Command{
		Use:           "sequoiacare",
		Short:         "Sequoia Care provider directory API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newAdminCommand())
	return rootCmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			app, err := New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run()
		},
	}
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return database.MigrateUp(cfg.DB, NewLogger(cfg.App))
		},
	}

	var steps int
	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return database.MigrateDown(cfg.DB, NewLogger(cfg.App), steps)
		},
	}
	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	return migrateCmd
}

func newAdminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var req dto.UserCreateRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.NewValidator()
			if err := v.Validate(&req); err != nil {
				return fmt.Errorf("invalid admin: %v", v.FormatValidationErrors(err))
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := NewLogger(cfg.App)

			db, err := database.NewPostgresConnection(cfg.DB, log, false)
			if err != nil {
				return err
			}
			app := &App{Config: cfg, Log: log, DB: db}
			defer app.Close()

			authUsecase := NewAuthUsecase(cfg, db, service.NewMemoryTokenStore(), jwt.NewJWTService(cfg.JWT), log)
			user, err := authUsecase.CreateAdmin(cmd.Context(), &req)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			log.Infof("Admin %s created with id %d", user.Email, user.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&req.Email, "email", "", "admin email")
	createCmd.Flags().StringVar(&req.Senha, "senha", "", "admin password")
	createCmd.Flags().StringVar(&req.Nome, "nome", "", "first name")
	createCmd.Flags().StringVar(&req.Sobrenome, "sobrenome", "", "last name")
	for _, name := range []string{"email", "senha", "nome", "sobrenome"} {
		_ = createCmd.MarkFlagRequired(name)
	}

	adminCmd.AddCommand(createCmd)
	return adminCmd
}
