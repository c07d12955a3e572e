package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	identityapp "github.com/carobar/backend/internal/application/identity"
	"github.com/carobar/backend/internal/domain/identity"
	"github.com/carobar/backend/internal/infrastructure/auth"
	"github.com/carobar/backend/internal/infrastructure/config"
	"github.com/carobar/backend/internal/infrastructure/logger"
	"github.com/carobar/backend/internal/infrastructure/migration"
	"github.com/carobar/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultCreateDir = "internal/infrastructure/migration/" + migration.SourceDir

func main() {
	var (
		createDir string
		logLevel  string
	)
	flag.StringVar(&createDir, "dir", defaultCreateDir, "Directory new migrations are written to (create only)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	// Commands that do not touch the database
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(createDir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created successfully",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		migrations, err := migration.Embedded()
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Embedded migrations", zap.Int("count", len(migrations)))
		for _, m := range migrations {
			fmt.Printf("  %06d  %s\n", m.Version, m.Name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "bootstrap" {
		if err := bootstrap(cfg, args[1:], log); err != nil {
			log.Fatal("Bootstrap failed", zap.Error(err))
		}
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if !hasConfirm(args[1:]) {
			log.Fatal("Down drops every table. Use 'migrate down -confirm' to confirm.")
		}
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
			return
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// bootstrap creates the first admin user of a company so it can sign in
func bootstrap(cfg *config.Config, args []string, log *zap.Logger) error {
	fs := flag.NewFlagSet("bootstrap", flag.ContinueOnError)
	companyFlag := fs.String("company", "", "Company ID (a new one is generated when empty)")
	username := fs.String("username", "admin", "Username of the admin user")
	password := fs.String("password", os.Getenv("CAROBAR_BOOTSTRAP_PASSWORD"), "Password (defaults to $CAROBAR_BOOTSTRAP_PASSWORD)")
	displayName := fs.String("name", "Administrator", "Display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return fmt.Errorf("a password is required: pass -password or set CAROBAR_BOOTSTRAP_PASSWORD")
	}

	companyID := uuid.New()
	if *companyFlag != "" {
		id, err := uuid.Parse(*companyFlag)
		if err != nil {
			return fmt.Errorf("invalid company id %q: %w", *companyFlag, err)
		}
		companyID = id
	}

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, logger.MapGormLogLevel("warn")))
	if err != nil {
		return err
	}
	defer db.Close()

	authService := identityapp.NewAuthService(
		persistence.NewGormUserRepository(db.DB),
		auth.NewJWTService(cfg.JWT),
		nil,
		log,
	)
	user, err := authService.CreateUser(context.Background(), identityapp.CreateUserInput{
		CompanyID:   companyID,
		Username:    *username,
		Password:    *password,
		DisplayName: *displayName,
		RoleID:      int(identity.RoleAdmin),
	})
	if err != nil {
		return err
	}

	log.Info("Admin user created",
		zap.String("company_id", user.CompanyID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)
	return nil
}

func hasConfirm(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`Carobar database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down -confirm         Roll back all migrations (drops every table)
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version after fixing a dirty state
  list                  List the migrations embedded in this binary
  create <name> [desc]  Create a new migration file pair under -dir
  bootstrap [flags]     Create a company admin user
      -company <uuid>   Existing company ID (default: generate one)
      -username <name>  Admin username (default: admin)
      -password <pw>    Admin password (default: $CAROBAR_BOOTSTRAP_PASSWORD)
      -name <display>   Display name

Flags:
  -dir string           Directory for new migrations (default: internal/infrastructure/migration/sql)
  -log-level string     Log level: debug, info, warn, error (default: info)

Database settings come from config.toml and CAROBAR_DATABASE_* environment variables.`)
}
