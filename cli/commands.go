package cli

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"blogue/app/auth"
	"blogue/app/config"
	"blogue/app/repositories"
	"blogue/app/services"
	"blogue/app/uploads"
	"blogue/routes"

	"github.com/dgraph-io/badger/v4"
)

// HandleCommand handles blog subcommands
func HandleCommand(args []string) {
	if len(args) < 1 {
		printHelp()
		os.Exit(1)
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		serve()
	case "clean":
		clean()
	case "init":
		initDb()
	case "backup":
		backup()
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			os.Exit(1)
		}
		restore(args[1])
	case "migrate":
		if len(args) < 2 {
			fmt.Println("Error: legacy posts.json path required for migrate")
			os.Exit(1)
		}
		migrate(args[1])
	case "help":
		printHelp()
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
}

// printHelp prints help for blog subcommands
func printHelp() {
	helpText := `Usage: blogue <command> [options]

Commands:
  serve                          Run the blog service
  clean                          Clean the blog database
  init                           Initialize a new empty database
  backup                         Create a backup of the database
  restore <file>                 Restore database from backup
  migrate <posts.json>           Import posts from a legacy flat file
  help                           Display this help message

Configuration comes from the environment: BLOGUE_ADDR, BLOGUE_BACKEND
(badger|file|postgres), BLOGUE_DB_PATH, DATABASE_URL, BLOGUE_UPLOAD_DIR,
ADMIN_USERNAME, ADMIN_PASSWORD.
`
	fmt.Println(helpText)
}

// openRepositories builds the configured storage backend. The returned
// closer must be called on shutdown.
func openRepositories(cfg *config.Config) (repositories.PostRepository, repositories.UserRepository, func(), error) {
	switch cfg.Backend {
	case "badger":
		opts := badger.DefaultOptions(badgerPath(cfg)).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open Badger DB: %v", err)
		}
		return repositories.NewBadgerPostRepository(db),
			repositories.NewBadgerUserRepository(db),
			func() { db.Close() },
			nil

	case "file":
		if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
			return nil, nil, nil, err
		}
		posts, err := repositories.NewFilePostRepository(filepath.Join(cfg.DBPath, "posts.json"))
		if err != nil {
			return nil, nil, nil, err
		}
		users, err := repositories.NewFileUserRepository(filepath.Join(cfg.DBPath, "users.json"))
		if err != nil {
			return nil, nil, nil, err
		}
		return posts, users, func() {}, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to reach Postgres: %v", err)
		}
		if err := repositories.Migrate(db); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to migrate schema: %v", err)
		}
		return repositories.NewPostgresPostRepository(db),
			repositories.NewPostgresUserRepository(db),
			func() { db.Close() },
			nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func badgerPath(cfg *config.Config) string {
	return filepath.Join(cfg.DBPath, "badger")
}

// serve starts the blog service
func serve() {
	cfg := config.Load()

	posts, users, closer, err := openRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closer()

	saver, err := uploads.NewSaver(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	contentService := services.NewContentService(posts)
	authService := services.NewAuthService(users)
	sessions := auth.NewSessionStore()

	if err := authService.EnsureDefaultAdmin(cfg.AdminUser, cfg.AdminPass); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	router := routes.SetupRoutes(contentService, authService, sessions, saver, "")

	log.Printf("Starting blog service on %s (backend: %s)", cfg.Addr, cfg.Backend)
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// clean removes the database
func clean() {
	dbPath := badgerPath(config.Load())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return
	}

	fmt.Print("Are you sure you want to clean the database? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(dbPath); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")
}

// initDb initializes a new empty database
func initDb() {
	dbPath := badgerPath(config.Load())
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	opts := badger.DefaultOptions(dbPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	fmt.Println("Database initialized successfully")
}

// backup creates a backup of the database
func backup() {
	cfg := config.Load()
	dbPath := badgerPath(cfg)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return
	}

	backupDir := filepath.Join(cfg.DBPath, "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		log.Fatalf("Failed to create backup directory: %v", err)
	}

	opts := badger.DefaultOptions(dbPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		log.Fatalf("Failed to create backup file: %v", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		log.Fatalf("Failed to backup database: %v", err)
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
}

// restore restores the database from a backup
func restore(backupFile string) {
	dbPath := badgerPath(config.Load())
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return
	}

	if _, err := os.Stat(dbPath); err == nil {
		fmt.Print("Existing database found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return
		}
		if err := os.RemoveAll(dbPath); err != nil {
			log.Fatalf("Failed to remove existing database: %v", err)
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	opts := badger.DefaultOptions(dbPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		log.Fatalf("Failed to open backup file: %v", err)
	}
	defer f.Close()

	if err := db.Load(f, 4); err != nil {
		log.Fatalf("Failed to restore database: %v", err)
	}

	fmt.Println("Database restored successfully")
}
