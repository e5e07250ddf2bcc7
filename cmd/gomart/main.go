// gomart es el binario único del backend: servidor REST, migraciones y
// seed de datos de arranque.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gomart/gomart/internal/bootstrap"
	"github.com/gomart/gomart/internal/config"
	"github.com/gomart/gomart/internal/domain/model"
	httpx "github.com/gomart/gomart/internal/http"
	"github.com/gomart/gomart/internal/observability/logger"
	"github.com/gomart/gomart/internal/security/password"
	"github.com/gomart/gomart/internal/store"
	"github.com/gomart/gomart/internal/store/gateway"
	"github.com/gomart/gomart/internal/store/pg"
	migrations "github.com/gomart/gomart/migrations/postgres"
)

func main() {
	// .env es opcional; el entorno real siempre gana
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:          "gomart",
		Short:        "Backend REST de e-commerce",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path al config.yaml (opcional)")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(seedCmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor REST",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := bootstrap.NewApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			srv := httpx.NewServer(httpx.ServerConfig{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     config.Dur(cfg.Server.ReadTimeout, 0),
				WriteTimeout:    config.Dur(cfg.Server.WriteTimeout, 0),
				IdleTimeout:     config.Dur(cfg.Server.IdleTimeout, 0),
				ShutdownTimeout: config.Dur(cfg.Server.ShutdownTimeout, 0),
			}, app.Handler)

			return srv.Run(ctx)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Aplica o revierte las migraciones de Postgres",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate: storage driver %q no usa migraciones", cfg.Storage.Driver)
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			defer logger.Sync()

			ctx := context.Background()
			st, err := store.Open(ctx, store.Config{
				Driver:   cfg.Storage.Driver,
				DSN:      cfg.Storage.DSN,
				MaxConns: int32(cfg.Storage.MaxConns),
			})
			if err != nil {
				return err
			}
			defer st.Close()

			pgStore, ok := st.(*pg.Store)
			if !ok {
				return fmt.Errorf("migrate: el driver %q no expone un pool", cfg.Storage.Driver)
			}

			action := "up"
			if len(args) > 0 {
				action = args[0]
			}
			switch action {
			case "up":
				return pg.Migrate(ctx, pgStore.Pool(), migrations.FS)
			case "down":
				return pg.MigrateDown(ctx, pgStore.Pool(), migrations.FS, steps)
			default:
				return fmt.Errorf("migrate: acción desconocida %q (up|down)", action)
			}
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "Cantidad de migraciones down a revertir (0 = todas)")
	return cmd
}

func seedCmd(configPath *string) *cobra.Command {
	var (
		adminEmail    string
		adminPassword string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea el usuario admin y las categorías iniciales",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if adminPassword == "" {
				return fmt.Errorf("seed: falta --admin-password")
			}

			ctx := context.Background()
			app, err := bootstrap.NewApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := seedAdmin(ctx, app, adminEmail, adminPassword, cfg); err != nil {
				return err
			}
			return seedCategories(ctx, app)
		},
	}
	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@gomart.local", "Email del admin inicial")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Password del admin inicial (requerido)")
	return cmd
}

// seedAdmin crea el usuario admin directo por gateway: el registro
// público siempre fuerza rol shopper.
func seedAdmin(ctx context.Context, app *bootstrap.App, email, plain string, cfg *config.Config) error {
	log := logger.Named("seed")

	gw := gateway.New[model.User](app.Store.Collection(model.CollectionUser))

	existing, err := gw.ReadRecords(ctx, store.Conditions{"email": email}, "", "", true, 0, 0)
	if err != nil {
		return fmt.Errorf("seed: check admin: %w", err)
	}
	if existing.Count != nil && *existing.Count > 0 {
		log.Info("admin already present", logger.Email(email))
		return nil
	}

	hash, err := password.Hash(password.Params{Cost: cfg.Password.BcryptCost}, plain)
	if err != nil {
		return fmt.Errorf("seed: hash: %w", err)
	}

	created, err := gw.CreateRecord(ctx, model.User{
		FirstName:  "Admin",
		LastName:   "Gomart",
		UserName:   "gomart-admin",
		Password:   hash,
		Email:      email,
		Role:       model.RoleAdmin,
		IsVerified: true,
	})
	if err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}
	log.Info("admin created", logger.RecordID(created.ID), logger.Email(email))
	return nil
}

func seedCategories(ctx context.Context, app *bootstrap.App) error {
	log := logger.Named("seed")

	defaults := []store.Document{
		{"name": "electronics", "description": "Electrónica y gadgets"},
		{"name": "clothing", "description": "Indumentaria"},
		{"name": "home", "description": "Hogar y deco"},
		{"name": "books", "description": "Libros y revistas"},
	}

	for _, doc := range defaults {
		name := store.AsString(doc["name"])
		env := app.Services.Category.ReadCategoriesByFilter(ctx, map[string]any{"name": name, "count": true})
		if counts, ok := env.Payload.(map[string]int64); ok && counts["count"] > 0 {
			continue
		}
		if env := app.Services.Category.CreateCategory(ctx, doc); env.Error != "" {
			return fmt.Errorf("seed: category %s: %s", name, env.Error)
		}
		log.Info("category seeded", logger.String("name", name))
	}
	return nil
}
