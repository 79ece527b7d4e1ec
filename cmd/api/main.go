package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"periciapi/internal/backupcrypto"
	"periciapi/internal/blobstore"
	"periciapi/internal/config"
	"periciapi/internal/database"
	"periciapi/internal/database/migration"
	handlers "periciapi/internal/http/handler"
	"periciapi/internal/http/middleware"
	"periciapi/internal/kvstore"
	kvmemory "periciapi/internal/kvstore/memory"
	kvpostgres "periciapi/internal/kvstore/postgres"
	kvredis "periciapi/internal/kvstore/redis"
	"periciapi/internal/otel"
	"periciapi/internal/repository"
	"periciapi/internal/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("falha na inicialização")
	}
}

func run(log zerolog.Logger) error {
	ctx := context.Background()
	cfg := config.Load()

	otelShutdown, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("iniciar tracing: %w", err)
	}
	defer otelShutdown(context.Background())

	// Key-value backend holding the record collections.
	var (
		db *sql.DB
		kv kvstore.Store
	)
	switch cfg.Storage.KVBackend {
	case "postgres":
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			return fmt.Errorf("conectar ao banco: %w", err)
		}
		defer db.Close()
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return fmt.Errorf("migrar esquema: %w", err)
		}
		kv = kvpostgres.NewKVPostgres(db, cfg.Storage.QuotaBytes)
	case "redis":
		rkv, err := kvredis.NewKVRedis(ctx, cfg.Storage.RedisURL, cfg.Storage.QuotaBytes)
		if err != nil {
			return fmt.Errorf("conectar ao redis: %w", err)
		}
		defer rkv.Close()
		kv = rkv
	case "memory":
		kv = kvmemory.NewKVMemory(cfg.Storage.QuotaBytes)
	default:
		return fmt.Errorf("KV_BACKEND desconhecido: %q", cfg.Storage.KVBackend)
	}

	// Blob backend holding attachment content.
	var files blobstore.FileStore
	switch cfg.Storage.FileBackend {
	case "minio":
		files, err = blobstore.NewMinIO(cfg.MinIO)
		if err != nil {
			return fmt.Errorf("iniciar armazenamento de arquivos: %w", err)
		}
	case "memory":
		files = blobstore.NewMemory()
	default:
		return fmt.Errorf("FILE_BACKEND desconhecido: %q", cfg.Storage.FileBackend)
	}

	if err := repository.EnsureDefaults(ctx, kv, log); err != nil {
		return fmt.Errorf("popular valores padrão: %w", err)
	}

	periciaRepo := repository.NewPericiaKV(kv, log)
	// Legacy-shaped records are normalized on read regardless, so a failed
	// rewrite only costs the next start another attempt.
	if err := periciaRepo.MigrateLegacy(ctx); err != nil {
		log.Warn().Err(err).Msg("migração de registros legados falhou")
	}

	macroRepo := repository.NewMacroKV(kv, log)
	templateRepo := repository.NewTemplateKV(kv, log)
	settingsRepo := repository.NewSettingsKV(kv, log)
	draftRepo := repository.NewDraftKV(kv)

	periciaSvc := service.NewPericiaService(periciaRepo, draftRepo, files, log)
	backupSvc := service.NewBackupService(
		periciaRepo, macroRepo, templateRepo, settingsRepo,
		kv, files, backupcrypto.NewAESGCM(), log,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	reg := prometheus.NewRegistry()
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("registrar métricas: %w", err)
	}
	app.Use(prom.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:        db,
		Pericias:  periciaSvc,
		Backup:    backupSvc,
		Macros:    macroRepo,
		Templates: templateRepo,
		Settings:  settingsRepo,
		Drafts:    draftRepo,
		Files:     files,
	})

	log.Info().Str("port", cfg.Port).Str("kv_backend", cfg.Storage.KVBackend).
		Str("file_backend", cfg.Storage.FileBackend).Msg("servidor iniciado")

	return app.Listen(":" + cfg.Port)
}
