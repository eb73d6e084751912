package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wmartins/fornecedores-api/internal/application/auth"
	"github.com/wmartins/fornecedores-api/internal/application/usecase"
	"github.com/wmartins/fornecedores-api/internal/infrastructure/postgres"
	httpRouter "github.com/wmartins/fornecedores-api/internal/interfaces/http"
	"github.com/wmartins/fornecedores-api/pkg/config"
	"github.com/wmartins/fornecedores-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("auth", cfg.Auth.Enabled).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	tokenRepo := postgres.NewRefreshTokenRepository(pool)
	fornecedorRepo := postgres.NewFornecedorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, tokenRepo,
		auth.JWTConfig{
			Secret:       cfg.JWT.Secret,
			ExpMinutes:   cfg.JWT.Expiration,
			RefreshHours: cfg.JWT.RefreshHours,
			Issuer:       cfg.JWT.Issuer,
		},
		auth.LockoutPolicy{
			MaxFailedAttempts: cfg.Auth.MaxFailedAttempts,
			LockoutMinutes:    cfg.Auth.LockoutMinutes,
		},
	)
	fornecedorUC := usecase.NewFornecedorUseCase(fornecedorRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fornecedores API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		FornecedorUC: fornecedorUC,
		JWTSecret:    cfg.JWT.Secret,
		AuthEnabled:  cfg.Auth.Enabled,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
