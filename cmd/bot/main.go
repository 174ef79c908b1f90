package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/countries-quiz-bot/internal/config"
	"github.com/aliskhannn/countries-quiz-bot/internal/delivery/httpapi"
	"github.com/aliskhannn/countries-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/countries-quiz-bot/internal/infra/restcountries"
	"github.com/aliskhannn/countries-quiz-bot/internal/logger"
	"github.com/aliskhannn/countries-quiz-bot/internal/metrics"
	"github.com/aliskhannn/countries-quiz-bot/internal/repository"
	"github.com/aliskhannn/countries-quiz-bot/internal/service"
	"github.com/aliskhannn/countries-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories and services.
	var source repository.CountrySource = restcountries.NewClient(cfg.Countries.URL, cfg.Countries.Timeout)
	if cfg.Countries.SourceFile != "" {
		source = restcountries.NewFileSource(cfg.Countries.SourceFile)
	}
	countryRepo := repository.NewCountryRepository(source)

	quizService := service.NewQuizService(
		countryRepo,
		service.DefaultRand,
		service.QuizOptions{
			PoolSize:      cfg.Quiz.PoolSize,
			QuestionCount: cfg.Quiz.QuestionCount,
		},
		m,
		lg,
	)
	gameService := service.NewGameService(quizService, storage.NewGameStorage(), m, lg)
	refreshService := service.NewRefreshService(quizService, cfg.Countries.RefreshSchedule, lg)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Telegram.Enabled {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
		if err != nil {
			lg.Fatal("failed to create bot", zap.Error(err))
		}
		bot.Debug = cfg.Telegram.Debug

		if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
			lg.Warn("failed to set bot commands", zap.Error(err))
		}
		lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

		handler := telegram.NewHandler(bot, lg, quizService, gameService)
		quizService.OnReady(handler.NotifyRepositoryLoaded)

		g.Go(func() error {
			if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if cfg.HTTP.Enabled {
		router := httpapi.NewRouter(quizService, httpapi.Options{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			Metrics:        promhttp.Handler(),
		}, lg)

		g.Go(func() error {
			return httpapi.Serve(ctx, cfg.HTTP.Addr, router, lg)
		})
	}

	// The first load runs alongside delivery so players see the loading notice
	// instead of silence.
	g.Go(func() error {
		if _, err := quizService.LoadRepository(ctx); err != nil {
			lg.Warn("initial country load failed", zap.Error(err))
		}
		return nil
	})

	g.Go(func() error {
		return refreshService.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		lg.Fatal("service stopped with error", zap.Error(err))
	}

	lg.Info("shutdown complete")
}
