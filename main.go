package main

import (
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/valyala/fasthttp"

	"obr-forecast/internal/config"
	"obr-forecast/internal/forecast"
	"obr-forecast/internal/handler"
	"obr-forecast/internal/panel"
	"obr-forecast/internal/simulation"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	p, err := panel.Load(cfg.Panel.Path)
	if err != nil {
		logger.Error("panel load failed", "path", cfg.Panel.Path, "error", err)
		os.Exit(1)
	}
	logger.Info("panel loaded", "path", cfg.Panel.Path, "rows", p.Len())

	seed := cfg.Matcher.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	matcher := panel.NewMatcher(p, cfg.Matcher.IncomeTolerance, rand.New(rand.NewSource(seed)))

	sim := simulation.NewClient(simulation.Options{
		BaseURL:  cfg.Engine.URL,
		Timeout:  cfg.Engine.Timeout,
		RetryMax: cfg.Engine.RetryMax,
		Logger:   logger,
	})
	calc := forecast.NewCalculator(sim, cfg.Forecast.BaseYear, cfg.Forecast.CompareYear, logger)

	h := handler.New(handler.Options{
		Matcher:   matcher,
		Calc:      calc,
		Panel:     p,
		BaseYear:  cfg.Forecast.BaseYear,
		StaticDir: cfg.Server.StaticDir,
		Logger:    logger,
	})

	logger.Info("forecast service starting", "port", cfg.Server.Port, "engine", cfg.Engine.URL)
	if err := fasthttp.ListenAndServe(":"+cfg.Server.Port, h.Handle); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
