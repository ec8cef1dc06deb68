//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/fitcheck/internal/bootstrap"
	"github.com/yanqian/fitcheck/internal/domain/fitness"
	"github.com/yanqian/fitcheck/internal/infra/chart"
	"github.com/yanqian/fitcheck/internal/infra/config"
	httpiface "github.com/yanqian/fitcheck/internal/interface/http"
	"github.com/yanqian/fitcheck/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideUsageRepository,
		provideRateLimiter,
		provideChartConfig,
		chart.NewRenderer,
		fitness.NewService,
		wire.Bind(new(httpiface.ChartRenderer), new(*chart.Renderer)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
