//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/vitalsense/riskmodel/internal/bootstrap"
	"github.com/vitalsense/riskmodel/internal/domain/assessment"
	"github.com/vitalsense/riskmodel/internal/infra/config"
	httpiface "github.com/vitalsense/riskmodel/internal/interface/http"
	"github.com/vitalsense/riskmodel/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideEngineConfig,
		provideRuleSet,
		provideReadingSource,
		provideStore,
		assessment.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
