package cmd

import (
	"fmt"
	"time"

	loggeradapter "github.com/bnema/scantally/internal/adapters/logger"
	listadapter "github.com/bnema/scantally/internal/adapters/render/list"
	tomlrepo "github.com/bnema/scantally/internal/adapters/repo/toml"
	"github.com/bnema/scantally/internal/application"
	"github.com/bnema/scantally/internal/domain"
	"github.com/bnema/scantally/internal/ports"
	"go.uber.org/zap"
)

type app struct {
	service      *application.Service
	listRenderer func(application.Listing, listadapter.RenderOptions) (string, error)
	logger       *zap.Logger
	serveAddr    string
	now          func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := loggeradapter.New(loggeradapter.Options{
		Mode:  cfg.GetString(logModeKey),
		Level: cfg.GetString(logLevelKey),
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	filter := domain.NewSymbologyFilter(configList(cfg, symbologiesKey))
	logger.Debug("wired session repository", zap.String("path", repo.Path()))

	return &app{
		service:      application.NewService(repo, ports.SystemClock{}, logger, filter),
		listRenderer: listadapter.Render,
		logger:       logger,
		serveAddr:    cfg.GetString(serveAddrKey),
		now:          time.Now,
	}, nil
}
