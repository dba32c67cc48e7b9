package app

import (
	"context"

	"github.com/doeshing/blackline/internal/application/doctor"
	"github.com/doeshing/blackline/internal/application/format"
	"github.com/doeshing/blackline/internal/infrastructure/blackd"
	"github.com/doeshing/blackline/internal/infrastructure/cache"
	"github.com/doeshing/blackline/internal/infrastructure/config"
	"github.com/doeshing/blackline/internal/infrastructure/folding"
	"github.com/doeshing/blackline/internal/infrastructure/history"
	"github.com/doeshing/blackline/internal/infrastructure/transport"
	"github.com/doeshing/blackline/internal/pkg/logger"
	"github.com/doeshing/blackline/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	FormatService  *format.Service
	ProjectRunner  *format.Project
	DoctorService  *doctor.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Cache          ports.FormatCache
	Daemon         ports.DaemonManager
	HistoryStore   ports.HistoryStore
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	formatCache := cache.NewLineCache(cfg.CacheMaxEntries())
	historyStore := history.NewSQLiteStore()
	daemonManager := blackd.NewManager(cfg.BlackdHost(), cfg.BlackdPort(), log)

	processTransport := transport.NewProcess(log)
	daemonTransport := transport.NewDaemon(daemonManager, log)

	formatService := &format.Service{
		ConfigProvider:  cfgLoader,
		Cache:           formatCache,
		Daemon:          daemonManager,
		Process:         processTransport,
		DaemonTransport: daemonTransport,
		PreCommit:       transport.NewPreCommit(log),
		Reconciler:      folding.NewReconciler(),
		History:         historyStore,
		Logger:          log,
	}

	projectRunner := &format.Project{
		ConfigProvider: cfgLoader,
		Cache:          formatCache,
		Process:        processTransport,
		Logger:         log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Daemon:         daemonManager,
		Cache:          formatCache,
		History:        historyStore,
	}

	return &Container{
		FormatService:  formatService,
		ProjectRunner:  projectRunner,
		DoctorService:  doctorService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Cache:          formatCache,
		Daemon:         daemonManager,
		HistoryStore:   historyStore,
		Logger:         log,
	}, nil
}
