package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/config"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/database"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/logging"
	cacheinfra "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/cache"
	sqliterepo "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/uow"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/taxonomy"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewFailureRepository,
			fx.As(new(ports.FailureRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewAnalysisRepository,
			fx.As(new(ports.AnalysisRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewTaxonomyRepository,
			fx.As(new(ports.TaxonomyRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideReliabilityService),
	fx.Provide(taxonomy.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideReliabilityService(
	cfg config.Config,
	failures ports.FailureRepository,
	analyses ports.AnalysisRepository,
	catalog ports.TaxonomyRepository,
	uow ports.UnitOfWork,
	cache ports.Cache,
) (*reliability.Service, error) {
	svc := reliability.NewService(failures, analyses, catalog, uow, cache)
	if cfg.Reliability.ProfileFile != "" {
		if err := svc.ApplyProfile(cfg.Reliability.ProfileFile); err != nil {
			return nil, err
		}
	}
	return svc, nil
}
