package app

import (
	"context"
	"time"

	journalAPI "roulette_lab/internal/api/journal"
	tableAPI "roulette_lab/internal/api/table"
	"roulette_lab/internal/config"
	"roulette_lab/internal/config/env"
	"roulette_lab/internal/logger"
	appMiddleware "roulette_lab/internal/middleware"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/repository/house_stats_repo"
	"roulette_lab/internal/repository/journal_repo"
	"roulette_lab/internal/repository/table_repo"
	"roulette_lab/internal/service"
	"roulette_lab/internal/service/journal"
	"roulette_lab/internal/service/table"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logger
	logCfg config.LogConfig
	log    *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Table bits
	labCfg    config.LabConfig
	houseCfg  config.HouseConfig
	tableRepo repository.TableRepository
	houseRepo repository.HouseStatsRepository
	tableServ service.TableService
	tableHand *tableAPI.Handler

	// Journal bits
	journalRepo repository.JournalRepository
	journalServ service.JournalService
	journalHand *journalAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		l, err := logger.New(sp.LogCfg().Env())
		if err != nil {
			panic("failed to build logger: " + err.Error())
		}
		sp.log = l.With(zap.String("env", sp.LogCfg().Env()))
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.NewWithConfig(ctx, sp.PgConfig().Pool())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err = dbc.Ping(pingCtx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) LabCfg() config.LabConfig {
	if sp.labCfg == nil {
		cfg, err := env.NewLabConfigFromYAML(env.LabConfigPath())
		if err != nil {
			panic("failed to get lab config: " + err.Error())
		}
		sp.labCfg = cfg
	}
	return sp.labCfg
}

func (sp *ServiceProvider) HouseCfg() config.HouseConfig {
	if sp.houseCfg == nil {
		cfg, err := env.NewHouseConfigFromYAML(env.LabConfigPath())
		if err != nil {
			panic("failed to get house config: " + err.Error())
		}
		sp.houseCfg = cfg
	}
	return sp.houseCfg
}

func (sp *ServiceProvider) TableRepository(ctx context.Context) repository.TableRepository {
	if sp.tableRepo == nil {
		sp.tableRepo = table_repo.NewTableRepository(sp.DBClient(ctx))
	}
	return sp.tableRepo
}

func (sp *ServiceProvider) HouseStatsRepository() repository.HouseStatsRepository {
	if sp.houseRepo == nil {
		sp.houseRepo = house_stats_repo.NewHouseStatsRepository(
			sp.HouseCfg().WindowSize(),
			sp.HouseCfg().EdgeTolerance(),
			sp.Logger(),
		)
	}
	return sp.houseRepo
}

func (sp *ServiceProvider) TableService(ctx context.Context) service.TableService {
	if sp.tableServ == nil {
		sp.tableServ = table.NewTableService(
			sp.LabCfg(),
			sp.TableRepository(ctx),
			sp.HouseStatsRepository(),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.tableServ
}

func (sp *ServiceProvider) TableHandler(ctx context.Context) *tableAPI.Handler {
	if sp.tableHand == nil {
		sp.tableHand = tableAPI.NewHandler(tableAPI.HandlerDeps{
			Serv: sp.TableService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.tableHand
}

func (sp *ServiceProvider) JournalRepository(ctx context.Context) repository.JournalRepository {
	if sp.journalRepo == nil {
		sp.journalRepo = journal_repo.NewJournalRepository(sp.DBClient(ctx))
	}
	return sp.journalRepo
}

func (sp *ServiceProvider) JournalService(ctx context.Context) service.JournalService {
	if sp.journalServ == nil {
		sp.journalServ = journal.NewJournalService(sp.JournalRepository(ctx), sp.TXManager(ctx), sp.Logger())
	}
	return sp.journalServ
}

func (sp *ServiceProvider) JournalHandler(ctx context.Context) *journalAPI.Handler {
	if sp.journalHand == nil {
		sp.journalHand = journalAPI.NewHandler(journalAPI.HandlerDeps{
			Serv: sp.JournalService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.journalHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(appMiddleware.Logger(sp.Logger()))
		r.Use(middleware.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Table endpoints
		tableHandler := sp.TableHandler(ctx)
		r.Get("/catalog", tableHandler.Catalog)
		r.Get("/house/stats", tableHandler.HouseStats)
		r.Route("/tables", func(rr chi.Router) {
			rr.Post("/", tableHandler.Create)
			rr.Route("/{id}", func(tr chi.Router) {
				tr.Get("/", tableHandler.Get)
				tr.Delete("/", tableHandler.Delete)
				tr.Post("/bets/place", tableHandler.PlaceBet)
				tr.Post("/bets/remove", tableHandler.RemoveBet)
				tr.Delete("/bets", tableHandler.ClearBets)
				tr.Put("/variant", tableHandler.SetVariant)
				tr.Post("/spin", tableHandler.Spin)
				tr.Post("/simulate", tableHandler.Simulate)
				tr.Delete("/history", tableHandler.ResetHistory)
				tr.Get("/stats", tableHandler.Stats)
			})
		})

		// Journal endpoints
		journalHandler := sp.JournalHandler(ctx)
		r.Route("/journal", func(rr chi.Router) {
			rr.Get("/", journalHandler.List)
			rr.Post("/", journalHandler.Create)
			rr.Get("/summary", journalHandler.Summary)
			rr.Get("/export", journalHandler.Export)
			rr.Post("/import", journalHandler.Import)
			rr.Get("/{id}", journalHandler.Get)
			rr.Put("/{id}", journalHandler.Update)
			rr.Delete("/{id}", journalHandler.Delete)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает пул соединений и сбрасывает буфер логгера
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
}
