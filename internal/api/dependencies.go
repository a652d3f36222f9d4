package api

import (
	"os"
	"strconv"
	"time"

	"seda-ops/ledgersync/internal/common"
	"seda-ops/ledgersync/internal/db"
	"seda-ops/ledgersync/internal/db/repositories"
	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/metrics"
	"seda-ops/ledgersync/internal/providers"
	"seda-ops/ledgersync/internal/services"
)

type Repositories struct {
	Payments *repositories.PaymentRepository
	Problems *repositories.ProblemRepository
	SyncList *repositories.SyncListRepository
	Records  *repositories.RecordRepository
	Keys     *repositories.KeysRepo
}

type Services struct {
	Cache         common.CacheInterface
	Tracker       *common.ProgressTracker
	LinkSigner    *common.LinkSignerService
	Source        *providers.BubbleProvider
	PaymentSync   *services.PaymentSyncService
	EPPBackfill   *services.EPPBackfillService
	InvoiceRecalc *services.InvoiceRecalcService
	RecordMigrate *services.RecordMigrationService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Payments: repositories.NewPaymentRepository(db.DB),
		Problems: repositories.NewProblemRepository(db.DB),
		SyncList: repositories.NewSyncListRepository(db.DB),
		Records:  repositories.NewRecordRepository(db.DB),
		Keys:     repositories.NewApiKeysRepo(db.DB),
	}

	// Redis cache when configured, in-memory otherwise
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		cacheSvc = common.NewRedisCacheService()
		logging.Info("Using Redis cache backend")
	} else {
		cacheSvc = common.NewCacheService(300, 600)
		logging.Info("Using in-memory cache backend")
	}

	tracker := common.NewProgressTracker(30 * time.Minute)
	signer := common.NewLinkSignerService()
	source := providers.NewBubbleProvider()

	concurrency := 1
	if raw := os.Getenv("SYNC_CONCURRENCY"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			concurrency = v
		}
	}

	svcs := &Services{
		Cache:      cacheSvc,
		Tracker:    tracker,
		LinkSigner: signer,
		Source:     source,
		PaymentSync: services.NewPaymentSyncService(
			source, repos.Payments, repos.Problems, repos.SyncList,
			cacheSvc, tracker, metricsReg, concurrency,
		),
		EPPBackfill:   services.NewEPPBackfillService(db.PgDB),
		InvoiceRecalc: services.NewInvoiceRecalcService(db.PgDB),
		RecordMigrate: services.NewRecordMigrationService(
			source, repos.Records, repos.Problems, tracker, metricsReg,
		),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil

}
