package cmd

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/db"
	"github.com/Ramsey-B/fern/internal/repositories/canonicaljob"
	"github.com/Ramsey-B/fern/internal/repositories/movequote"
	"github.com/Ramsey-B/fern/internal/repositories/workizjob"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/httpclient"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/reconcile"
	"github.com/Ramsey-B/fern/pkg/sources/workiz"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/tracing/exporters"
)

// application holds the process-wide handles created during startup
type application struct {
	cfg      *config.Config
	logger   ectologger.Logger
	db       *database.DatabaseInstance
	producer *kafka.Producer
	tracer   *sdktrace.TracerProvider
}

func newApplication(cfg *config.Config) (*application, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return &application{cfg: cfg, logger: logger}, nil
}

func newLogger(cfg *config.Config) (ectologger.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return zapadapter.NewZapEctoLogger(zapLogger.With(zap.String("app", cfg.AppName)), nil), nil
}

// start starts the named dependencies and everything they depend on
func (a *application) start(ctx context.Context, names ...string) (*startup.Startup, error) {
	all := map[string]startup.StartupDependency{
		"database":   &databaseDependency{app: a},
		"migrations": &migrationDependency{app: a},
		"tracing":    &tracingDependency{app: a},
		"kafka":      &kafkaDependency{app: a},
	}

	s := startup.NewStartup(a.logger, a.cfg.StartupMaxAttempts)
	for _, name := range names {
		addWithDependencies(s, all, name)
	}
	if err := s.Start(ctx); err != nil {
		_ = s.Stop(context.Background())
		return nil, err
	}
	return s, nil
}

func addWithDependencies(s *startup.Startup, all map[string]startup.StartupDependency, name string) {
	dep := all[name]
	for _, d := range dep.DependsOn() {
		addWithDependencies(s, all, d)
	}
	s.AddDependency(dep)
}

// jobSource returns the configured job source
func (a *application) jobSource() reconcile.JobSource {
	if a.cfg.JobSource == config.JobSourceWorkiz {
		return a.workizClient()
	}
	return workizjob.NewRepository(a.db, a.logger)
}

func (a *application) workizClient() *workiz.Client {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = a.cfg.WorkizTimeout
	return workiz.NewClient(httpclient.NewClient(httpCfg, a.logger), a.logger, a.cfg.WorkizBaseURL, a.cfg.WorkizAPIKey)
}

func (a *application) reconcileService(store *canonicaljob.Repository) *reconcile.Service {
	return reconcile.NewService(a.logger, a.jobSource(), movequote.NewRepository(a.db, a.logger), store)
}

type databaseDependency struct {
	app *application
}

func (d *databaseDependency) GetName() string     { return "database" }
func (d *databaseDependency) DependsOn() []string { return nil }

func (d *databaseDependency) Start(ctx context.Context) error {
	cfg := d.app.cfg
	instance, err := database.Connect(ctx, database.Config{
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		User:            cfg.DatabaseUserName,
		Password:        cfg.DatabasePassword,
		Name:            cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, d.app.logger)
	if err != nil {
		return err
	}
	d.app.db = instance
	return nil
}

func (d *databaseDependency) Stop(_ context.Context) error {
	if d.app.db == nil {
		return nil
	}
	return d.app.db.Close()
}

type migrationDependency struct {
	app *application
}

func (d *migrationDependency) GetName() string     { return "migrations" }
func (d *migrationDependency) DependsOn() []string { return []string{"database"} }

func (d *migrationDependency) Start(_ context.Context) error {
	cfg := d.app.cfg
	svc := database.NewMigrationService(d.app.logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Embedded:            db.Migrations(),
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})
	return svc.MigratePostgres(d.app.db, cfg.DatabaseName)
}

func (d *migrationDependency) Stop(_ context.Context) error { return nil }

type tracingDependency struct {
	app *application
}

func (d *tracingDependency) GetName() string     { return "tracing" }
func (d *tracingDependency) DependsOn() []string { return nil }

func (d *tracingDependency) Start(ctx context.Context) error {
	cfg := d.app.cfg
	if !cfg.TracingEnabled {
		d.app.tracer = tracing.NewProvider(cfg.AppName, &exporters.DiscardExporter{})
		return nil
	}

	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.TracingEndpoint,
		Protocol: cfg.TracingProtocol,
		Insecure: cfg.TracingInsecure,
		Timeout:  cfg.TracingTimeout,
	})
	if err != nil {
		return err
	}
	d.app.tracer = tracing.NewProvider(cfg.AppName, exporter)
	return nil
}

func (d *tracingDependency) Stop(ctx context.Context) error {
	if d.app.tracer == nil {
		return nil
	}
	return d.app.tracer.Shutdown(ctx)
}

type kafkaDependency struct {
	app *application
}

func (d *kafkaDependency) GetName() string     { return "kafka" }
func (d *kafkaDependency) DependsOn() []string { return nil }

func (d *kafkaDependency) Start(_ context.Context) error {
	cfg := d.app.cfg
	if !cfg.KafkaEventsEnabled {
		return nil
	}
	d.app.producer = kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaOutputTopic,
		BatchSize:    cfg.KafkaBatchSize,
		BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: cfg.KafkaRequiredAcks,
		Compression:  cfg.KafkaCompression,
	}, d.app.logger)
	return nil
}

func (d *kafkaDependency) Stop(_ context.Context) error {
	if d.app.producer == nil {
		return nil
	}
	return d.app.producer.Close()
}
