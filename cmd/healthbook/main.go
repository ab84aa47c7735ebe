package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/terraincognita07/healthbook/internal/api"
	"github.com/terraincognita07/healthbook/internal/cli"
	"github.com/terraincognita07/healthbook/internal/config"
	"github.com/terraincognita07/healthbook/internal/db"
	"github.com/terraincognita07/healthbook/internal/logging"
	"github.com/terraincognita07/healthbook/internal/metrics"
	"github.com/terraincognita07/healthbook/internal/services"
	"github.com/terraincognita07/healthbook/internal/storage"
	"go.uber.org/zap"
)

const usage = `usage: healthbook [--config file] <command> [flags]

commands:
  serve                                   run the HTTP API (default)
  register --identity N --name NAME [--role patient|provider]
  login --identity N                      make the account the active session
  logout                                  clear the active session
  qr --identity N                         print the account QR payload
`

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	accounts *services.AccountService
	sessions *services.SessionManager
	records  *services.RecordStore
	closeKV  func() error
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "healthbook: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout io.Writer) error {
	global := flag.NewFlagSet("healthbook", flag.ContinueOnError)
	global.SetOutput(stdout)
	global.Usage = func() { fmt.Fprint(stdout, usage) }
	configFile := global.String("config", "", "path to a config file")
	if err := global.Parse(args); err != nil {
		return err
	}
	command, commandArgs := splitCommand(global.Args())

	application, err := newApp(*configFile)
	if err != nil {
		return err
	}
	defer application.close()

	switch command {
	case "serve":
		return application.serve()
	case "register":
		return application.register(commandArgs, stdin, stdout)
	case "login":
		return application.login(commandArgs, stdin, stdout)
	case "logout":
		return cli.RunLogoutCommand(application.sessions, stdout)
	case "qr":
		return application.qr(commandArgs, stdin, stdout)
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "serve", nil
	}
	return args[0], args[1:]
}

func newApp(configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	time.Local = mustLoadLocation(cfg.Server.Timezone, logger)

	appMetrics := metrics.New("healthbook")
	kv, closeKV, err := openStore(cfg.Storage, logger, appMetrics)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  appMetrics,
		accounts: services.NewAccountService(kv),
		sessions: services.NewSessionManager(kv),
		records:  services.NewRecordStore(kv),
		closeKV:  closeKV,
	}, nil
}

func (application *app) close() {
	if err := application.closeKV(); err != nil {
		application.logger.Warn("close storage", zap.Error(err))
	}
	_ = application.logger.Sync()
}

// openStore builds the configured backend, instruments it and, for durable
// backends, puts a read-through cache in front.
func openStore(cfg config.StorageConfig, logger *zap.Logger, appMetrics *metrics.Metrics) (storage.KV, func() error, error) {
	var backend storage.KV
	closeFn := func() error { return nil }

	switch cfg.Driver {
	case "memory":
		backend = storage.NewMemoryKV()
	case "sqlite":
		database, err := db.OpenSQLite(cfg.DBPath, logger)
		if err != nil {
			return nil, nil, err
		}
		sqliteKV := db.NewSQLiteKV(database)
		backend, closeFn = sqliteKV, sqliteKV.Close
	case "redis":
		redisKV := storage.NewRedisKV(storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err := redisKV.Ping(); err != nil {
			_ = redisKV.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		backend, closeFn = redisKV, redisKV.Close
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	kv := metrics.InstrumentKV(backend, appMetrics)
	if cfg.Driver != "memory" && cfg.CacheTTL > 0 {
		kv = storage.NewCachedKV(kv, cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return kv, closeFn, nil
}

func (application *app) serve() error {
	handler, err := api.NewHandler(api.Dependencies{
		Accounts:           application.accounts,
		Sessions:           application.sessions,
		Records:            application.records,
		Metrics:            application.metrics,
		Logger:             application.logger,
		Location:           time.Local,
		LoginAttemptLimit:  application.cfg.Auth.LoginAttemptLimit,
		LoginAttemptWindow: application.cfg.Auth.LoginAttemptWindow,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	server := api.NewApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			application.logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	accountCount, err := application.accounts.Count()
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	addr := application.cfg.ListenAddr()
	application.logger.Info("healthbook listening",
		zap.String("addr", addr),
		zap.Int("accounts", accountCount),
		zap.String("storage", application.cfg.Storage.Driver),
		zap.String("tz", time.Local.String()),
	)
	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func (application *app) register(args []string, stdin *os.File, stdout io.Writer) error {
	flags := flag.NewFlagSet("register", flag.ContinueOnError)
	flags.SetOutput(stdout)
	var options cli.RegisterOptions
	flags.StringVar(&options.IdentityNumber, "identity", "", "12-digit identity number")
	flags.StringVar(&options.Name, "name", "", "display name")
	flags.StringVar(&options.Role, "role", "patient", "patient or provider")
	flags.StringVar(&options.BirthDate, "birth-date", "", "patient birth date (YYYY-MM-DD)")
	flags.StringVar(&options.Gender, "gender", "", "patient gender")
	flags.StringVar(&options.Phone, "phone", "", "patient phone")
	flags.StringVar(&options.Specialty, "specialty", "", "provider specialty")
	flags.StringVar(&options.Organization, "organization", "", "provider organization")
	flags.StringVar(&options.RegistrationNumber, "registration-number", "", "provider registration number")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if !services.IsValidIdentity(services.NormalizeIdentityInput(options.IdentityNumber)) {
		return services.ErrInvalidIdentity
	}

	secret, err := cli.PromptSecret(stdin, stdout, "Secret: ")
	if err != nil {
		return err
	}
	_, err = cli.RunRegisterCommand(application.accounts, options, secret, stdout)
	return err
}

func (application *app) login(args []string, stdin *os.File, stdout io.Writer) error {
	identity, secret, err := promptCredentials("login", args, stdin, stdout)
	if err != nil {
		return err
	}
	_, err = cli.RunLoginCommand(application.accounts, application.sessions, identity, secret, stdout)
	return err
}

func (application *app) qr(args []string, stdin *os.File, stdout io.Writer) error {
	identity, secret, err := promptCredentials("qr", args, stdin, stdout)
	if err != nil {
		return err
	}
	return cli.RunQRCommand(application.accounts, identity, secret, time.Now(), stdout)
}

func promptCredentials(name string, args []string, stdin *os.File, stdout io.Writer) (string, string, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stdout)
	identity := flags.String("identity", "", "12-digit identity number")
	if err := flags.Parse(args); err != nil {
		return "", "", err
	}
	if *identity == "" {
		return "", "", errors.New("--identity is required")
	}

	secret, err := cli.PromptSecret(stdin, stdout, "Secret: ")
	if err != nil {
		return "", "", err
	}
	return *identity, secret, nil
}

func mustLoadLocation(name string, logger *zap.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("tz", name))
		return time.UTC
	}
	return location
}
