package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/healthbook/internal/metrics"
	"github.com/terraincognita07/healthbook/internal/services"
	"go.uber.org/zap"
)

const (
	defaultLoginAttemptLimit  = 8
	defaultLoginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	accounts *services.AccountService
	sessions *services.SessionManager
	records  *services.RecordStore
	stats    *services.StatsService
	reports  *services.ReportService

	metrics  *metrics.Metrics
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time

	loginThrottle *loginThrottle
}

// Dependencies are built once by the caller; the session manager in
// particular must be the same instance the rest of the process uses.
type Dependencies struct {
	Accounts *services.AccountService
	Sessions *services.SessionManager
	Records  *services.RecordStore
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Location *time.Location

	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Accounts == nil || deps.Sessions == nil || deps.Records == nil {
		return nil, errors.New("accounts, sessions and records are required")
	}

	handler := &Handler{
		accounts: deps.Accounts,
		sessions: deps.Sessions,
		records:  deps.Records,
		stats:    services.NewStatsService(deps.Records),
		reports:  services.NewReportService(deps.Records),
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		location: deps.Location,
		now:      time.Now,
	}
	if handler.logger == nil {
		handler.logger = zap.NewNop()
	}
	if handler.metrics == nil {
		handler.metrics = metrics.New("healthbook")
	}
	if handler.location == nil {
		handler.location = time.UTC
	}
	attemptLimit := deps.LoginAttemptLimit
	if attemptLimit <= 0 {
		attemptLimit = defaultLoginAttemptLimit
	}
	attemptWindow := deps.LoginAttemptWindow
	if attemptWindow <= 0 {
		attemptWindow = defaultLoginAttemptWindow
	}
	handler.loginThrottle = newLoginThrottle(attemptLimit, attemptWindow)
	return handler, nil
}
