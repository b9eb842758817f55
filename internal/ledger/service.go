// Package ledger keeps account balances, transactions, budgets and
// notifications consistent with each other.
//
// Every mutating operation runs inside one database transaction: the balance
// update and the ledger row commit together or not at all. Notifications that
// follow a write (budget overspend, recurring execution) are emitted after the
// commit and never fail the caller.
package ledger

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/repository"
)

const instrumentationName = "gitlab.com/yelinaung/fintrack/internal/ledger"

// Options configures a Service.
type Options struct {
	// Location decides day and month boundaries. Defaults to time.Local.
	Location *time.Location
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// DefaultHistoryDays is used when a history request does not name a range.
	DefaultHistoryDays int
}

// Service implements the ledger operations on top of the repositories.
type Service struct {
	db          database.DB
	loc         *time.Location
	now         func() time.Time
	historyDays int
	tracer      trace.Tracer
	metrics     ledgerMetrics
}

// NewService creates a Service backed by db.
func NewService(db database.DB, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultHistoryDays <= 0 {
		opts.DefaultHistoryDays = 30
	}
	return &Service{
		db:          db,
		loc:         opts.Location,
		now:         opts.Now,
		historyDays: opts.DefaultHistoryDays,
		tracer:      otel.Tracer(instrumentationName),
		metrics:     newLedgerMetrics(otel.Meter(instrumentationName)),
	}
}

// repos bundles repositories bound to one query executor.
type repos struct {
	users          *repository.UserRepository
	profiles       *repository.ProfileRepository
	accounts       *repository.AccountRepository
	categories     *repository.CategoryRepository
	paymentMethods *repository.PaymentMethodRepository
	transactions   *repository.TransactionRepository
	budgets        *repository.BudgetRepository
	recurring      *repository.RecurringRepository
	investments    *repository.InvestmentRepository
	notifications  *repository.NotificationRepository
	goals          *repository.GoalRepository
}

func newRepos(db database.PGXDB) repos {
	return repos{
		users:          repository.NewUserRepository(db),
		profiles:       repository.NewProfileRepository(db),
		accounts:       repository.NewAccountRepository(db),
		categories:     repository.NewCategoryRepository(db),
		paymentMethods: repository.NewPaymentMethodRepository(db),
		transactions:   repository.NewTransactionRepository(db),
		budgets:        repository.NewBudgetRepository(db),
		recurring:      repository.NewRecurringRepository(db),
		investments:    repository.NewInvestmentRepository(db),
		notifications:  repository.NewNotificationRepository(db),
		goals:          repository.NewGoalRepository(db),
	}
}

// read returns repositories that run outside any explicit transaction.
func (s *Service) read() repos {
	return newRepos(s.db)
}

// inTx runs fn with repositories bound to a fresh database transaction.
func (s *Service) inTx(ctx context.Context, fn func(r repos) error) error {
	return database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(newRepos(tx))
	})
}

// today returns midnight of the current day in the service location.
func (s *Service) today() time.Time {
	return startOfDay(s.now(), s.loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

type ledgerMetrics struct {
	created   metric.Int64Counter
	deleted   metric.Int64Counter
	overspent metric.Int64Counter
	recurring metric.Int64Counter
	invested  metric.Int64Counter
}

func newLedgerMetrics(m metric.Meter) ledgerMetrics {
	fallback := noop.NewMeterProvider().Meter(instrumentationName)
	counter := func(name, desc string) metric.Int64Counter {
		c, err := m.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			logger.Log.Warn().Err(err).Str("instrument", name).Msg("Failed to create counter")
			c, _ = fallback.Int64Counter(name)
		}
		return c
	}
	return ledgerMetrics{
		created:   counter("ledger.transactions.created", "Ledger transactions created"),
		deleted:   counter("ledger.transactions.deleted", "Ledger transactions deleted"),
		overspent: counter("ledger.budget.overspend_notifications", "Budget overspend notifications emitted"),
		recurring: counter("ledger.recurring.executed", "Recurring definitions executed"),
		invested:  counter("ledger.investment.transactions", "Investment buy/sell rows recorded"),
	}
}
