package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

const (
	maxHistoryDays  = 3650
	denseHistoryMax = 30
	historyPoints   = 60
)

// CurrentNetWorth returns the sum of a profile's account balances.
func (s *Service) CurrentNetWorth(ctx context.Context, userID, profileID int64) (decimal.Decimal, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return decimal.Zero, err
	}
	return r.accounts.SumByProfile(ctx, profileID)
}

// UserNetWorth returns the sum of balances across all of a user's profiles.
func (s *Service) UserNetWorth(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.read().accounts.SumByUser(ctx, userID)
}

// HistoricalNetWorth returns a daily net-worth series for the last days days,
// ending today. Zero days selects the configured default.
func (s *Service) HistoricalNetWorth(ctx context.Context, userID, profileID int64, days int) ([]models.NetWorthPoint, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.HistoricalNetWorth")
	defer span.End()

	if days == 0 {
		days = s.historyDays
	}
	if days < 1 || days > maxHistoryDays {
		return nil, invalidf("days must be between 1 and %d", maxHistoryDays)
	}

	now := s.now()
	since := startOfDay(now, s.loc).AddDate(0, 0, -days)

	var (
		accounts []models.Account
		txs      []models.Transaction
	)
	// Read balances and transactions from one snapshot.
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		var err error
		if accounts, err = r.accounts.ListByProfile(ctx, profileID); err != nil {
			return err
		}
		txs, err = r.transactions.ListByProfileSince(ctx, profileID, since)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ReconstructHistory(accounts, txs, now, days, s.loc), nil
}

// ReconstructHistory rebuilds a net-worth series from current balances and the
// transactions made since the window start (today minus days, at midnight).
// Each account's opening balance is its current balance minus the signed sum
// of its windowed transactions. The walk then applies each day's transactions
// in order. Ranges longer than 30 days are sampled to about 60 points. The
// final point always equals the sum of the current balances.
func ReconstructHistory(
	accounts []models.Account,
	txs []models.Transaction,
	now time.Time,
	days int,
	loc *time.Location,
) []models.NetWorthPoint {
	today := startOfDay(now, loc)
	start := today.AddDate(0, 0, -days)

	current := decimal.Zero
	balances := make(map[int64]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.Balance
		current = current.Add(a.Balance)
	}

	// Bucket windowed transactions by day offset. Anything stamped after
	// today lands on today.
	byDay := make(map[int][]models.Transaction)
	opening := decimal.Zero
	for _, tx := range txs {
		if _, ok := balances[tx.AccountID]; !ok {
			continue
		}
		day := startOfDay(tx.Timestamp, loc)
		if day.Before(start) {
			continue
		}
		offset := dayOffset(start, day)
		if offset > days {
			offset = days
		}
		byDay[offset] = append(byDay[offset], tx)
		opening = opening.Add(tx.SignedAmount())
	}
	running := current.Sub(opening)

	step := 1
	if days > denseHistoryMax {
		step = max(1, days/historyPoints)
	}

	points := make([]models.NetWorthPoint, 0, days/step+2)
	for i := 0; i <= days; i++ {
		for _, tx := range byDay[i] {
			running = running.Add(tx.SignedAmount())
		}
		if i%step != 0 && i != days {
			continue
		}
		d := start.AddDate(0, 0, i)
		points = append(points, models.NetWorthPoint{
			Date:     d.Format(time.DateOnly),
			NetWorth: running.Round(2),
			Label:    d.Format("Jan 2"),
		})
	}
	points[len(points)-1].NetWorth = current
	return points
}

// dayOffset counts calendar days from a to b, both midnights in one location.
func dayOffset(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
