package ledger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
	"gitlab.com/yelinaung/fintrack/internal/repository"
)

func TestCreateTransaction_AppliesSignedAmount(t *testing.T) {
	f := setupFixture(t, "100.00")

	f.expense(t, "30.00", nil)
	requireDecimal(t, "70", f.balance(t, f.account.ID))

	tx, err := f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
		AccountID:   f.account.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.RequireFromString("12.34"),
		Description: "  refund  ",
	})
	require.NoError(t, err)
	require.NotZero(t, tx.ID)
	require.False(t, tx.Timestamp.IsZero())
	require.Equal(t, "refund", tx.Description)
	requireDecimal(t, "82.34", f.balance(t, f.account.ID))
}

func TestCreateTransaction_Validation(t *testing.T) {
	f := setupFixture(t, "100.00")
	cat := f.newCategory(t, "Food")

	other := f.newUser(t)
	otherProfile := f.newProfile(t, other.ID)
	foreignCat, err := f.svc.CreateCategory(f.ctx, other.ID, otherProfile.ID, "Rent", nil)
	require.NoError(t, err)

	missingPM := int64(999999)

	tests := []struct {
		name    string
		userID  int64
		in      CreateTransactionInput
		wantErr error
	}{
		{
			name:    "bad type",
			userID:  f.user.ID,
			in:      CreateTransactionInput{AccountID: f.account.ID, Type: "transfer", Amount: decimal.NewFromInt(1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero amount",
			userID:  f.user.ID,
			in:      CreateTransactionInput{AccountID: f.account.ID, Type: "expense", Amount: decimal.Zero},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "three decimals",
			userID:  f.user.ID,
			in:      CreateTransactionInput{AccountID: f.account.ID, Type: "expense", Amount: decimal.RequireFromString("1.005")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "amount above range",
			userID:  f.user.ID,
			in:      CreateTransactionInput{AccountID: f.account.ID, Type: "income", Amount: decimal.New(1, 14)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "foreign category",
			userID:  f.user.ID,
			in:      CreateTransactionInput{AccountID: f.account.ID, Type: "expense", Amount: decimal.NewFromInt(1), CategoryID: &foreignCat.ID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown payment method",
			userID:  f.user.ID,
			in:      CreateTransactionInput{AccountID: f.account.ID, Type: "expense", Amount: decimal.NewFromInt(1), CategoryID: &cat.ID, PaymentMethodID: &missingPM},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing account",
			userID:  f.user.ID,
			in:      CreateTransactionInput{AccountID: 999999, Type: "expense", Amount: decimal.NewFromInt(1)},
			wantErr: ErrNotFound,
		},
		{
			name:    "someone else's account",
			userID:  other.ID,
			in:      CreateTransactionInput{AccountID: f.account.ID, Type: "expense", Amount: decimal.NewFromInt(1)},
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateTransaction(f.ctx, tt.userID, tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			requireDecimal(t, "100", f.balance(t, f.account.ID))
		})
	}
}

func TestCreateTransaction_ConcurrentOnOneAccount(t *testing.T) {
	f := setupCommittedFixture(t, "1000.00")

	const workers = 20
	amounts := make([]decimal.Decimal, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		amounts[i] = decimal.New(int64(i+1)*105, -2)
		typ := models.TransactionTypeIncome
		if i%2 == 1 {
			typ = models.TransactionTypeExpense
		}
		wg.Add(1)
		go func(i int, typ string) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
				AccountID: f.account.ID,
				Type:      typ,
				Amount:    amounts[i],
			})
		}(i, typ)
	}
	wg.Wait()

	want := decimal.RequireFromString("1000.00")
	for i := range workers {
		require.NoError(t, errs[i], "worker %d", i)
		if i%2 == 1 {
			want = want.Sub(amounts[i])
		} else {
			want = want.Add(amounts[i])
		}
	}
	requireDecimal(t, want.String(), f.balance(t, f.account.ID))

	list, err := f.svc.ListAccountTransactions(f.ctx, f.user.ID, f.account.ID)
	require.NoError(t, err)
	require.Len(t, list, workers)
}

// beginLimitDB refuses to open transactions once allow have been started.
type beginLimitDB struct {
	database.DB
	allow  int64
	begins atomic.Int64
}

func (d *beginLimitDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if d.begins.Add(1) > d.allow {
		return nil, errors.New("begin refused")
	}
	return d.DB.Begin(ctx)
}

func TestCreateTransaction_BudgetCheckFailureKeepsTransaction(t *testing.T) {
	f := setupFixture(t, "100.00")
	food := f.newCategory(t, "Food")
	year, month := thisMonth()
	_, err := f.svc.CreateBudget(f.ctx, f.user.ID, BudgetInput{
		ProfileID: f.profile.ID, CategoryID: food.ID, Limit: decimal.NewFromInt(10), Month: month, Year: year,
	})
	require.NoError(t, err)

	// The first Begin is the write itself; the budget check that follows fails.
	faulty := &beginLimitDB{DB: f.db, allow: 1}
	svc := newTestService(faulty)

	tx, err := svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
		AccountID:  f.account.ID,
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(40),
		CategoryID: &food.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, tx.ID)
	require.Equal(t, int64(2), faulty.begins.Load())

	requireDecimal(t, "60", f.balance(t, f.account.ID))
	list, err := f.svc.ListAccountTransactions(f.ctx, f.user.ID, f.account.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, tx.ID, list[0].ID)

	notes, err := f.svc.ListNotifications(f.ctx, f.user.ID, f.profile.ID, false)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestCreateTransaction_WithPaymentMethod(t *testing.T) {
	f := setupFixture(t, "0")

	methods, err := f.svc.ListPaymentMethods(f.ctx)
	require.NoError(t, err)
	require.NotEmpty(t, methods)

	tx, err := f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
		AccountID:       f.account.ID,
		Type:            models.TransactionTypeIncome,
		Amount:          decimal.NewFromInt(5),
		PaymentMethodID: &methods[0].ID,
	})
	require.NoError(t, err)
	require.Equal(t, methods[0].ID, *tx.PaymentMethodID)
}

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	f := setupFixture(t, "50.00")

	expense := f.expense(t, "20.50", nil)
	income, err := f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
		AccountID: f.account.ID, Type: models.TransactionTypeIncome, Amount: decimal.RequireFromString("7.25"),
	})
	require.NoError(t, err)
	requireDecimal(t, "36.75", f.balance(t, f.account.ID))

	require.NoError(t, f.svc.DeleteTransaction(f.ctx, f.user.ID, income.ID))
	requireDecimal(t, "29.5", f.balance(t, f.account.ID))

	require.NoError(t, f.svc.DeleteTransaction(f.ctx, f.user.ID, expense.ID))
	requireDecimal(t, "50", f.balance(t, f.account.ID))

	err = f.svc.DeleteTransaction(f.ctx, f.user.ID, expense.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransaction_Unauthorized(t *testing.T) {
	f := setupFixture(t, "50.00")
	tx := f.expense(t, "10.00", nil)
	other := f.newUser(t)

	err := f.svc.DeleteTransaction(f.ctx, other.ID, tx.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
	requireDecimal(t, "40", f.balance(t, f.account.ID))

	_, err = repository.NewTransactionRepository(f.db).GetByID(f.ctx, tx.ID)
	require.NoError(t, err)
}

func TestListTransactions(t *testing.T) {
	f := setupFixture(t, "100.00")
	cat := f.newCategory(t, "Food")
	f.expense(t, "1.00", &cat.ID)
	f.expense(t, "2.00", nil)
	f.expense(t, "3.00", nil)

	byAccount, err := f.svc.ListAccountTransactions(f.ctx, f.user.ID, f.account.ID)
	require.NoError(t, err)
	require.Len(t, byAccount, 3)

	recent, err := f.svc.ListProfileTransactions(f.ctx, f.user.ID, f.profile.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, f.account.Name, recent[0].AccountName)

	all, err := f.svc.ListRecentTransactions(f.ctx, f.user.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	other := f.newUser(t)
	_, err = f.svc.ListAccountTransactions(f.ctx, other.ID, f.account.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.svc.ListProfileTransactions(f.ctx, other.ID, f.profile.ID, 10)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestBalanceMatchesReplayedHistory(t *testing.T) {
	f := setupFixture(t, "0")
	txRepo := repository.NewTransactionRepository(f.db)

	rapid.Check(t, func(rt *rapid.T) {
		opening := decimal.New(rapid.Int64Range(-100000, 100000).Draw(rt, "opening"), -2)
		account, err := f.svc.CreateAccount(f.ctx, f.user.ID, f.profile.ID, "Prop", opening)
		require.NoError(rt, err)

		var live []int64
		steps := rapid.IntRange(1, 12).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if len(live) > 0 && rapid.Bool().Draw(rt, "delete") {
				idx := rapid.IntRange(0, len(live)-1).Draw(rt, "idx")
				require.NoError(rt, f.svc.DeleteTransaction(f.ctx, f.user.ID, live[idx]))
				live = append(live[:idx], live[idx+1:]...)
			} else {
				txType := rapid.SampledFrom([]string{models.TransactionTypeIncome, models.TransactionTypeExpense}).Draw(rt, "type")
				cents := rapid.Int64Range(1, 1000000).Draw(rt, "cents")
				tx, err := f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
					AccountID: account.ID, Type: txType, Amount: decimal.New(cents, -2),
				})
				require.NoError(rt, err)
				live = append(live, tx.ID)
			}

			replayed, err := txRepo.SumSignedByAccount(f.ctx, account.ID)
			require.NoError(rt, err)
			requireDecimal(rt, opening.Add(replayed).String(), f.balance(rt, account.ID))
		}
	})
}

func TestDeleteIsInverseOfCreate(t *testing.T) {
	f := setupFixture(t, "250.00")

	rapid.Check(t, func(rt *rapid.T) {
		before := f.balance(rt, f.account.ID)
		txType := rapid.SampledFrom([]string{models.TransactionTypeIncome, models.TransactionTypeExpense}).Draw(rt, "type")
		amount := decimal.New(rapid.Int64Range(1, 99999999).Draw(rt, "cents"), -2)

		tx, err := f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
			AccountID: f.account.ID, Type: txType, Amount: amount,
		})
		require.NoError(rt, err)
		require.NoError(rt, f.svc.DeleteTransaction(f.ctx, f.user.ID, tx.ID))
		requireDecimal(rt, before.String(), f.balance(rt, f.account.ID))
	})
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	require.Equal(t, defaultListLimit, clampLimit(0))
	require.Equal(t, defaultListLimit, clampLimit(-3))
	require.Equal(t, 25, clampLimit(25))
	require.Equal(t, maxListLimit, clampLimit(maxListLimit+1))
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateAmount("amount", decimal.RequireFromString("0.01")))
	require.NoError(t, validateAmount("amount", decimal.RequireFromString("10.50")))
	require.ErrorIs(t, validateAmount("amount", decimal.Zero), ErrInvalidInput)
	require.ErrorIs(t, validateAmount("amount", decimal.RequireFromString("-1")), ErrInvalidInput)
	require.ErrorIs(t, validateAmount("amount", decimal.RequireFromString("0.001")), ErrInvalidInput)
	require.NoError(t, validateAmount("amount", decimal.RequireFromString("9999999999999.99")))
	require.ErrorIs(t, validateAmount("amount", decimal.New(1, 13)), ErrInvalidInput)
	require.ErrorIs(t, validateAmount("amount", decimal.New(1, 14)), ErrInvalidInput)
}

func TestValidateUnits(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateUnits("quantity", decimal.RequireFromString("0.000001")))
	require.NoError(t, validateUnits("quantity", decimal.RequireFromString("999999999999.999999")))
	require.ErrorIs(t, validateUnits("quantity", decimal.Zero), ErrInvalidInput)
	require.ErrorIs(t, validateUnits("quantity", decimal.RequireFromString("0.0000001")), ErrInvalidInput)
	require.ErrorIs(t, validateUnits("quantity", decimal.New(1, 12)), ErrInvalidInput)
}

func TestCreateTransaction_BalanceOverflowRollsBack(t *testing.T) {
	f := setupFixture(t, "9999999999999.00")

	_, err := f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
		AccountID: f.account.ID,
		Type:      models.TransactionTypeIncome,
		Amount:    decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	requireDecimal(t, "9999999999999.00", f.balance(t, f.account.ID))

	list, err := f.svc.ListAccountTransactions(f.ctx, f.user.ID, f.account.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestFiniteBalance(t *testing.T) {
	t.Parallel()

	require.True(t, finiteBalance(decimal.RequireFromString("-1234.56")))
	require.True(t, finiteBalance(decimal.RequireFromString("9999999999999.99")))
	require.False(t, finiteBalance(decimal.New(1, 13)))
	require.False(t, finiteBalance(decimal.New(1, 400)))
}

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("IST", 5*3600+1800)
	got := startOfDay(time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC), loc)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), got)
}
