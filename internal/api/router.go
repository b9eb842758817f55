package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Deps wires the router to its collaborators. Suggester may be nil, in which
// case category suggestions answer 503.
type Deps struct {
	Ledger      Ledger
	Suggester   CategorySuggester
	Secret      []byte
	AllowOrigin func(origin string) bool
	Location    *time.Location
}

type handler struct {
	ledger    Ledger
	suggester CategorySuggester
	loc       *time.Location
}

// NewRouter builds the HTTP API. Every route except /api/health requires a
// bearer token.
func NewRouter(deps Deps) http.Handler {
	h := &handler{ledger: deps.Ledger, suggester: deps.Suggester, loc: deps.Location}
	if h.loc == nil {
		h.loc = time.UTC
	}
	allow := deps.AllowOrigin
	if allow == nil {
		allow = func(string) bool { return false }
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(allow))
	r.Use(middleware.Compress(5, "application/json"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.Secret, deps.Ledger))

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.listRecentTransactions)
				r.Post("/", h.createTransaction)
				r.Delete("/{id}", h.deleteTransaction)
				r.Get("/account/{accountID}", h.listAccountTransactions)
				r.Get("/account/{accountID}/export.csv", h.exportAccountTransactions)
				r.Get("/profile/{profileID}", h.listProfileTransactions)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Post("/", h.createBudget)
				r.Get("/profile/{profileID}/{year}/{month}", h.listBudgets)
				r.Get("/profile/{profileID}/{year}/{month}/chart.png", h.budgetChart)
				r.Put("/{id}", h.updateBudget)
				r.Delete("/{id}", h.deleteBudget)
			})

			r.Route("/recurring-transactions", func(r chi.Router) {
				r.Post("/", h.createRecurring)
				r.Post("/execute", h.executeRecurring)
				r.Get("/profile/{profileID}", h.listRecurring)
				r.Put("/{id}", h.updateRecurring)
				r.Delete("/{id}", h.deleteRecurring)
			})

			r.Route("/investments", func(r chi.Router) {
				r.Post("/", h.createInvestment)
				r.Get("/profile/{profileID}", h.listInvestments)
			})

			r.Route("/investment-transactions", func(r chi.Router) {
				r.Post("/", h.createInvestmentTransaction)
				r.Get("/investment/{investmentID}", h.listInvestmentTransactions)
			})

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", h.listProfiles)
				r.Post("/", h.createProfile)
				r.Put("/{id}", h.updateProfile)
				r.Delete("/{id}", h.deleteProfile)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", h.listAccounts)
				r.Post("/", h.createAccount)
				r.Get("/profile/{profileID}", h.listProfileAccounts)
				r.Get("/profile/{profileID}/net-worth", h.profileNetWorth)
				r.Get("/profile/{profileID}/net-worth-history", h.netWorthHistory)
				r.Get("/{id}", h.getAccount)
				r.Put("/{id}", h.updateAccount)
				r.Delete("/{id}", h.deleteAccount)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", h.createCategory)
				r.Post("/suggest", h.suggestCategory)
				r.Get("/profile/{profileID}", h.listCategories)
				r.Put("/{id}", h.renameCategory)
				r.Delete("/{id}", h.deleteCategory)
			})

			r.Get("/payment-methods", h.listPaymentMethods)
			r.Get("/summary/net-worth", h.userNetWorth)

			r.Route("/notifications", func(r chi.Router) {
				r.Post("/", h.createNotification)
				r.Get("/profile/{profileID}", h.listNotifications)
				r.Get("/profile/{profileID}/unread", h.listUnreadNotifications)
				r.Put("/profile/{profileID}/read-all", h.markAllNotificationsRead)
				r.Put("/{id}/read", h.markNotificationRead)
				r.Delete("/{id}", h.deleteNotification)
			})

			r.Route("/financial-goals", func(r chi.Router) {
				r.Post("/", h.createGoal)
				r.Get("/profile/{profileID}", h.listGoals)
				r.Put("/{id}", h.updateGoal)
				r.Delete("/{id}", h.deleteGoal)
			})
		})
	})

	return otelhttp.NewHandler(r, "fintrack-api")
}
