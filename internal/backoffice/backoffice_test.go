package backoffice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mt5-backoffice/internal/api"
	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(api.Config{BaseURL: server.URL, Timeout: 2 * time.Second, Logger: zerolog.Nop()})
	return NewService(client, zerolog.Nop())
}

func TestDepositValidatesPayload(t *testing.T) {
	var called bool
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		name string
		req  models.PaymentCreate
	}{
		{"zero amount", models.PaymentCreate{Amount: 0, Method: "stripe"}},
		{"negative amount", models.PaymentCreate{Amount: -50, Method: "stripe"}},
		{"unknown method", models.PaymentCreate{Amount: 100, Method: "cheque"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Deposit(context.Background(), tc.req)
			if !apperrors.Is(err, apperrors.ErrInputValidation) {
				t.Errorf("expected ErrInputValidation, got %v", err)
			}
		})
	}
	if called {
		t.Error("invalid payloads must not reach the backend")
	}
}

func TestDepositDefaultsCurrency(t *testing.T) {
	var gotCurrency string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.PaymentCreate
		json.NewDecoder(r.Body).Decode(&req)
		gotCurrency = req.Currency
		json.NewEncoder(w).Encode(models.PaymentCreated{PaymentID: "p-1", Status: "pending"})
	}))

	created, err := svc.Deposit(context.Background(), models.PaymentCreate{Amount: 100, Method: "stripe"})
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if gotCurrency != "USD" {
		t.Errorf("currency = %q, want USD default", gotCurrency)
	}
	if created.PaymentID != "p-1" {
		t.Errorf("payment id = %q", created.PaymentID)
	}
}

func TestWithdrawMapsInsufficientBalance(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Insufficient balance"})
	}))

	_, err := svc.Withdraw(context.Background(), models.WithdrawRequest{Amount: 1000, Method: "bank_transfer"})
	if !apperrors.Is(err, apperrors.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestSummarizeFlow(t *testing.T) {
	payments := []models.Payment{
		{Amount: 100.10, Status: models.PaymentCompleted},
		{Amount: 200.20, Status: models.PaymentCompleted},
		{Amount: -50.30, Status: models.PaymentCompleted},
		{Amount: 999, Status: models.PaymentPending},
		{Amount: -75, Status: models.PaymentFailed},
	}

	summary := SummarizeFlow(payments)
	if got := summary.Deposits.StringFixed(2); got != "300.30" {
		t.Errorf("deposits = %s", got)
	}
	if got := summary.Withdrawals.StringFixed(2); got != "50.30" {
		t.Errorf("withdrawals = %s", got)
	}
	if got := summary.Net().StringFixed(2); got != "250.00" {
		t.Errorf("net = %s", got)
	}
	if summary.Pending != 1 {
		t.Errorf("pending = %d", summary.Pending)
	}
}

func TestSummarizeFlowAvoidsFloatDrift(t *testing.T) {
	// Summing 0.1 a thousand times drifts in float64; decimal must not.
	var payments []models.Payment
	for i := 0; i < 1000; i++ {
		payments = append(payments, models.Payment{Amount: 0.1, Status: models.PaymentCompleted})
	}
	if got := SummarizeFlow(payments).Deposits.StringFixed(2); got != "100.00" {
		t.Errorf("deposits = %s, want 100.00", got)
	}
}

func TestCreateTicketValidation(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid ticket must not reach the backend")
	}))

	tests := []struct {
		name string
		req  models.TicketCreate
	}{
		{"short subject", models.TicketCreate{Subject: "Hi", Description: "long enough text", Category: "billing"}},
		{"short description", models.TicketCreate{Subject: "Valid subject", Description: "short", Category: "billing"}},
		{"bad category", models.TicketCreate{Subject: "Valid subject", Description: "long enough text", Category: "weather"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateTicket(context.Background(), tc.req); !apperrors.Is(err, apperrors.ErrInputValidation) {
				t.Errorf("expected ErrInputValidation, got %v", err)
			}
		})
	}
}

func TestCreateTicketDefaultsPriority(t *testing.T) {
	var gotPriority string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.TicketCreate
		json.NewDecoder(r.Body).Decode(&req)
		gotPriority = req.Priority
		json.NewEncoder(w).Encode(models.Ticket{ID: "t-1", Subject: req.Subject})
	}))

	_, err := svc.CreateTicket(context.Background(), models.TicketCreate{
		Subject:     "Withdrawal stuck",
		Description: "My withdrawal from Monday has not settled.",
		Category:    "billing",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if gotPriority != "medium" {
		t.Errorf("priority = %q, want medium default", gotPriority)
	}
}

func TestUploadDocumentChecks(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.DocumentUpload
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(models.Document{
			ID:           "d-1",
			DocumentType: req.DocumentType,
			FileName:     req.FileName,
			Status:       "pending",
		})
	}))

	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "passport.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.UploadDocument(context.Background(), "passport", pdfPath)
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if doc.FileName != "passport.pdf" {
		t.Errorf("file name = %q", doc.FileName)
	}

	exePath := filepath.Join(dir, "malware.exe")
	os.WriteFile(exePath, []byte("MZ"), 0644)
	if _, err := svc.UploadDocument(context.Background(), "passport", exePath); !apperrors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("unsupported extension should fail validation, got %v", err)
	}

	if _, err := svc.UploadDocument(context.Background(), "passport", filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestAccountInfoRetriesTransientFailures(t *testing.T) {
	var attempts int
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(models.AccountInfo{Login: 1001, Balance: 500})
	}))

	info, err := svc.AccountInfo(context.Background())
	if err != nil {
		t.Fatalf("AccountInfo: %v", err)
	}
	if info.Login != 1001 {
		t.Errorf("login = %d", info.Login)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestAdminMutationsValidatePayload(t *testing.T) {
	var called bool
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		name string
		call func() error
	}{
		{"unknown kyc status", func() error {
			return svc.UpdateUserKYC(context.Background(), "u-1", models.KYCUpdate{Status: "maybe"})
		}},
		{"empty kyc status", func() error {
			return svc.UpdateUserKYC(context.Background(), "u-1", models.KYCUpdate{})
		}},
		{"negative balance", func() error {
			return svc.SetUserBalance(context.Background(), "u-1", models.BalanceSet{Balance: -100})
		}},
		{"unknown payment status", func() error {
			return svc.SetPaymentStatus(context.Background(), "p-1", models.PaymentStatusUpdate{Status: "bounced"})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !apperrors.Is(err, apperrors.ErrInputValidation) {
				t.Errorf("expected ErrInputValidation, got %v", err)
			}
		})
	}
	if called {
		t.Error("invalid payloads must not reach the backend")
	}
}

func TestAdminMutationsUsePutEndpoints(t *testing.T) {
	type hit struct{ method, path string }
	var hits []hit
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, hit{r.Method, r.URL.Path})
		json.NewEncoder(w).Encode(map[string]string{"message": "User activated successfully"})
	}))

	if err := svc.UpdateUserKYC(context.Background(), "u-1", models.KYCUpdate{Status: "approved"}); err != nil {
		t.Fatalf("UpdateUserKYC: %v", err)
	}
	msg, err := svc.ToggleUserActive(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ToggleUserActive: %v", err)
	}
	if msg != "User activated successfully" {
		t.Errorf("toggle message = %q", msg)
	}
	if err := svc.SetUserBalance(context.Background(), "u-1", models.BalanceSet{Balance: 2500}); err != nil {
		t.Fatalf("SetUserBalance: %v", err)
	}
	if err := svc.SetPaymentStatus(context.Background(), "p-1", models.PaymentStatusUpdate{Status: "completed"}); err != nil {
		t.Fatalf("SetPaymentStatus: %v", err)
	}

	want := []hit{
		{http.MethodPut, "/api/admin/users/u-1/kyc"},
		{http.MethodPut, "/api/admin/users/u-1/activate"},
		{http.MethodPut, "/api/admin/users/u-1/balance"},
		{http.MethodPut, "/api/admin/payments/p-1/status"},
	}
	if len(hits) != len(want) {
		t.Fatalf("hits = %d, want %d", len(hits), len(want))
	}
	for i, h := range hits {
		if h != want[i] {
			t.Errorf("hit %d = %s %s, want %s %s", i, h.method, h.path, want[i].method, want[i].path)
		}
	}
}

func TestMonthlyAnalyticsDecodesBuckets(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/analytics/monthly" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"monthly_users": [{"_id": {"year": 2026, "month": 7}, "count": 14}],
			"monthly_payments": [{"_id": {"year": 2026, "month": 7}, "total_amount": 5100.50, "count": 9}]
		}`))
	}))

	analytics, err := svc.MonthlyAnalytics(context.Background())
	if err != nil {
		t.Fatalf("MonthlyAnalytics: %v", err)
	}
	if len(analytics.MonthlyUsers) != 1 || analytics.MonthlyUsers[0].Count != 14 {
		t.Errorf("monthly users = %+v", analytics.MonthlyUsers)
	}
	bucket := analytics.MonthlyPayments[0]
	if bucket.Month.Year != 2026 || bucket.Month.Month != 7 {
		t.Errorf("bucket month = %+v", bucket.Month)
	}
	if bucket.TotalAmount != 5100.50 {
		t.Errorf("bucket volume = %v", bucket.TotalAmount)
	}
}

func TestAllPaymentsCarryUserID(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/payments/history" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Payment{
			{ID: "p-1", UserID: "u-1", Amount: 100, Currency: "USD", Status: models.PaymentCompleted},
		})
	}))

	payments, err := svc.AllPayments(context.Background())
	if err != nil {
		t.Fatalf("AllPayments: %v", err)
	}
	if len(payments) != 1 || payments[0].UserID != "u-1" {
		t.Errorf("payments = %+v", payments)
	}
}
