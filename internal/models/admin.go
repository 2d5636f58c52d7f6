package models

// DashboardStats is the admin overview from /api/admin/dashboard.
type DashboardStats struct {
	Users     UserStats     `json:"users"`
	Payments  PaymentStats  `json:"payments"`
	Tickets   TicketStats   `json:"tickets"`
	Documents DocumentStats `json:"documents"`
}

// UserStats summarizes the user base.
type UserStats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	KYCPending  int `json:"kyc_pending"`
	KYCApproved int `json:"kyc_approved"`
}

// PaymentStats summarizes settled money flow.
type PaymentStats struct {
	TotalDeposits    float64 `json:"total_deposits"`
	TotalWithdrawals float64 `json:"total_withdrawals"`
	NetFlow          float64 `json:"net_flow"`
}

// TicketStats summarizes support load.
type TicketStats struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
	Total  int `json:"total"`
}

// DocumentStats summarizes the KYC review queue.
type DocumentStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Total    int `json:"total"`
}

// KYCUpdate is the admin payload for /api/admin/users/{id}/kyc.
type KYCUpdate struct {
	Status string `json:"status" validate:"required,oneof=approved rejected pending"`
}

// BalanceSet is the admin payload for /api/admin/users/{id}/balance.
// The backend replaces the ledger balance outright, it does not add.
type BalanceSet struct {
	Balance float64 `json:"balance" validate:"gte=0"`
}

// PaymentStatusUpdate is the admin payload for /api/admin/payments/{id}/status.
type PaymentStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed"`
}

// MonthKey identifies a calendar month in the analytics aggregates.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthlySignups is one bucket of registrations from /api/admin/analytics/monthly.
type MonthlySignups struct {
	Month MonthKey `json:"_id"`
	Count int      `json:"count"`
}

// MonthlyVolume is one bucket of settled payment volume.
type MonthlyVolume struct {
	Month       MonthKey `json:"_id"`
	TotalAmount float64  `json:"total_amount"`
	Count       int      `json:"count"`
}

// MonthlyAnalytics is the response of /api/admin/analytics/monthly,
// covering the trailing twelve months.
type MonthlyAnalytics struct {
	MonthlyUsers    []MonthlySignups `json:"monthly_users"`
	MonthlyPayments []MonthlyVolume  `json:"monthly_payments"`
}

// EquityPoint is one sample of the equity curve from /api/charts/equity-data.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// MonthlyFlow is one bar of the monthly deposit/withdrawal charts.
type MonthlyFlow struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// FlowComparison is one row of the deposit/withdrawal comparison chart.
type FlowComparison struct {
	Month       string  `json:"month"`
	Deposits    float64 `json:"deposits"`
	Withdrawals float64 `json:"withdrawals"`
}

// TradingPerformance is the summary from /api/charts/trading-performance.
type TradingPerformance struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
	TotalProfit   float64 `json:"total_profit"`
	TotalLoss     float64 `json:"total_loss"`
	NetProfit     float64 `json:"net_profit"`
}
