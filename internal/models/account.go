package models

// AccountInfo is the MT5 account snapshot returned by /api/mt5/account.
type AccountInfo struct {
	Login      int     `json:"login"`
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	Margin     float64 `json:"margin"`
	FreeMargin float64 `json:"free_margin"`
	Profit     float64 `json:"profit"`
	Credit     float64 `json:"credit"`
	Leverage   int     `json:"leverage,omitempty"`
	Name       string  `json:"name,omitempty"`
	Server     string  `json:"server,omitempty"`
	Currency   string  `json:"currency,omitempty"`
}

// Position is an open MT5 position.
type Position struct {
	ID           int     `json:"id,omitempty"`
	DealID       int     `json:"dealId,omitempty"`
	LoginID      int     `json:"loginid,omitempty"`
	PositionID   int     `json:"positionid,omitempty"`
	Symbol       string  `json:"symbol"`
	LotSize      float64 `json:"lotsize"`
	Type         string  `json:"type"`
	OpenTime     int64   `json:"opentime,omitempty"`
	Price        float64 `json:"price"`
	Entry        string  `json:"entry,omitempty"`
	Commission   float64 `json:"commission"`
	Swap         float64 `json:"swap"`
	Comment      string  `json:"comment,omitempty"`
	OrderID      int     `json:"orderId,omitempty"`
	Profit       float64 `json:"profit"`
	CurrentPrice float64 `json:"currentPrice"`
	StopLoss     float64 `json:"sl"`
	TakeProfit   float64 `json:"tp"`
}

// Order is a pending MT5 order.
type Order struct {
	Ticket     int     `json:"ticket,omitempty"`
	Symbol     string  `json:"symbol"`
	Type       string  `json:"type"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	StopLoss   float64 `json:"sl"`
	TakeProfit float64 `json:"tp"`
	Comment    string  `json:"comment,omitempty"`
	State      string  `json:"state,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// HistoryDeal is a closed trade from /api/mt5/history.
type HistoryDeal struct {
	DealID   int     `json:"dealId,omitempty"`
	OrderID  int     `json:"orderId,omitempty"`
	Symbol   string  `json:"symbol"`
	Type     string  `json:"type"`
	LotSize  float64 `json:"lotsize"`
	Price    float64 `json:"price"`
	Profit   float64 `json:"profit"`
	Swap     float64 `json:"swap"`
	Time     int64   `json:"time,omitempty"`
	Comment  string  `json:"comment,omitempty"`
	Entry    string  `json:"entry,omitempty"`
	Position int     `json:"positionid,omitempty"`
}

// TradeRequest opens or closes a trade through the backend bridge.
type TradeRequest struct {
	LoginID    int     `json:"loginid"`
	PositionID int     `json:"positionId,omitempty"`
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	Type       string  `json:"type"`
	TakeProfit float64 `json:"tp"`
	StopLoss   float64 `json:"sl"`
	Comment    string  `json:"comment,omitempty"`
}

// AccountCreateRequest provisions a new MT5 account.
type AccountCreateRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Balance   float64 `json:"balance"`
	Leverage  int     `json:"leverage"`
	GroupName string  `json:"groupName"`
	Platform  int     `json:"platform"`
	Server    string  `json:"server"`
}

// BalanceOperation adjusts the MT5 account balance.
// TxnType: 0 deposit, 1 withdraw, 2 credit, 3 debit.
type BalanceOperation struct {
	Amount      float64 `json:"amount"`
	TxnType     int     `json:"txn_type"`
	Description string  `json:"description"`
	Comment     string  `json:"comment,omitempty"`
}
