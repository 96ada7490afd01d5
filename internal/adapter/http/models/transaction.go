package models

type TransactionResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

type DashboardResponse struct {
	AccountNumber      string                `json:"accountNumber"`
	Balance            string                `json:"balance"`
	TotalDeposits      string                `json:"totalDeposits"`
	TotalWithdrawals   string                `json:"totalWithdrawals"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}
