package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// LedgerParams defines query parameters for ledger reconstruction.
type LedgerParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// LedgerEntryResponse represents one row of a reconstructed ledger.
type LedgerEntryResponse struct {
	Date           time.Time       `json:"date"`
	Type           string          `json:"type"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse represents a reconstructed ledger with its totals.
type LedgerResponse struct {
	Entries     []LedgerEntryResponse `json:"entries"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	Balance     decimal.Decimal       `json:"balance"`
}

// ToLedgerResponse converts a domain.Ledger to LedgerResponse DTO.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	entries := make([]LedgerEntryResponse, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = LedgerEntryResponse{
			Date:           e.Date,
			Type:           string(e.Type),
			Reference:      e.Reference,
			Description:    e.Description,
			Debit:          e.Debit,
			Credit:         e.Credit,
			RunningBalance: e.RunningBalance,
		}
	}
	return LedgerResponse{
		Entries:     entries,
		TotalDebit:  l.TotalDebit,
		TotalCredit: l.TotalCredit,
		Balance:     l.Balance,
	}
}
