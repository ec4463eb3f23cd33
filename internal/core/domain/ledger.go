package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType names the document behind a ledger line.
type LedgerEntryType string

const (
	EntryPurchase LedgerEntryType = "Purchase"
	EntryPayment  LedgerEntryType = "Payment"
	EntryInvoice  LedgerEntryType = "Invoice"
	EntryReceipt  LedgerEntryType = "Receipt"
	EntryPlotSale LedgerEntryType = "Plot Sale"
)

// LedgerEntry is one computed line of a counterparty ledger. It is never
// persisted; the ledger is rebuilt from the transaction log on every read.
type LedgerEntry struct {
	Date           time.Time       `json:"date"`
	Type           LedgerEntryType `json:"type"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`

	// seq breaks date ties deterministically (creation order).
	seq time.Time
}

// Ledger is the chronological debit/credit history for one counterparty.
// When built over a date range the running balance restarts at zero; period
// ledgers are independent, not cumulative across periods.
type Ledger struct {
	Entries     []LedgerEntry   `json:"entries"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// NewLedgerEntry builds an entry carrying its tie-break key.
func NewLedgerEntry(date time.Time, typ LedgerEntryType, reference, description string, debit, credit decimal.Decimal, createdAt time.Time) LedgerEntry {
	return LedgerEntry{
		Date:        date,
		Type:        typ,
		Reference:   reference,
		Description: description,
		Debit:       debit,
		Credit:      credit,
		seq:         createdAt,
	}
}

// Before orders entries by date, then by creation order for equal dates.
func (e LedgerEntry) Before(other LedgerEntry) bool {
	if !e.Date.Equal(other.Date) {
		return e.Date.Before(other.Date)
	}
	return e.seq.Before(other.seq)
}
