// Package legacynames matches payments to suppliers by payee name for rows
// created before supplier codes existed. It is an adapter for legacy data
// only; core ledger logic joins strictly by reference id.
package legacynames

import "strings"

// Matches reports whether a free-text payee refers to the given supplier
// name. Comparison is case-insensitive and tolerates the payee embedding the
// supplier name in a longer string ("M/S Ahmed Traders" vs "Ahmed Traders").
func Matches(payeeName, supplierName string) bool {
	payee := normalize(payeeName)
	supplier := normalize(supplierName)
	if payee == "" || supplier == "" {
		return false
	}
	return payee == supplier || strings.Contains(payee, supplier)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
