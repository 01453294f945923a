package game

import (
	"fmt"
	"math"
	"regexp"
)

var tradeDescRE = regexp.MustCompile(`^(Bought|Sold) (\d+)x (.+)$`)

// logTrade appends a trade line, folding repeated same-day purchases or
// sales of the same commodity into a single "Nx" entry so a burst of
// small orders doesn't flood the log.
func (s *Session) logTrade(st *State, commodityName string, quantity int, amount int64) {
	verb := "Bought"
	if amount > 0 {
		verb = "Sold"
	}

	if n := len(st.Ledger); n > 0 {
		last := &st.Ledger[n-1]
		if last.Day == st.Day && last.Type == TxTrade {
			m := tradeDescRE.FindStringSubmatch(last.Description)
			if m != nil && m[1] == verb && m[3] == commodityName {
				prev := 0
				fmt.Sscanf(m[2], "%d", &prev)
				last.Amount += amount
				last.Balance = int64(math.Floor(st.Player.Credits))
				last.Description = fmt.Sprintf("%s %dx %s", verb, prev+quantity, commodityName)
				return
			}
		}
	}

	s.appendLedger(st, TxTrade, amount, fmt.Sprintf("%s %dx %s", verb, quantity, commodityName))
}

// logService appends a fuel or repair line, accumulating onto the last
// entry when a held-button tick stream repeats within the same day.
func (s *Session) logService(st *State, entryType string, amount int64, description string) {
	if n := len(st.Ledger); n > 0 {
		last := &st.Ledger[n-1]
		if last.Day == st.Day && last.Type == entryType {
			last.Amount += amount
			last.Balance = int64(math.Floor(st.Player.Credits))
			return
		}
	}
	s.appendLedger(st, entryType, amount, description)
}

// appendLedger writes one line unconditionally. Loan, ship, intel,
// debt and event entries always come through here and never merge.
func (s *Session) appendLedger(st *State, entryType string, amount int64, description string) {
	st.Ledger = append(st.Ledger, LedgerEntry{
		Day:         st.Day,
		Type:        entryType,
		Description: description,
		Amount:      amount,
		Balance:     int64(math.Floor(st.Player.Credits)),
	})
}

// recordTransaction keeps the compact cash-flow history used for
// profit accounting.
func (s *Session) recordTransaction(st *State, txType string, amount int64) {
	st.Transactions = append(st.Transactions, Transaction{Day: st.Day, Type: txType, Amount: amount})
}

// LedgerEntries returns a copy of the ledger, newest last.
func (s *Session) LedgerEntries() []LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LedgerEntry, len(s.state.Ledger))
	copy(out, s.state.Ledger)
	return out
}
