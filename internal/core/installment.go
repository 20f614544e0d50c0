package core

import (
	"fmt"
	"time"
)

// ExpandInstallments splits base into n transactions of amount/n each.
//
// Dates advance one calendar month per installment from the base date
// (normalized by the calendar, so Jan 31 + 1 month lands in early March).
// The first installment keeps the requested status; all later ones are
// pending. Descriptions get an " (i/n)" suffix. Rounding drift from the
// float division is accepted, not redistributed.
//
// n < 2 returns the base transaction unchanged as a single element.
func ExpandInstallments(base Transaction, n int) []Transaction {
	if n < 2 {
		base.IsInstallment = false
		base.InstallmentCount = 1
		base.CurrentInstallment = 1
		return []Transaction{base}
	}

	baseDate, err := time.Parse(DateLayout, base.Date)
	if err != nil {
		baseDate = time.Now()
	}

	part := base.Amount / float64(n)
	out := make([]Transaction, 0, n)
	for i := 0; i < n; i++ {
		t := base
		t.ID = ""
		t.Date = baseDate.AddDate(0, i, 0).Format(DateLayout)
		t.Description = fmt.Sprintf("%s (%d/%d)", base.Description, i+1, n)
		t.Amount = part
		t.IsInstallment = true
		t.InstallmentCount = n
		t.CurrentInstallment = i + 1
		if i > 0 {
			t.Status = Pending
		}
		out = append(out, t)
	}
	return out
}
