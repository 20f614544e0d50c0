package core

import "sort"

type (
	// CardUsage is the read-side view of a credit card with derived usage
	// figures. Usage is recomputed on every read by scanning the
	// transaction collection; nothing is stored.
	CardUsage struct {
		Card
		UsedAmount      float64 `json:"used_amount"`
		AvailableAmount float64 `json:"available_amount"`
		CurrentInvoice  float64 `json:"current_invoice"`
	}

	// EnrichedTransaction joins display data from the referenced category
	// and card onto a transaction. The base record keeps only the ids.
	EnrichedTransaction struct {
		Transaction
		CategoryName  string `json:"category_name,omitempty"`
		CategoryColor string `json:"category_color,omitempty"`
		CardName      string `json:"card_name,omitempty"`
	}

	DashboardStats struct {
		TotalIncome  float64 `json:"total_income"`
		TotalExpense float64 `json:"total_expense"`
		Balance      float64 `json:"balance"`
		TotalCards   int     `json:"total_cards"`
	}

	CategorySlice struct {
		Name  string  `json:"name"`
		Color string  `json:"color"`
		Value float64 `json:"value"`
	}

	DailyFlow struct {
		Date    string  `json:"date"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}

	// MonthlySummary aggregates one calendar month ("yyyy-mm") of
	// transactions for the report view.
	MonthlySummary struct {
		Month        string          `json:"month"`
		TotalIncome  float64         `json:"total_income"`
		TotalExpense float64         `json:"total_expense"`
		Balance      float64         `json:"balance"`
		ByCategory   []CategorySlice `json:"by_category"`
		Daily        []DailyFlow     `json:"daily"`
	}
)

// ComputeCardUsage derives usage for one card from the full transaction
// list: only expenses paid by credit card and referencing the card count.
func ComputeCardUsage(card Card, txs []Transaction) CardUsage {
	var used float64
	for _, t := range txs {
		if t.CreditCardID == card.ID && t.PaymentMethod == CreditCard && t.Type == Expense {
			used += t.Amount
		}
	}
	return CardUsage{
		Card:            card,
		UsedAmount:      used,
		AvailableAmount: card.LimitTotal - used,
		CurrentInvoice:  used,
	}
}

// EnrichTransactions joins category and card display fields onto each
// transaction and sorts the result most-recent-date-first. Dangling
// references simply produce empty display fields.
func EnrichTransactions(txs []Transaction, cats []Category, cards []Card) []EnrichedTransaction {
	catByID := make(map[string]Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}
	cardByID := make(map[string]Card, len(cards))
	for _, c := range cards {
		cardByID[c.ID] = c
	}

	out := make([]EnrichedTransaction, 0, len(txs))
	for _, t := range txs {
		e := EnrichedTransaction{Transaction: t}
		if c, ok := catByID[t.CategoryID]; ok {
			e.CategoryName = c.Name
			e.CategoryColor = c.Color
		}
		if c, ok := cardByID[t.CreditCardID]; ok {
			e.CardName = c.Name
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// ComputeDashboard totals income and expense over all transactions.
func ComputeDashboard(txs []Transaction, cardCount int) DashboardStats {
	var s DashboardStats
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	s.TotalCards = cardCount
	return s
}

// ComputeMonthlySummary aggregates the transactions of one month
// ("yyyy-mm"): totals, an expense breakdown by category and a per-day
// income/expense series. Expenses without a resolvable category are
// grouped under "Outros".
func ComputeMonthlySummary(month string, txs []Transaction, cats []Category) MonthlySummary {
	catByID := make(map[string]Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}

	sum := MonthlySummary{Month: month}
	byCat := make(map[string]*CategorySlice)
	byDay := make(map[string]*DailyFlow)

	for _, t := range txs {
		if len(t.Date) < 7 || t.Date[:7] != month {
			continue
		}
		switch t.Type {
		case Income:
			sum.TotalIncome += t.Amount
		case Expense:
			sum.TotalExpense += t.Amount
			name, color := "Outros", "#6b7280"
			if c, ok := catByID[t.CategoryID]; ok {
				name, color = c.Name, c.Color
			}
			slice, ok := byCat[name]
			if !ok {
				slice = &CategorySlice{Name: name, Color: color}
				byCat[name] = slice
			}
			slice.Value += t.Amount
		}

		day, ok := byDay[t.Date]
		if !ok {
			day = &DailyFlow{Date: t.Date}
			byDay[t.Date] = day
		}
		if t.Type == Income {
			day.Income += t.Amount
		} else {
			day.Expense += t.Amount
		}
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpense

	for _, s := range byCat {
		sum.ByCategory = append(sum.ByCategory, *s)
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		return sum.ByCategory[i].Value > sum.ByCategory[j].Value
	})
	for _, d := range byDay {
		sum.Daily = append(sum.Daily, *d)
	}
	sort.Slice(sum.Daily, func(i, j int) bool {
		return sum.Daily[i].Date < sum.Daily[j].Date
	})
	return sum
}
