package memory

import (
	"time"

	"financas/internal/core"
)

// SeedCategories is the static pt-BR taxonomy: eight expense and four
// income categories.
func SeedCategories() []core.Category {
	return []core.Category{
		{ID: "1", Name: "Alimentação", Type: core.Expense, Color: "#ef4444", Icon: "utensils"},
		{ID: "2", Name: "Transporte", Type: core.Expense, Color: "#f59e0b", Icon: "car"},
		{ID: "3", Name: "Moradia", Type: core.Expense, Color: "#8b5cf6", Icon: "home"},
		{ID: "4", Name: "Saúde", Type: core.Expense, Color: "#10b981", Icon: "heart"},
		{ID: "5", Name: "Educação", Type: core.Expense, Color: "#3b82f6", Icon: "graduation-cap"},
		{ID: "6", Name: "Lazer", Type: core.Expense, Color: "#ec4899", Icon: "gamepad"},
		{ID: "7", Name: "Compras", Type: core.Expense, Color: "#f97316", Icon: "shopping-cart"},
		{ID: "8", Name: "Outros", Type: core.Expense, Color: "#6b7280", Icon: "ellipsis"},
		{ID: "9", Name: "Salário", Type: core.Income, Color: "#10b981", Icon: "wallet"},
		{ID: "10", Name: "Freelance", Type: core.Income, Color: "#3b82f6", Icon: "briefcase"},
		{ID: "11", Name: "Investimentos", Type: core.Income, Color: "#8b5cf6", Icon: "trending-up"},
		{ID: "12", Name: "Outros", Type: core.Income, Color: "#6b7280", Icon: "ellipsis"},
	}
}

func SeedCards() []core.Card {
	return []core.Card{
		{ID: "1", Name: "Nubank", LimitTotal: 5000, ClosingDay: 15, DueDay: 22},
		{ID: "2", Name: "Inter", LimitTotal: 3000, ClosingDay: 10, DueDay: 17},
	}
}

func SeedTransactions() []core.Transaction {
	today := time.Now().Format(core.DateLayout)
	return []core.Transaction{
		{
			ID: "1", Date: today, Description: "Supermercado Extra", Amount: 250.50,
			Type: core.Expense, PaymentMethod: core.CreditCard, Status: core.Paid,
			InstallmentCount: 1, CurrentInstallment: 1,
			CategoryID: "1", CreditCardID: "1",
		},
		{
			ID: "2", Date: today, Description: "Salário", Amount: 5000,
			Type: core.Income, PaymentMethod: core.Transfer, Status: core.Paid,
			InstallmentCount: 1, CurrentInstallment: 1,
			CategoryID: "9",
		},
		{
			ID: "3", Date: today, Description: "Conta de Luz", Amount: 180,
			Type: core.Expense, PaymentMethod: core.Pix, Status: core.Pending,
			InstallmentCount: 1, CurrentInstallment: 1,
			CategoryID: "3",
		},
	}
}
