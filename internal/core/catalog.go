package core

// Category describes a catalog entry used to decorate displayed rows.
// The store never validates membership, only non-emptiness.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var Categories = []Category{
	{ID: "food", Label: "Food", Emoji: "🍔", Color: "#F97316"},
	{ID: "transport", Label: "Transport", Emoji: "🚗", Color: "#3B82F6"},
	{ID: "shopping", Label: "Shopping", Emoji: "🛍", Color: "#EC4899"},
	{ID: "bills", Label: "Bills", Emoji: "💡", Color: "#EAB308"},
	{ID: "entertainment", Label: "Entertainment", Emoji: "🎬", Color: "#8B5CF6"},
	{ID: "groceries", Label: "Groceries", Emoji: "🛒", Color: "#10B981"},
	{ID: "health", Label: "Health", Emoji: "💊", Color: "#EF4444"},
	{ID: "travel", Label: "Travel", Emoji: "✈", Color: "#06B6D4"},
	{ID: "other", Label: "Other", Emoji: "📦", Color: "#6B7280"},
}

// CategoryByID returns the catalog entry for id, falling back to the
// last entry ("other") for unknown ids.
func CategoryByID(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[len(Categories)-1]
}

type PaymentMethod struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var PaymentMethods = []PaymentMethod{
	{ID: "credit_card", Label: "Credit Card"},
	{ID: "upi", Label: "UPI"},
	{ID: "cash", Label: "Cash"},
	{ID: "other", Label: "Other"},
}

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

var Currencies = []Currency{
	{Code: "INR", Symbol: "₹", Label: "Indian Rupee"},
	{Code: "USD", Symbol: "$", Label: "US Dollar"},
	{Code: "EUR", Symbol: "€", Label: "Euro"},
	{Code: "GBP", Symbol: "£", Label: "British Pound"},
}
