package core

// BudgetProgress returns how much of budget is consumed by total,
// clamped to [0, 1]. A zero or negative budget yields 0.
func BudgetProgress(total, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	p := total / budget
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// BudgetStatus is the derived monthly budget position served to
// dashboard consumers.
type BudgetStatus struct {
	Budget   float64 `json:"budget"`
	Spent    float64 `json:"spent"`
	Progress float64 `json:"progress"`
}
