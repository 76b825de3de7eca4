package models

// CaseInfo is the catalog entry for one case, resolved by section and title
type CaseInfo struct {
	UID        string // uid of the case's last successful generation
	Title      string
	Section    string
	PriceCents int64
}

// Price returns the case price in decimal currency
func (c CaseInfo) Price() float64 {
	return CentsToDollars(c.PriceCents)
}
