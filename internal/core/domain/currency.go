package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g. "SLE")
	Symbol       string `json:"symbol"`       // e.g. "Le"
	Name         string `json:"name"`         // e.g. "Sierra Leonean Leone"
	Precision    int    `json:"precision"`    // Minor unit digits, e.g. 2
	AuditFields
}
