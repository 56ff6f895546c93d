package models

// QuoteLine is one priced line of a stay quote
type QuoteLine struct {
	Kind      string `json:"kind"` // lodging or service
	RefID     string `json:"refId,omitempty"`
	Label     string `json:"label"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	LineTotal int64  `json:"lineTotal"`
}

// Quote is the priced breakdown of a draft stay
type Quote struct {
	Nights        int         `json:"nights"`
	LodgingTotal  int64       `json:"lodgingTotal"`
	ServicesTotal int64       `json:"servicesTotal"`
	Total         int64       `json:"total"`
	Lines         []QuoteLine `json:"lines"`
}
