package model

// Analytics rows served by the read-only dashboard endpoints.  These are
// straight projections of their tables; the core never writes them.

// Earnings is one revenue breakdown row.
type Earnings struct {
	ProductSales     int64 `json:"productSales"`
	SubscriptionFees int64 `json:"subscriptionFees"`
	ServiceCharges   int64 `json:"serviceCharges"`
	Miscellaneous    int64 `json:"miscellaneous"`
}

// TicketStat aggregates ticket volume and handling time per show.
type TicketStat struct {
	Name           string `json:"name"`
	Tickets        int64  `json:"tickets"`
	ResolutionTime int64  `json:"resolutionTime"`
}

// ProfitRow reports earnings against cost per show.
type ProfitRow struct {
	Name    string `json:"name"`
	Earning int64  `json:"earning"`
	Cost    int64  `json:"cost"`
	Profit  int64  `json:"profit"`
}
