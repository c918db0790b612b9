package model

// Show represents one bookable event at the venue.  The identifier is an
// opaque string assigned by the seeding process and stays stable across
// requests.  Price is the display string shown to visitors (e.g. "₹150");
// UnitPrice is the numeric amount used for every computation.  TicketsLeft is
// the live seats-remaining counter and is only ever decreased through a
// successful reservation.
//
// The JSON field names mirror what the dashboard frontend consumes.
type Show struct {
	ID          string `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	ShowTime    string `json:"time"`
	Location    string `json:"location"`
	Price       string `json:"price"`
	UnitPrice   int64  `json:"-"`
	TicketsLeft int64  `json:"ticketsLeft"`
}
