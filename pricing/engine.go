package pricing

import (
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

const day = 24 * time.Hour

// QuoteInput is what a stay quote is computed from
type QuoteInput struct {
	RoomID        string
	RoomName      string
	PricePerNight int64
	CheckIn       time.Time
	CheckOut      time.Time
	Services      []models.ServiceSnapshot
}

// Nights returns the number of billable nights between checkIn and checkOut.
// Partial days round up. A non-positive span is zero nights.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return 0
	}
	span := checkOut.Sub(checkIn)
	n := int(span / day)
	if span%day != 0 {
		n++
	}
	return n
}

// Quote prices a stay: nights × pricePerNight plus every selected add-on.
// Without both dates or with a non-positive nightly price the quote is empty.
func Quote(in QuoteInput) models.Quote {
	q := models.Quote{Lines: []models.QuoteLine{}}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() || in.PricePerNight <= 0 {
		return q
	}

	q.Nights = Nights(in.CheckIn, in.CheckOut)
	q.LodgingTotal = int64(q.Nights) * in.PricePerNight
	q.Lines = append(q.Lines, models.QuoteLine{
		Kind:      "lodging",
		RefID:     in.RoomID,
		Label:     in.RoomName,
		Qty:       q.Nights,
		UnitPrice: in.PricePerNight,
		LineTotal: q.LodgingTotal,
	})

	for _, s := range in.Services {
		q.ServicesTotal += s.Price
		q.Lines = append(q.Lines, models.QuoteLine{
			Kind:      "service",
			RefID:     s.ID,
			Label:     s.Name,
			Qty:       1,
			UnitPrice: s.Price,
			LineTotal: s.Price,
		})
	}

	q.Total = q.LodgingTotal + q.ServicesTotal
	return q
}

// Total is shorthand for Quote(in).Total
func Total(in QuoteInput) int64 {
	return Quote(in).Total
}
