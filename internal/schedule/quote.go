package schedule

import (
	"math"

	"github.com/bookline/booking-api/internal/model"
)

// TaxRate is the fixed display surcharge applied to public booking carts.
const TaxRate = 0.10

// DefaultDurationMinutes is assumed when a cart has no services yet, so
// slot listings stay meaningful while the client is still choosing.
const DefaultDurationMinutes = 60

// Quote is the cart summary for one public booking submission.
type Quote struct {
	SubtotalPence   int64 `json:"subtotal_pence"`
	TaxPence        int64 `json:"tax_pence"`
	TotalPence      int64 `json:"total_pence"`
	DurationMinutes int   `json:"duration_minutes"`
}

// QuoteCart sums prices and durations over the selected services. Tax is
// round(subtotal * 0.10), half away from zero.
func QuoteCart(services []*model.Service) Quote {
	var q Quote
	for _, svc := range services {
		if svc == nil {
			continue
		}
		q.SubtotalPence += svc.PricePence
		q.DurationMinutes += svc.DurationMinutes
	}
	if q.DurationMinutes == 0 {
		q.DurationMinutes = DefaultDurationMinutes
	}
	q.TaxPence = int64(math.Round(float64(q.SubtotalPence) * TaxRate))
	q.TotalPence = q.SubtotalPence + q.TaxPence
	return q
}
