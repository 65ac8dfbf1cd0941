package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookline/booking-api/internal/model"
)

func svc(price int64, duration int) *model.Service {
	return &model.Service{PricePence: price, DurationMinutes: duration}
}

func TestQuoteCart(t *testing.T) {
	q := QuoteCart([]*model.Service{svc(1000, 30), svc(2500, 45)})

	assert.Equal(t, int64(3500), q.SubtotalPence)
	assert.Equal(t, int64(350), q.TaxPence)
	assert.Equal(t, int64(3850), q.TotalPence)
	assert.Equal(t, 75, q.DurationMinutes)
}

func TestQuoteCart_EmptyDefaultsDuration(t *testing.T) {
	q := QuoteCart(nil)

	assert.Equal(t, int64(0), q.SubtotalPence)
	assert.Equal(t, int64(0), q.TotalPence)
	assert.Equal(t, DefaultDurationMinutes, q.DurationMinutes)
}

func TestQuoteCart_TaxRounding(t *testing.T) {
	// 10% of 1005 is 100.5, rounded half away from zero to 101.
	q := QuoteCart([]*model.Service{svc(1005, 60)})
	assert.Equal(t, int64(101), q.TaxPence)
	assert.Equal(t, int64(1106), q.TotalPence)
}

func TestQuoteCart_SkipsNil(t *testing.T) {
	q := QuoteCart([]*model.Service{nil, svc(500, 20)})
	assert.Equal(t, int64(500), q.SubtotalPence)
	assert.Equal(t, 20, q.DurationMinutes)
}
