package fees

import "math"

// OpenInvoice is an invoice with money still owing, ordered oldest-first
// by the caller.
type OpenInvoice struct {
	ID          string
	Outstanding float64
}

// Allocation assigns part of a payment to one invoice.
type Allocation struct {
	InvoiceID string
	Amount    float64
}

// AllocatePayment spreads amount over the open invoices in the order
// given. Each invoice is filled before the next one receives anything.
// Any remainder after the last invoice is returned as credit.
func AllocatePayment(amount float64, open []OpenInvoice) ([]Allocation, float64) {
	var allocations []Allocation
	remaining := round2(amount)
	for _, inv := range open {
		if remaining <= 0 {
			break
		}
		due := round2(inv.Outstanding)
		if due <= 0 {
			continue
		}
		alloc := math.Min(remaining, due)
		allocations = append(allocations, Allocation{InvoiceID: inv.ID, Amount: alloc})
		remaining = round2(remaining - alloc)
	}
	return allocations, remaining
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
