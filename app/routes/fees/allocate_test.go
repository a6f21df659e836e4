package fees

import "testing"

func TestAllocatePaymentOldestFirst(t *testing.T) {
	open := []OpenInvoice{
		{ID: "inv-1", Outstanding: 50000},
		{ID: "inv-2", Outstanding: 30000},
		{ID: "inv-3", Outstanding: 20000},
	}

	allocations, credit := AllocatePayment(60000, open)

	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}
	if allocations[0].InvoiceID != "inv-1" || allocations[0].Amount != 50000 {
		t.Errorf("first allocation = %+v, want inv-1 for 50000", allocations[0])
	}
	if allocations[1].InvoiceID != "inv-2" || allocations[1].Amount != 10000 {
		t.Errorf("second allocation = %+v, want inv-2 for 10000", allocations[1])
	}
	if credit != 0 {
		t.Errorf("credit = %v, want 0", credit)
	}
}

func TestAllocatePaymentOverpayment(t *testing.T) {
	open := []OpenInvoice{{ID: "inv-1", Outstanding: 25000}}

	allocations, credit := AllocatePayment(40000, open)

	if len(allocations) != 1 || allocations[0].Amount != 25000 {
		t.Fatalf("allocations = %+v, want single full allocation", allocations)
	}
	if credit != 15000 {
		t.Errorf("credit = %v, want 15000", credit)
	}
}

func TestAllocatePaymentNoOpenInvoices(t *testing.T) {
	allocations, credit := AllocatePayment(10000, nil)
	if len(allocations) != 0 {
		t.Errorf("expected no allocations, got %+v", allocations)
	}
	if credit != 10000 {
		t.Errorf("credit = %v, want full amount back", credit)
	}
}

func TestAllocatePaymentSkipsSettledInvoices(t *testing.T) {
	open := []OpenInvoice{
		{ID: "inv-1", Outstanding: 0},
		{ID: "inv-2", Outstanding: 5000},
	}

	allocations, _ := AllocatePayment(5000, open)
	if len(allocations) != 1 || allocations[0].InvoiceID != "inv-2" {
		t.Fatalf("allocations = %+v, want only inv-2", allocations)
	}
}

func TestAllocatePaymentRounding(t *testing.T) {
	open := []OpenInvoice{
		{ID: "inv-1", Outstanding: 10.10},
		{ID: "inv-2", Outstanding: 20.20},
	}

	allocations, credit := AllocatePayment(30.30, open)
	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}
	if allocations[1].Amount != 20.20 {
		t.Errorf("second allocation = %v, want 20.20", allocations[1].Amount)
	}
	if credit != 0 {
		t.Errorf("credit = %v, want 0", credit)
	}
}
