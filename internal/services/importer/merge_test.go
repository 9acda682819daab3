package importer

import "testing"

func rec(date, name, group string, price, qty, amount float64) Record {
	return Record{Date: date, ServiceName: name, Group: group, Price: price, Quantity: qty, Amount: amount}
}

func TestMergeRecords_distinctKeysPassThrough(t *testing.T) {
	in := []Record{
		rec("15.01.2024", "Vesti", "prepaid", 50, 10, 500),
		rec("16.01.2024", "Vesti", "prepaid", 50, 5, 250),
		rec("15.01.2024", "Kviz", "prepaid", 100, 2, 200),
	}
	out := mergeRecords(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	// insertion order preserved
	if out[0].ServiceName != "Vesti" || out[0].Date != "15.01.2024" {
		t.Fatalf("order not preserved: %+v", out[0])
	}
	if out[2].ServiceName != "Kviz" {
		t.Fatalf("order not preserved: %+v", out[2])
	}
}

func TestMergeRecords_refundAgainstCharge(t *testing.T) {
	in := []Record{
		rec("15.01.2024", "Vesti", "prepaid", 50, 10, 500),
		rec("15.01.2024", "Vesti", "prepaid", -50, 3, -150),
	}
	out := mergeRecords(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	r := out[0]
	if r.Quantity != 7 || r.Amount != 350 || r.Price != 50 {
		t.Fatalf("unexpected merge result: %+v", r)
	}
}

func TestMergeRecords_refundFlipsExhaustedCharge(t *testing.T) {
	in := []Record{
		rec("15.01.2024", "Vesti", "prepaid", 50, 3, 150),
		rec("15.01.2024", "Vesti", "prepaid", -50, 5, -250),
	}
	out := mergeRecords(in)
	r := out[0]
	// charge exhausted: position flips to the refund price, quantity sign
	// follows the netted amount
	if r.Price != -50 {
		t.Fatalf("expected flipped price -50, got %v", r.Price)
	}
	if r.Amount != -100 {
		t.Fatalf("expected netted amount -100, got %v", r.Amount)
	}
	if r.Quantity != -5 {
		t.Fatalf("expected quantity -5 after sign fix, got %v", r.Quantity)
	}
}

func TestMergeRecords_bothNegative(t *testing.T) {
	in := []Record{
		rec("15.01.2024", "Vesti", "prepaid", -50, -2, -100),
		rec("15.01.2024", "Vesti", "prepaid", -50, -3, -150),
	}
	out := mergeRecords(in)
	r := out[0]
	if r.Quantity != -5 || r.Amount != -250 {
		t.Fatalf("unexpected merge result: %+v", r)
	}
}

func TestMergeRecords_chargeAgainstRefund(t *testing.T) {
	in := []Record{
		rec("15.01.2024", "Vesti", "prepaid", -50, 5, -250),
		rec("15.01.2024", "Vesti", "prepaid", 50, 2, 100),
	}
	out := mergeRecords(in)
	r := out[0]
	if r.Quantity != -3 || r.Amount != -150 || r.Price != -50 {
		t.Fatalf("unexpected merge result: %+v", r)
	}
}

func TestMergeRecords_bothPositiveSums(t *testing.T) {
	in := []Record{
		rec("15.01.2024", "Vesti", "prepaid", 50, 4, 200),
		rec("15.01.2024", "Vesti", "prepaid", 50, 6, 300),
	}
	out := mergeRecords(in)
	r := out[0]
	if r.Quantity != 10 || r.Amount != 500 {
		t.Fatalf("unexpected merge result: %+v", r)
	}
}

func TestMergeRecords_zeroQuantitySeed(t *testing.T) {
	out := mergeRecords([]Record{rec("15.01.2024", "Vesti", "prepaid", 50, 0, 500)})
	if out[0].Quantity != 1 {
		t.Fatalf("expected seeded quantity 1, got %v", out[0].Quantity)
	}
	out = mergeRecords([]Record{rec("15.01.2024", "Vesti", "prepaid", -50, 0, -500)})
	if out[0].Quantity != -1 {
		t.Fatalf("expected seeded quantity -1, got %v", out[0].Quantity)
	}
}

func TestMergeRecords_groupsStaySeparate(t *testing.T) {
	in := []Record{
		rec("15.01.2024", "Vesti", "prepaid", 50, 10, 500),
		rec("15.01.2024", "Vesti", "postpaid", 50, 4, 200),
	}
	if out := mergeRecords(in); len(out) != 2 {
		t.Fatalf("expected keys to include group, got %d records", len(out))
	}
}
