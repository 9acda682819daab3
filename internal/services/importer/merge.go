package importer

import "math"

// mergeRecords collapses duplicate (date, service, group) tuples into one
// reconciled record each. Operators issue refunds as a second tuple with a
// negative price; the rules below net refunds against the original charge
// and flip the sign of the whole position once charges are exhausted.
// Output order follows first appearance in the input.
func mergeRecords(records []Record) []Record {
	merged := make(map[string]*Record, len(records))
	var keys []string

	for _, record := range records {
		key := record.Date + "_" + record.ServiceName + "_" + record.Group

		existing, ok := merged[key]
		if !ok {
			r := record
			// zero quantity with a real amount still counts as one unit
			if r.Quantity == 0 && r.Amount != 0 {
				if r.Amount > 0 {
					r.Quantity = 1
				} else {
					r.Quantity = -1
				}
			}
			merged[key] = &r
			keys = append(keys, key)
			continue
		}

		switch {
		case existing.Price > 0 && record.Price < 0:
			// refund against an open charge
			existing.Quantity = math.Max(0, existing.Quantity-math.Abs(record.Quantity))
			existing.Amount += record.Amount
			if existing.Quantity == 0 && existing.Amount < 0 {
				// charges exhausted, position flips negative
				existing.Price = record.Price
				existing.Quantity = math.Abs(record.Quantity)
			}

		case existing.Price < 0 && record.Price < 0:
			existing.Quantity += record.Quantity
			existing.Amount += record.Amount

		case existing.Price < 0 && record.Price > 0:
			// charge against an open refund position
			existing.Quantity = math.Max(0, math.Abs(existing.Quantity)-record.Quantity)
			existing.Amount += record.Amount
			if existing.Quantity == 0 && existing.Amount > 0 {
				existing.Price = record.Price
				existing.Quantity = record.Quantity
			}

		default:
			existing.Quantity += record.Quantity
			existing.Amount += record.Amount
		}
	}

	out := make([]Record, 0, len(keys))
	for _, key := range keys {
		r := merged[key]
		// keep quantity sign consistent with the netted amount
		if r.Amount < 0 && r.Quantity > 0 {
			r.Quantity = -r.Quantity
		} else if r.Amount > 0 && r.Quantity < 0 {
			r.Quantity = math.Abs(r.Quantity)
		}
		out = append(out, *r)
	}
	return out
}
