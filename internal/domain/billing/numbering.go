package billing

// NextNumber returns the next sequence number given the numbers already
// allocated within a document class: max + 1, or 1 when the class is empty.
// Proforma, final and receipt sequences are independent, so callers must
// pass only the numbers of one class.
func NextNumber(existing []int64) int64 {
	var max int64
	for _, n := range existing {
		if n > max {
			max = n
		}
	}
	return max + 1
}
