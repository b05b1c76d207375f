package engine

import "time"

// CheckAvailability computes, for each fleet entry, how many units remain
// free across the inclusive [start, end] window given the confirmed
// reservations. Results come back in fleet order. This is a capacity count,
// not a unit assignment: each overlapping reservation consumes one unit and
// the engine never decides which physical unit serves which booking.
func CheckAvailability(start, end time.Time, fleet []InventoryEntry, reservations []ReservationWindow) ([]AvailabilityResult, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	results := make([]AvailabilityResult, 0, len(fleet))
	for _, entry := range fleet {
		overlaps := 0
		var latestEnd time.Time
		for _, r := range reservations {
			if r.VehicleID != entry.VehicleID {
				continue
			}
			if r.End.After(latestEnd) {
				latestEnd = r.End
			}
			if Overlaps(start, end, r.Start, r.End) {
				overlaps++
			}
		}

		free := entry.AvailableCeiling - overlaps
		if free < 0 {
			free = 0
		}

		res := AvailabilityResult{
			VehicleID:      entry.VehicleID,
			Available:      free > 0,
			AvailableUnits: free,
			TotalUnits:     entry.TotalUnits,
		}
		if !res.Available {
			if latestEnd.IsZero() {
				// Only reachable with a zero ceiling; echo the query end
				// rather than invent a date.
				res.NextAvailable = end
			} else {
				res.NextAvailable = latestEnd.AddDate(0, 0, 1)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// Overlaps reports whether the closed date intervals [s1,e1] and [s2,e2]
// intersect. Boundaries count: a reservation ending on the requested start
// date is a conflict, matching same-day turnover risk.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}
