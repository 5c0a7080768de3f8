package reliability

import "sort"

// CodeStats summarizes failures grouped by failure code.
type CodeStats struct {
	FailureCodeID      string
	FailureCode        string
	FailureCount       int
	TotalDowntimeHours float64
	TotalCost          float64
}

// EquipmentStats summarizes failures grouped by equipment, including the
// most frequent failure code for that unit.
type EquipmentStats struct {
	EquipmentID        string
	EquipmentName      string
	FailureCount       int
	TotalDowntimeHours float64
	TotalCost          float64
	TopFailureCode     string
}

// GroupByFailureCode reduces events per failure code. Output is sorted by
// code id so repeated runs emit identical order.
func GroupByFailureCode(events []FailureEvent) []CodeStats {
	byCode := make(map[string]*CodeStats)
	for _, event := range events {
		entry, ok := byCode[event.FailureCodeID]
		if !ok {
			entry = &CodeStats{
				FailureCodeID: event.FailureCodeID,
				FailureCode:   event.FailureCode,
			}
			byCode[event.FailureCodeID] = entry
		}
		entry.FailureCount++
		entry.TotalDowntimeHours += event.DowntimeHours
		entry.TotalCost += event.PartsCost + event.LaborCost
	}

	out := make([]CodeStats, 0, len(byCode))
	for _, entry := range byCode {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FailureCodeID < out[j].FailureCodeID })
	return out
}

// GroupByEquipment reduces events per equipment unit. The top failure code
// is the most frequent one; ties keep the first code encountered in input
// order.
func GroupByEquipment(events []FailureEvent) []EquipmentStats {
	type unitAcc struct {
		stats      EquipmentStats
		codeCounts map[string]int
		codeOrder  []string
	}

	byUnit := make(map[string]*unitAcc)
	for _, event := range events {
		acc, ok := byUnit[event.EquipmentID]
		if !ok {
			acc = &unitAcc{
				stats: EquipmentStats{
					EquipmentID:   event.EquipmentID,
					EquipmentName: event.EquipmentName,
				},
				codeCounts: make(map[string]int),
			}
			byUnit[event.EquipmentID] = acc
		}
		acc.stats.FailureCount++
		acc.stats.TotalDowntimeHours += event.DowntimeHours
		acc.stats.TotalCost += event.PartsCost + event.LaborCost

		if _, seen := acc.codeCounts[event.FailureCode]; !seen {
			acc.codeOrder = append(acc.codeOrder, event.FailureCode)
		}
		acc.codeCounts[event.FailureCode]++
	}

	out := make([]EquipmentStats, 0, len(byUnit))
	for _, acc := range byUnit {
		best := ""
		bestCount := 0
		for _, code := range acc.codeOrder {
			if acc.codeCounts[code] > bestCount {
				best = code
				bestCount = acc.codeCounts[code]
			}
		}
		acc.stats.TopFailureCode = best
		out = append(out, acc.stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EquipmentID < out[j].EquipmentID })
	return out
}

// FleetOverview is the fleet-wide roll-up with ranking extension points.
type FleetOverview struct {
	EquipmentCount     int
	TotalFailures      int
	TotalDowntimeHours float64
	TotalCost          float64
	TopPerformers      []EquipmentMetrics
	NeedsAttention     []EquipmentMetrics
}

// RankingStrategy selects top-performer and needs-attention units from
// per-equipment metrics. The aggregator stays ranking-agnostic.
type RankingStrategy interface {
	Rank(units []EquipmentMetrics) (topPerformers, needsAttention []EquipmentMetrics)
}

// AvailabilityRanking ranks by availability, descending for top performers
// and ascending for needs-attention, tie-broken by equipment id.
type AvailabilityRanking struct {
	Limit int
}

func (r AvailabilityRanking) Rank(units []EquipmentMetrics) ([]EquipmentMetrics, []EquipmentMetrics) {
	limit := r.Limit
	if limit <= 0 {
		limit = 5
	}

	sorted := make([]EquipmentMetrics, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].AvailabilityPct != sorted[j].AvailabilityPct {
			return sorted[i].AvailabilityPct > sorted[j].AvailabilityPct
		}
		return sorted[i].EquipmentID < sorted[j].EquipmentID
	})

	if limit > len(sorted) {
		limit = len(sorted)
	}

	top := make([]EquipmentMetrics, limit)
	copy(top, sorted[:limit])

	worst := make([]EquipmentMetrics, limit)
	for i := 0; i < limit; i++ {
		worst[i] = sorted[len(sorted)-1-i]
	}
	return top, worst
}

// BuildFleetOverview combines the fleet roll-up with a ranking strategy over
// per-equipment metrics.
func BuildFleetOverview(events []FailureEvent, policy OperatingHoursPolicy, strategy RankingStrategy) *FleetOverview {
	if len(events) == 0 {
		return nil
	}

	byUnit := make(map[string][]FailureEvent)
	order := make([]string, 0)
	for _, event := range events {
		if _, seen := byUnit[event.EquipmentID]; !seen {
			order = append(order, event.EquipmentID)
		}
		byUnit[event.EquipmentID] = append(byUnit[event.EquipmentID], event)
	}
	sort.Strings(order)

	overview := &FleetOverview{
		EquipmentCount: len(order),
		TotalFailures:  len(events),
	}
	units := make([]EquipmentMetrics, 0, len(order))
	for _, equipmentID := range order {
		metrics := ComputeEquipmentMetrics(byUnit[equipmentID], policy)
		units = append(units, *metrics)
		overview.TotalDowntimeHours += metrics.TotalDowntimeHours
		overview.TotalCost += metrics.TotalCost
	}

	if strategy != nil {
		overview.TopPerformers, overview.NeedsAttention = strategy.Rank(units)
	}
	return overview
}
