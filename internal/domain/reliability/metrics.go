package reliability

import "math"

// FailureEvent is the metrics engine input: the slice of a failure record
// the pure computations need. Usecases map repository rows into events.
type FailureEvent struct {
	EquipmentID   string
	EquipmentName string
	FailureCodeID string
	FailureCode   string
	FailureDate   string
	DowntimeHours float64
	RepairHours   float64
	PartsCost     float64
	LaborCost     float64
}

// EquipmentMetrics summarizes one equipment unit over the baseline window.
// Availability keeps its sign: downtime above the baseline goes negative on
// purpose, the presentation layer decides whether to clamp.
type EquipmentMetrics struct {
	EquipmentID        string
	EquipmentName      string
	FailureCount       int
	TotalDowntimeHours float64
	TotalRepairHours   float64
	TotalCost          float64
	MTBFHours          float64
	MTBFDays           float64
	MTTRHours          float64
	AvailabilityPct    float64
}

// FleetMetrics pools totals across equipment before applying the formulas.
// It is not an average of per-unit metrics.
type FleetMetrics struct {
	EquipmentCount     int
	TotalFailures      int
	TotalDowntimeHours float64
	TotalRepairHours   float64
	TotalCost          float64
	AvgMTBFHours       float64
	AvgMTTRHours       float64
	AvgAvailabilityPct float64
}

// ComputeEquipmentMetrics derives MTBF/MTTR/availability for a single
// equipment scope. Returns nil when there is no data: callers must tell
// "no records" apart from "zero failures over the baseline".
func ComputeEquipmentMetrics(events []FailureEvent, policy OperatingHoursPolicy) *EquipmentMetrics {
	return computeEquipmentWindow(events, policy.HoursPerYear)
}

func computeEquipmentWindow(events []FailureEvent, baselineHours float64) *EquipmentMetrics {
	if len(events) == 0 {
		return nil
	}

	out := &EquipmentMetrics{
		EquipmentID:   events[0].EquipmentID,
		EquipmentName: events[0].EquipmentName,
		FailureCount:  len(events),
	}
	for _, event := range events {
		out.TotalDowntimeHours += event.DowntimeHours
		out.TotalRepairHours += event.RepairHours
		out.TotalCost += event.PartsCost + event.LaborCost
	}

	mtbf := baselineHours
	mttr := 0.0
	if out.FailureCount > 0 {
		mtbf = baselineHours / float64(out.FailureCount)
		mttr = out.TotalRepairHours / float64(out.FailureCount)
	}

	out.MTBFHours = math.Round(mtbf)
	out.MTBFDays = math.Round(mtbf / 24)
	out.MTTRHours = round1(mttr)
	out.AvailabilityPct = round1((baselineHours - out.TotalDowntimeHours) / baselineHours * 100)
	return out
}

// ComputeFleetMetrics groups events by equipment, pools downtime/repair/cost
// totals, and derives fleet averages from the pooled figures.
func ComputeFleetMetrics(events []FailureEvent, policy OperatingHoursPolicy) *FleetMetrics {
	if len(events) == 0 {
		return nil
	}

	units := make(map[string]struct{}, len(events))
	out := &FleetMetrics{TotalFailures: len(events)}
	for _, event := range events {
		units[event.EquipmentID] = struct{}{}
		out.TotalDowntimeHours += event.DowntimeHours
		out.TotalRepairHours += event.RepairHours
		out.TotalCost += event.PartsCost + event.LaborCost
	}
	out.EquipmentCount = len(units)

	failuresPerUnit := float64(out.TotalFailures) / float64(out.EquipmentCount)
	downtimePerUnit := out.TotalDowntimeHours / float64(out.EquipmentCount)

	out.AvgMTBFHours = math.Round(policy.HoursPerYear / failuresPerUnit)
	out.AvgMTTRHours = round1(out.TotalRepairHours / float64(out.TotalFailures))
	out.AvgAvailabilityPct = round1((policy.HoursPerYear - downtimePerUnit) / policy.HoursPerYear * 100)
	return out
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
