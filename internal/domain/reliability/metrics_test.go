package reliability

import (
	"math"
	"testing"
)

func TestComputeEquipmentMetricsTwoFailures(t *testing.T) {
	events := []FailureEvent{
		{EquipmentID: "E1", EquipmentName: "Press 1", DowntimeHours: 10, RepairHours: 4, PartsCost: 100, LaborCost: 50},
		{EquipmentID: "E1", EquipmentName: "Press 1", DowntimeHours: 20, RepairHours: 6, PartsCost: 200, LaborCost: 25},
	}

	got := ComputeEquipmentMetrics(events, DefaultOperatingHoursPolicy())
	if got == nil {
		t.Fatal("ComputeEquipmentMetrics() = nil")
	}
	if got.MTBFHours != 4380 {
		t.Fatalf("MTBFHours = %v, want 4380", got.MTBFHours)
	}
	if got.MTBFDays != 183 {
		t.Fatalf("MTBFDays = %v, want 183", got.MTBFDays)
	}
	if got.MTTRHours != 5 {
		t.Fatalf("MTTRHours = %v, want 5", got.MTTRHours)
	}
	if got.AvailabilityPct != 99.7 {
		t.Fatalf("AvailabilityPct = %v, want 99.7", got.AvailabilityPct)
	}
	if got.TotalCost != 375 {
		t.Fatalf("TotalCost = %v, want 375", got.TotalCost)
	}
}

func TestComputeEquipmentMetricsNoData(t *testing.T) {
	if got := ComputeEquipmentMetrics(nil, DefaultOperatingHoursPolicy()); got != nil {
		t.Fatalf("ComputeEquipmentMetrics(nil) = %+v, want nil", got)
	}
}

func TestMTTRTimesCountMatchesRepairTotal(t *testing.T) {
	events := []FailureEvent{
		{EquipmentID: "E1", RepairHours: 3.3},
		{EquipmentID: "E1", RepairHours: 1.9},
		{EquipmentID: "E1", RepairHours: 7.4},
	}

	got := ComputeEquipmentMetrics(events, DefaultOperatingHoursPolicy())
	product := got.MTTRHours * float64(got.FailureCount)
	if math.Abs(product-got.TotalRepairHours) > 0.31 {
		t.Fatalf("mttr*count = %v, repair total = %v", product, got.TotalRepairHours)
	}
}

func TestNegativeAvailabilityIsPreserved(t *testing.T) {
	events := []FailureEvent{
		{EquipmentID: "E1", DowntimeHours: 9000},
	}

	got := ComputeEquipmentMetrics(events, DefaultOperatingHoursPolicy())
	if got.AvailabilityPct >= 0 {
		t.Fatalf("AvailabilityPct = %v, want negative", got.AvailabilityPct)
	}
}

func TestComputeFleetMetricsPoolsTotals(t *testing.T) {
	events := []FailureEvent{
		{EquipmentID: "E1", DowntimeHours: 10, RepairHours: 2},
		{EquipmentID: "E1", DowntimeHours: 30, RepairHours: 4},
		{EquipmentID: "E2", DowntimeHours: 2000, RepairHours: 6},
	}

	got := ComputeFleetMetrics(events, DefaultOperatingHoursPolicy())
	if got == nil {
		t.Fatal("ComputeFleetMetrics() = nil")
	}
	if got.EquipmentCount != 2 || got.TotalFailures != 3 {
		t.Fatalf("counts = %d/%d, want 2/3", got.EquipmentCount, got.TotalFailures)
	}

	// Pooled downtime per unit: 2040/2 = 1020 hours.
	wantAvail := math.Round((8760-1020)/8760*100*10) / 10
	if got.AvgAvailabilityPct != wantAvail {
		t.Fatalf("AvgAvailabilityPct = %v, want %v", got.AvgAvailabilityPct, wantAvail)
	}

	// avgMTBF divides by pooled failure rate (3 failures / 2 units).
	if got.AvgMTBFHours != math.Round(8760/1.5) {
		t.Fatalf("AvgMTBFHours = %v, want %v", got.AvgMTBFHours, math.Round(8760/1.5))
	}

	// The pooled figure differs from the mean of per-unit availabilities.
	e1 := ComputeEquipmentMetrics(events[:2], DefaultOperatingHoursPolicy())
	e2 := ComputeEquipmentMetrics(events[2:], DefaultOperatingHoursPolicy())
	mean := (e1.AvailabilityPct + e2.AvailabilityPct) / 2
	if got.AvgAvailabilityPct == mean {
		t.Fatalf("AvgAvailabilityPct = %v equals per-unit mean, want pooled recompute", mean)
	}
}

func TestComputeFleetMetricsNoData(t *testing.T) {
	if got := ComputeFleetMetrics(nil, DefaultOperatingHoursPolicy()); got != nil {
		t.Fatalf("ComputeFleetMetrics(nil) = %+v, want nil", got)
	}
}
