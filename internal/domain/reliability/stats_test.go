package reliability

import "testing"

func TestGroupByFailureCode(t *testing.T) {
	events := []FailureEvent{
		{FailureCodeID: "fc-2", FailureCode: "BRG-WEAR", DowntimeHours: 5, PartsCost: 10},
		{FailureCodeID: "fc-1", FailureCode: "SEAL-LEAK", DowntimeHours: 2, LaborCost: 30},
		{FailureCodeID: "fc-2", FailureCode: "BRG-WEAR", DowntimeHours: 3, LaborCost: 5},
	}

	stats := GroupByFailureCode(events)
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	if stats[0].FailureCodeID != "fc-1" || stats[1].FailureCodeID != "fc-2" {
		t.Fatalf("order = %s, %s, want fc-1, fc-2", stats[0].FailureCodeID, stats[1].FailureCodeID)
	}
	if stats[1].FailureCount != 2 || stats[1].TotalDowntimeHours != 8 || stats[1].TotalCost != 15 {
		t.Fatalf("fc-2 stats = %+v", stats[1])
	}
}

func TestGroupByEquipmentTopCodeStableTie(t *testing.T) {
	events := []FailureEvent{
		{EquipmentID: "E1", FailureCode: "SEAL-LEAK"},
		{EquipmentID: "E1", FailureCode: "BRG-WEAR"},
		{EquipmentID: "E2", FailureCode: "OVERHEAT"},
		{EquipmentID: "E2", FailureCode: "OVERHEAT"},
		{EquipmentID: "E2", FailureCode: "BRG-WEAR"},
	}

	stats := GroupByEquipment(events)
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	// Tie on E1 keeps the first encountered code.
	if stats[0].EquipmentID != "E1" || stats[0].TopFailureCode != "SEAL-LEAK" {
		t.Fatalf("E1 top code = %q, want SEAL-LEAK", stats[0].TopFailureCode)
	}
	if stats[1].TopFailureCode != "OVERHEAT" {
		t.Fatalf("E2 top code = %q, want OVERHEAT", stats[1].TopFailureCode)
	}
}

func TestAvailabilityRanking(t *testing.T) {
	units := []EquipmentMetrics{
		{EquipmentID: "E1", AvailabilityPct: 99.5},
		{EquipmentID: "E2", AvailabilityPct: 80.1},
		{EquipmentID: "E3", AvailabilityPct: 95.0},
	}

	top, worst := AvailabilityRanking{Limit: 2}.Rank(units)
	if len(top) != 2 || top[0].EquipmentID != "E1" || top[1].EquipmentID != "E3" {
		t.Fatalf("top = %+v", top)
	}
	if len(worst) != 2 || worst[0].EquipmentID != "E2" || worst[1].EquipmentID != "E3" {
		t.Fatalf("worst = %+v", worst)
	}
}

func TestBuildFleetOverview(t *testing.T) {
	events := []FailureEvent{
		{EquipmentID: "E1", FailureCode: "BRG-WEAR", DowntimeHours: 10, PartsCost: 50},
		{EquipmentID: "E2", FailureCode: "OVERHEAT", DowntimeHours: 400, LaborCost: 80},
	}

	overview := BuildFleetOverview(events, DefaultOperatingHoursPolicy(), AvailabilityRanking{Limit: 1})
	if overview == nil {
		t.Fatal("BuildFleetOverview() = nil")
	}
	if overview.EquipmentCount != 2 || overview.TotalFailures != 2 {
		t.Fatalf("overview counts = %+v", overview)
	}
	if overview.TotalDowntimeHours != 410 || overview.TotalCost != 130 {
		t.Fatalf("overview totals = %+v", overview)
	}
	if len(overview.TopPerformers) != 1 || overview.TopPerformers[0].EquipmentID != "E1" {
		t.Fatalf("top performers = %+v", overview.TopPerformers)
	}
	if len(overview.NeedsAttention) != 1 || overview.NeedsAttention[0].EquipmentID != "E2" {
		t.Fatalf("needs attention = %+v", overview.NeedsAttention)
	}
}

func TestBuildFleetOverviewNoData(t *testing.T) {
	if got := BuildFleetOverview(nil, DefaultOperatingHoursPolicy(), nil); got != nil {
		t.Fatalf("BuildFleetOverview(nil) = %+v, want nil", got)
	}
}
