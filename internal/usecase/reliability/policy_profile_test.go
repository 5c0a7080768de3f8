package reliability

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reliability.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestApplyProfileOverridesPolicy(t *testing.T) {
	svc, _ := setupService(t)

	path := writeProfile(t, `
[operating_hours]
hours_per_year = 4380.0
hours_per_month = 365.0

[ranking]
limit = 3
`)
	if err := svc.ApplyProfile(path); err != nil {
		t.Fatalf("apply profile: %v", err)
	}

	policy := svc.Policy()
	if policy.HoursPerYear != 4380 || policy.HoursPerMonth != 365 {
		t.Fatalf("unexpected policy: %+v", policy)
	}
}

func TestApplyProfileDefaultsWhenSectionsOmitted(t *testing.T) {
	svc, _ := setupService(t)

	path := writeProfile(t, "")
	if err := svc.ApplyProfile(path); err != nil {
		t.Fatalf("apply profile: %v", err)
	}

	policy := svc.Policy()
	if policy.HoursPerYear != 8760 || policy.HoursPerMonth != 730 {
		t.Fatalf("expected default policy, got %+v", policy)
	}
}

func TestApplyProfileMissingFile(t *testing.T) {
	svc, _ := setupService(t)
	if err := svc.ApplyProfile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing profile file")
	}
}

func TestApplyProfileMalformedToml(t *testing.T) {
	svc, _ := setupService(t)
	path := writeProfile(t, "[operating_hours\nhours_per_year = not a number")
	if err := svc.ApplyProfile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
