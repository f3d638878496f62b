package models

import (
	"reflect"
	"testing"
)

func TestCrateCountsAsMapCoversAllFields(t *testing.T) {
	counts := CrateCounts{
		Amul_taaza:       1,
		Amul_gold:        2,
		Amul_buffalo:     3,
		Gokul_cow:        4,
		Gokul_buffalo:    5,
		Gokul_full_cream: 6,
		Mahananda:        7,
	}
	m := counts.AsMap()
	if len(m) != len(CrateFields) {
		t.Fatalf("AsMap has %d entries, want %d", len(m), len(CrateFields))
	}
	for _, field := range CrateFields {
		if _, ok := m[field]; !ok {
			t.Errorf("AsMap missing field %s", field)
		}
	}
	if counts.Total() != 28 {
		t.Errorf("Total = %d, want 28", counts.Total())
	}
}

func TestLowStock(t *testing.T) {
	counts := CrateCounts{
		Amul_taaza:       60,
		Amul_gold:        49,
		Amul_buffalo:     50,
		Gokul_cow:        0,
		Gokul_buffalo:    120,
		Gokul_full_cream: 12,
		Mahananda:        51,
	}

	got := counts.LowStock(50)
	want := []string{"amul_gold", "gokul_cow", "gokul_full_cream"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LowStock(50) = %v, want %v", got, want)
	}
}

func TestLowStockAllStocked(t *testing.T) {
	counts := CrateCounts{
		Amul_taaza:       100,
		Amul_gold:        100,
		Amul_buffalo:     100,
		Gokul_cow:        100,
		Gokul_buffalo:    100,
		Gokul_full_cream: 100,
		Mahananda:        100,
	}
	if got := counts.LowStock(50); got != nil {
		t.Errorf("LowStock = %v, want nil", got)
	}
	// A higher cutoff flags everything.
	if got := counts.LowStock(101); len(got) != len(CrateFields) {
		t.Errorf("LowStock(101) flagged %d fields, want %d", len(got), len(CrateFields))
	}
}
