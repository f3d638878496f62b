package controllers

import (
	"testing"

	"go-milk-delivery/models"
)

var testPrices = map[string]float64{
	"amul_taaza":       648,
	"amul_gold":        792,
	"amul_buffalo":     840,
	"gokul_cow":        672,
	"gokul_buffalo":    864,
	"gokul_full_cream": 888,
	"mahananda":        624,
}

func TestComputeOrderTotal(t *testing.T) {
	counts := models.CrateCounts{
		Amul_taaza: 2,
		Gokul_cow:  1,
		Mahananda:  3,
	}

	total, err := computeOrderTotal(counts, testPrices)
	if err != nil {
		t.Fatalf("computeOrderTotal: %v", err)
	}
	want := 2*648.0 + 672.0 + 3*624.0
	if total != want {
		t.Errorf("total = %v, want %v", total, want)
	}
}

func TestComputeOrderTotalEmptyOrder(t *testing.T) {
	total, err := computeOrderTotal(models.CrateCounts{}, testPrices)
	if err != nil {
		t.Fatalf("computeOrderTotal: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
}

func TestComputeOrderTotalUnknownCrate(t *testing.T) {
	counts := models.CrateCounts{Amul_taaza: 1}
	if _, err := computeOrderTotal(counts, map[string]float64{}); err == nil {
		t.Error("missing price list entry was accepted")
	}
}

func TestParseCrateCounts(t *testing.T) {
	form := map[string]string{
		"amulTaaza":      "2",
		"gokulFullCream": "4",
		"mahananda":      "",
	}
	counts, err := parseCrateCounts(func(field string) string { return form[field] })
	if err != nil {
		t.Fatalf("parseCrateCounts: %v", err)
	}
	if counts.Amul_taaza != 2 || counts.Gokul_full_cream != 4 {
		t.Errorf("counts = %+v", counts)
	}
	if counts.Mahananda != 0 {
		t.Errorf("empty field parsed as %d, want 0", counts.Mahananda)
	}
	if counts.Total() != 6 {
		t.Errorf("Total = %d, want 6", counts.Total())
	}
}

func TestParseCrateCountsRejectsBadValues(t *testing.T) {
	for _, bad := range []string{"-1", "two", "1.5"} {
		_, err := parseCrateCounts(func(field string) string {
			if field == "amulGold" {
				return bad
			}
			return ""
		})
		if err == nil {
			t.Errorf("value %q was accepted", bad)
		}
	}
}

func TestParseDeliveryDate(t *testing.T) {
	date, err := parseDeliveryDate("2025-03-14")
	if err != nil {
		t.Fatalf("parseDeliveryDate: %v", err)
	}
	if date.Hour() != 0 || date.Minute() != 0 {
		t.Errorf("date not normalized to midnight: %v", date)
	}
	for _, bad := range []string{"", "14-03-2025", "2025/03/14"} {
		if _, err := parseDeliveryDate(bad); err == nil {
			t.Errorf("date %q was accepted", bad)
		}
	}
}
