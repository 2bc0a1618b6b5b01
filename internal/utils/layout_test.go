package utils

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestDetailBuilder_Row(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style, style)
	db.Row("Public IP", "203.0.113.10")

	got := db.String()
	if !strings.Contains(got, "Public IP") {
		t.Error("Row should contain label")
	}
	if !strings.Contains(got, "203.0.113.10") {
		t.Error("Row should contain value")
	}
}

func TestDetailBuilder_Section(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style, style)
	db.Section("Ingress")

	got := db.String()
	if !strings.Contains(got, "── Ingress") {
		t.Error("Section should contain heading")
	}
	if !strings.Contains(got, "───") {
		t.Error("Section should contain padding dashes")
	}
}

func TestDetailBuilder_Combined(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style, style)
	db.Section("Instance")
	db.Row("State", "running")
	db.Blank()
	db.Section("Ingress")
	db.Row("Allowed IP", "9.9.9.9")

	got := db.String()
	for _, want := range []string{"Instance", "running", "\n\n", "Ingress", "9.9.9.9"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
