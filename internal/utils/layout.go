package utils

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// DetailBuilder lays out labeled rows under optional section headings.
type DetailBuilder struct {
	b            strings.Builder
	labelStyle   lipgloss.Style
	sectionStyle lipgloss.Style
}

// NewDetailBuilder creates a builder with a fixed-width label column.
func NewDetailBuilder(labelWidth int, labelStyle, sectionStyle lipgloss.Style) *DetailBuilder {
	return &DetailBuilder{
		labelStyle:   labelStyle.Width(labelWidth),
		sectionStyle: sectionStyle,
	}
}

func (d *DetailBuilder) Row(label, value string) {
	fmt.Fprintf(&d.b, "  %s %s\n", d.labelStyle.Render(label), value)
}

// Section writes a heading like "── title ──────...".
func (d *DetailBuilder) Section(title string) {
	pad := max(36-len(title), 4)
	heading := fmt.Sprintf("── %s %s", title, strings.Repeat("─", pad))
	d.b.WriteString(d.sectionStyle.Render(heading) + "\n")
}

func (d *DetailBuilder) Blank() {
	d.b.WriteString("\n")
}

func (d *DetailBuilder) String() string {
	return d.b.String()
}
