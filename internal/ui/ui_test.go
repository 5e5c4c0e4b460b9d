package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Preset", Width: 8},
		{Title: "Capacity", Width: 10},
	}
	rows := []table.Row{
		{"2x2", "4"},
		{"3x3", "9"},
	}

	view := NewTable(columns, rows).View()

	assert.Contains(t, view, "Preset")
	assert.Contains(t, view, "Capacity")
	assert.Contains(t, view, "2x2")
	assert.Contains(t, view, "3x3")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 10},
		{Title: "Nodes", Width: 6},
	}

	t.Run("rows", func(t *testing.T) {
		out := RenderSimpleTable(columns, [][]string{{"4x4", "16"}})
		assert.Contains(t, out, "Name")
		assert.Contains(t, out, "4x4")
		assert.Contains(t, out, "16")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, RenderSimpleTable(columns, nil))
	})
}

func TestSuccessAndMuted(t *testing.T) {
	assert.Equal(t, SymbolSuccess+" Created .clustertop.yaml", Success("Created .clustertop.yaml"))
	assert.Equal(t, "hint", Muted("hint"))
}

func TestFailure(t *testing.T) {
	assert.Equal(t, SymbolFail+" boom", Failure("boom"))
}
