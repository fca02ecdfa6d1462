package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func testColumns() []Column {
	return []Column{
		{Title: "#", Width: 4, Align: lipgloss.Right},
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 10},
	}
}

func testRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{string(rune('1' + i)), "Patient", "Normal"}
	}
	return rows
}

func TestTable_Navigation(t *testing.T) {
	tbl := NewTable(testColumns())
	tbl.SetRows(testRows(5))
	tbl.SetVisibleRows(3)

	if tbl.Selected() != 0 {
		t.Fatalf("initial selection = %d, want 0", tbl.Selected())
	}

	tbl.MoveUp()
	if tbl.Selected() != 0 {
		t.Errorf("MoveUp at top moved selection to %d", tbl.Selected())
	}

	for i := 0; i < 10; i++ {
		tbl.MoveDown()
	}
	if tbl.Selected() != 4 {
		t.Errorf("MoveDown past end = %d, want 4", tbl.Selected())
	}

	tbl.GoToTop()
	if tbl.Selected() != 0 {
		t.Errorf("GoToTop = %d, want 0", tbl.Selected())
	}

	tbl.GoToBottom()
	if tbl.Selected() != 4 {
		t.Errorf("GoToBottom = %d, want 4", tbl.Selected())
	}

	tbl.PageUp()
	if tbl.Selected() != 1 {
		t.Errorf("PageUp from bottom = %d, want 1", tbl.Selected())
	}

	tbl.PageDown()
	if tbl.Selected() != 4 {
		t.Errorf("PageDown = %d, want 4", tbl.Selected())
	}
}

func TestTable_SetRowsClampsSelection(t *testing.T) {
	tbl := NewTable(testColumns())
	tbl.SetRows(testRows(5))
	tbl.GoToBottom()

	tbl.SetRows(testRows(2))
	if tbl.Selected() != 1 {
		t.Errorf("selection after shrink = %d, want 1", tbl.Selected())
	}

	tbl.SetRows(nil)
	if tbl.Selected() != 0 {
		t.Errorf("selection on empty = %d, want 0", tbl.Selected())
	}
	if !tbl.Empty() {
		t.Error("Empty() = false after SetRows(nil)")
	}
	if tbl.SelectedRow() != nil {
		t.Errorf("SelectedRow() on empty = %v, want nil", tbl.SelectedRow())
	}
}

func TestTable_SelectedRow(t *testing.T) {
	tbl := NewTable(testColumns())
	tbl.SetRows([][]string{
		{"1", "Alice Moreau", "Normal"},
		{"2", "Ben Okafor", "Surgery"},
	})
	tbl.MoveDown()

	row := tbl.SelectedRow()
	if row == nil || row[1] != "Ben Okafor" {
		t.Errorf("SelectedRow() = %v, want Ben Okafor row", row)
	}
}

func TestTable_Render(t *testing.T) {
	tbl := NewTable(testColumns())
	tbl.SetRows([][]string{
		{"1", "Alice Moreau", "Normal"},
		{"2", "A name considerably longer than the column", "Surgery"},
	})

	out := tbl.Render()
	if !strings.Contains(out, "Name") || !strings.Contains(out, "Status") {
		t.Error("render is missing column headers")
	}
	if !strings.Contains(out, "Alice Moreau") {
		t.Error("render is missing row content")
	}
	if !strings.Contains(out, "…") {
		t.Error("overlong cell not truncated with ellipsis")
	}
	if strings.Contains(out, "considerably longer") {
		t.Error("overlong cell rendered in full")
	}
}

func TestTable_RenderScrollIndicator(t *testing.T) {
	tbl := NewTable(testColumns())
	tbl.SetRows(testRows(8))
	tbl.SetVisibleRows(3)

	out := tbl.Render()
	if !strings.Contains(out, "1-3 of 8") {
		t.Errorf("missing scroll indicator in:\n%s", out)
	}

	tbl.GoToBottom()
	out = tbl.Render()
	if !strings.Contains(out, "6-8 of 8") {
		t.Errorf("scroll indicator after GoToBottom wrong in:\n%s", out)
	}
}
