package infrastructure

import (
	"strings"
	"testing"
	"time"

	"mesaYaDash/internal/modules/system/domain"
	"mesaYaDash/internal/platform/export"
)

func TestActivityCSV(t *testing.T) {
	entries := []domain.ActivityEntry{{
		ID:       "7",
		At:       time.Date(2024, 5, 10, 20, 15, 0, 0, time.UTC),
		Actor:    "ana",
		Entity:   "tables",
		Action:   "status",
		EntityID: "3",
		Detail:   `{"from":"libre","to":"ocupada"}`,
	}}
	body, err := export.CSV(ActivityColumns, entries)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if lines[0] != "id,at,actor,entity,action,entity_id,detail" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	want := `7,2024-05-10T20:15:00Z,ana,tables,status,3,"{""from"":""libre"",""to"":""ocupada""}"`
	if lines[1] != want {
		t.Fatalf("unexpected row:\n got %s\nwant %s", lines[1], want)
	}
}
