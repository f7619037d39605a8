package paging

import "testing"

func TestNormalizeAppliesBounds(t *testing.T) {
	q := PagedQuery{Page: -1, Limit: 1000, SortOrder: " desc ", Filters: map[string]string{" Status ": " confirmada ", "empty": " "}}
	n := q.Normalize()

	if n.Page != 1 {
		t.Fatalf("expected page 1, got %d", n.Page)
	}
	if n.Limit != MaxLimit {
		t.Fatalf("expected limit %d, got %d", MaxLimit, n.Limit)
	}
	if n.SortOrder != "DESC" {
		t.Fatalf("expected DESC, got %s", n.SortOrder)
	}
	if len(n.Filters) != 1 || n.Filters["status"] != "confirmada" {
		t.Fatalf("unexpected filters: %v", n.Filters)
	}
}

func TestCanonicalKeyStableAcrossFilterOrder(t *testing.T) {
	a := PagedQuery{Filters: map[string]string{"date": "2025-10-20", "status": "pendiente"}}
	b := PagedQuery{Filters: map[string]string{"STATUS": "pendiente", "date": "2025-10-20"}}

	if a.CanonicalKey() != b.CanonicalKey() {
		t.Fatalf("expected equal keys:\n%s\n%s", a.CanonicalKey(), b.CanonicalKey())
	}
	expected := "page=1&limit=50&search=&sortBy=&sortOrder=&filters=date=2025-10-20;status=pendiente"
	if got := a.CanonicalKey(); got != expected {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestToURLValuesUsesAliases(t *testing.T) {
	q := PagedQuery{Page: 2, Limit: 10, Search: "garcia"}.WithFilter("Status", "fallido").WithFilter("since", "")
	values := q.ToURLValues(map[string]string{"status": "estado"})

	if values.Get("page") != "2" || values.Get("limit") != "10" {
		t.Fatalf("unexpected paging values: %v", values)
	}
	if values.Get("q") != "garcia" {
		t.Fatalf("expected search term, got %v", values)
	}
	if values.Get("estado") != "fallido" {
		t.Fatalf("expected aliased status filter, got %v", values)
	}
	if values.Has("since") {
		t.Fatalf("blank filters must be dropped: %v", values)
	}
}
