package domain

import (
	"reflect"
	"testing"
)

func TestAffectedGroups(t *testing.T) {
	tests := []struct {
		entity string
		want   []string
	}{
		{entity: "Mesa", want: []string{"tables", "activity"}},
		{entity: "reserva", want: []string{"reservations", "tables", "activity"}},
		{entity: "lista_espera", want: []string{"waitlist", "tables", "activity"}},
		{entity: "activity", want: []string{"activity"}},
		{entity: "health", want: []string{"health"}},
		{entity: "restaurant", want: nil},
		{entity: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			if got := AffectedGroups(tt.entity); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSplitTopic(t *testing.T) {
	tests := []struct {
		topic  string
		entity string
		action string
	}{
		{topic: "tables.updated", entity: "tables", action: "updated"},
		{topic: "mesaya.reservations.created", entity: "reservations", action: "created"},
		{topic: "waitlist", entity: "waitlist"},
		{topic: "", entity: ""},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			entity, action := SplitTopic(tt.topic)
			if entity != tt.entity || action != tt.action {
				t.Fatalf("expected %s/%s, got %s/%s", tt.entity, tt.action, entity, action)
			}
			if tt.action != "" && CustomTopic(entity, action) != tt.entity+"."+tt.action {
				t.Fatalf("round trip failed for %q", tt.topic)
			}
		})
	}
}
