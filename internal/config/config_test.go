package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "REST_BASE_URL", "REST_TIMEOUT", "KAFKA_BROKERS", "KAFKA_BROKER", "CACHE_STALE_TIME", "CRM_SOURCE", "MESSAGING_SOURCE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.REST.Timeout != 10*time.Second || cfg.Cache.StaleTime != 30*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Sources.CRM != "clients" || cfg.Sources.Messaging != "whatsapp" {
		t.Fatalf("unexpected sources: %+v", cfg.Sources)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("expected no brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REST_BASE_URL", "https://api.mesaya.es/")
	t.Setenv("REST_TIMEOUT", "5")
	t.Setenv("CACHE_STALE_TIME", "1m30s")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.REST.BaseURL != "https://api.mesaya.es" || cfg.REST.Timeout != 5*time.Second || cfg.Cache.StaleTime != 90*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}

	t.Setenv("REST_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestKafkaTopics(t *testing.T) {
	topics := kafkaTopics([]string{
		"KAFKA_TOPICS_MESAS=mesaya.tables, mesaya.tables.status",
		"KAFKA_TOPICS_RESERVATIONS=mesaya.reservations",
		"KAFKA_TOPICS_EMPTY=",
		"PATH=/usr/bin",
	})
	want := map[string][]string{
		"tables":       {"mesaya.tables", "mesaya.tables.status"},
		"reservations": {"mesaya.reservations"},
	}
	if !reflect.DeepEqual(topics, want) {
		t.Fatalf("expected %v, got %v", want, topics)
	}
	list := KafkaConfig{Topics: want}.TopicList()
	if !reflect.DeepEqual(list, []string{"mesaya.reservations", "mesaya.tables", "mesaya.tables.status"}) {
		t.Fatalf("unexpected list: %v", list)
	}
}
