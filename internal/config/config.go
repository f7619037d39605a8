package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"mesaYaDash/internal/shared/normalization"
)

type Config struct {
	Server    ServerConfig
	REST      RESTConfig
	Security  SecurityConfig
	Kafka     KafkaConfig
	Logging   LoggingConfig
	Websocket WebsocketConfig
	Cache     CacheConfig
	Sources   SourcesConfig
	Export    ExportConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Port string
}

type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics maps a canonical entity to the Kafka topics carrying its events.
	Topics map[string][]string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type WebsocketConfig struct {
	AllowedActions []string
	SendBuffer     int
}

type CacheConfig struct {
	StaleTime  time.Duration
	GCInterval time.Duration
	MaxIdle    time.Duration
}

// SourcesConfig picks the backend flavour of screens that exist twice.
type SourcesConfig struct {
	CRM       string
	Messaging string
}

type ExportConfig struct {
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Prefix   string
}

type MetricsConfig struct {
	Namespace string
}

const kafkaTopicPrefix = "KAFKA_TOPICS_"

// Load reads the environment. Call godotenv before it to honour a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: getEnv("PORT", "8080")},
		REST: RESTConfig{
			BaseURL: strings.TrimRight(getEnv("REST_BASE_URL", "http://localhost:3000"), "/"),
			Token:   os.Getenv("REST_TOKEN"),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(normalization.FirstNonEmpty(os.Getenv("KAFKA_BROKERS"), os.Getenv("KAFKA_BROKER"))),
			GroupID: getEnv("KAFKA_GROUP_ID", "mesaya-dashboard"),
			Topics:  kafkaTopics(os.Environ()),
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOG_DIR", "./logs"),
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
		},
		Websocket: WebsocketConfig{
			AllowedActions: splitList(getEnv("WS_ALLOWED_ACTIONS", "created,updated,deleted,status")),
		},
		Sources: SourcesConfig{
			CRM:       getEnv("CRM_SOURCE", "clients"),
			Messaging: getEnv("MESSAGING_SOURCE", "whatsapp"),
		},
		Export: ExportConfig{
			S3Bucket:   os.Getenv("EXPORT_S3_BUCKET"),
			S3Region:   getEnv("EXPORT_S3_REGION", "eu-west-1"),
			S3Endpoint: os.Getenv("EXPORT_S3_ENDPOINT"),
			S3Prefix:   os.Getenv("EXPORT_S3_PREFIX"),
		},
		Metrics: MetricsConfig{Namespace: getEnv("METRICS_NAMESPACE", "mesaya")},
	}

	var err error
	if cfg.REST.Timeout, err = durationEnv("REST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Cache.StaleTime, err = durationEnv("CACHE_STALE_TIME", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Cache.GCInterval, err = durationEnv("CACHE_GC_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.Cache.MaxIdle, err = durationEnv("CACHE_MAX_IDLE", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Websocket.SendBuffer, err = intEnv("WS_SEND_BUFFER", 16); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TopicList flattens Kafka.Topics in a stable order.
func (k KafkaConfig) TopicList() []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, list := range k.Topics {
		for _, topic := range list {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// kafkaTopics collects KAFKA_TOPICS_<ENTITY>=a,b entries. Entity names go
// through the same aliasing as everything else (KAFKA_TOPICS_MESAS -> tables).
func kafkaTopics(environ []string) map[string][]string {
	topics := make(map[string][]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, kafkaTopicPrefix) {
			continue
		}
		entity := normalization.NormalizeEntity(strings.TrimPrefix(key, kafkaTopicPrefix))
		if list := splitList(value); entity != "" && len(list) > 0 {
			topics[entity] = append(topics[entity], list...)
		}
	}
	return topics
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// durationEnv accepts Go durations ("15s") or plain seconds ("15").
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
