package domain

import "strings"

type HealthStatus string

const (
	HealthUnknown  HealthStatus = ""
	HealthOK       HealthStatus = "ok"
	HealthDegraded HealthStatus = "degraded"
	HealthDown     HealthStatus = "down"
)

var healthAliases = map[string]HealthStatus{
	"ok":        HealthOK,
	"up":        HealthOK,
	"healthy":   HealthOK,
	"degraded":  HealthDegraded,
	"warning":   HealthDegraded,
	"down":      HealthDown,
	"error":     HealthDown,
	"unhealthy": HealthDown,
}

func NormalizeHealth(value string) HealthStatus {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if status, ok := healthAliases[trimmed]; ok {
		return status
	}
	return HealthStatus(trimmed)
}

func (s HealthStatus) rank() int {
	switch s {
	case HealthOK:
		return 0
	case HealthDegraded:
		return 1
	default:
		return 2
	}
}

type ServiceHealth struct {
	Name      string       `json:"name"`
	Status    HealthStatus `json:"status"`
	LatencyMS int          `json:"latency_ms"`
	Detail    string       `json:"detail,omitempty"`
}

type SystemHealth struct {
	Status        HealthStatus    `json:"status"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	Services      []ServiceHealth `json:"services"`
}

// Overall returns the reported status, or the worst service status when the
// backend left it blank.
func (h SystemHealth) Overall() HealthStatus {
	if h.Status != HealthUnknown {
		return h.Status
	}
	if len(h.Services) == 0 {
		return HealthUnknown
	}
	worst := HealthOK
	for _, svc := range h.Services {
		if svc.Status.rank() > worst.rank() {
			worst = svc.Status
		}
	}
	return worst
}

// Failing lists the services not reporting ok.
func (h SystemHealth) Failing() []ServiceHealth {
	var out []ServiceHealth
	for _, svc := range h.Services {
		if svc.Status != HealthOK {
			out = append(out, svc)
		}
	}
	return out
}
