package domain

import "strings"

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
)

// CustomTopic returns the canonical "<entity>.<action>" topic.
func CustomTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

// SplitTopic is the inverse of CustomTopic. Dotted Kafka topic names such as
// "mesaya.tables.updated" keep only their last two segments.
func SplitTopic(topic string) (entity, action string) {
	parts := strings.Split(strings.TrimSpace(topic), ".")
	if len(parts) >= 2 {
		entity = strings.TrimSpace(parts[len(parts)-2])
		action = strings.TrimSpace(parts[len(parts)-1])
		if entity != "" && action != "" {
			return entity, action
		}
	}
	last := strings.TrimSpace(parts[len(parts)-1])
	return last, ""
}
