package models

import "time"

// Counter names recorded by the analytics service.
const (
	MetricChatCategory   = "chat_category"
	MetricChatSeverity   = "chat_severity"
	MetricChatSource     = "chat_source"
	MetricCrisisDetected = "crisis_detected"
	MetricScreeningRisk  = "screening_risk"
	MetricImmediateHelp  = "screening_immediate_help"
)

// Counter is one aggregate tally. No message text or user id is kept.
type Counter struct {
	Metric    string    `bson:"metric" json:"metric"`
	Key       string    `bson:"key" json:"key"`
	Count     int64     `bson:"count" json:"count"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AnalyticsSnapshot groups counters by metric then key.
type AnalyticsSnapshot struct {
	GeneratedAt time.Time                   `json:"generated_at"`
	Metrics     map[string]map[string]int64 `json:"metrics"`
}
