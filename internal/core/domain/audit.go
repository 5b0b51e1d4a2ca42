package domain

import "time"

// AuditEvent records a permitted mutation on the resource collection.
type AuditEvent struct {
	ActorID    string    `json:"actor_id" bson:"actor_id"`
	Actor      string    `json:"actor" bson:"actor"`
	Role       Role      `json:"role" bson:"role"`
	Action     string    `json:"action" bson:"action"`
	ResourceID string    `json:"resource_id" bson:"resource_id"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
