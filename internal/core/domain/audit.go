package domain

import "time"

// AuditAction names an auditable operation.
type AuditAction string

const (
	AuditLogin       AuditAction = "login"
	AuditRegister    AuditAction = "register"
	AuditLogout      AuditAction = "logout"
	AuditRoleGrant   AuditAction = "role_grant"
	AuditRoleRevoke  AuditAction = "role_revoke"
	AuditStatusSet   AuditAction = "status_set"
	AuditKeyIssued   AuditAction = "key_issued"
	AuditKeyDeleted  AuditAction = "key_deleted"
	AuditPostDeleted AuditAction = "post_deleted"
)

// AuditEvent records a single auth or moderation action for the trail.
type AuditEvent struct {
	ID        string      `json:"id"`
	ActorID   string      `json:"actor_id"`
	Actor     string      `json:"actor"`
	Action    AuditAction `json:"action"`
	TargetID  string      `json:"target_id,omitempty"`
	Detail    string      `json:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
