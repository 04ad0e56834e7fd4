package domain

import "time"

// Audit actions recorded by the async audit pipeline.
const (
	AuditUserRegistered = "user.registered"
	AuditUserLogin      = "user.login"
	AuditUserLoginFail  = "user.login_failed"
	AuditUserSignout    = "user.signout"
	AuditUserUpdated    = "user.updated"
	AuditUserDeleted    = "user.deleted"
)

// AuditEvent is a single security-relevant occurrence. SubjectID is the
// account the event is about; ActorID is the authenticated account that
// caused it (empty for anonymous flows such as failed logins).
type AuditEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	SubjectID string    `json:"subject_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
