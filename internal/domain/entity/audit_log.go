package entity

import "time"

// Acciones registradas en el log de auditoría.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
	AuditCancel = "cancel"
)

// AuditEntry es una entrada append-only del log de auditoría.
// Before/After guardan la representación JSON del registro afectado.
type AuditEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"ts"`
	UserEmail string    `json:"user"`
	Action    string    `json:"action"` // create | update | delete | cancel
	Entity    string    `json:"entity"` // material | exam | movement | ...
	EntityID  int       `json:"entity_id"`
	Before    any       `json:"before,omitempty"`
	After     any       `json:"after,omitempty"`
}
