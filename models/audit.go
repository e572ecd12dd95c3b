package models

import "time"

type AuditAction string

const (
	AuditUserRegistered  AuditAction = "user.registered"
	AuditUserLoggedIn    AuditAction = "user.logged_in"
	AuditUserLoggedOut   AuditAction = "user.logged_out"
	AuditProductCreated  AuditAction = "product.created"
	AuditProductUpdated  AuditAction = "product.updated"
	AuditProductDeleted  AuditAction = "product.deleted"
	AuditOrderCreated    AuditAction = "order.created"
	AuditOrderUpdated    AuditAction = "order.updated"
	AuditDiscountCreated AuditAction = "discount.created"
	AuditDiscountUpdated AuditAction = "discount.updated"
)

// AuditEvent 代表稽核事件
// AuditEvent records a mutation performed through the dashboard
type AuditEvent struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	ActorID   string      `json:"actor_id"`
	Subject   string      `json:"subject"`
	CreatedAt time.Time   `json:"created_at"`
}
