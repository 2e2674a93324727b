package domain

// EntityKind distinguishes the two counterparty roles a profile can have.
type EntityKind string

const (
	EntityVendor EntityKind = "VENDOR"
	EntityClient EntityKind = "CLIENT"
)

// Entity is a counterparty profile (vendor or client) a transaction may be
// linked to. The link is optional and has no effect on statement math.
type Entity struct {
	EntityID string     `json:"entityID"` // Primary Key (e.g., UUID)
	UserID   string     `json:"userID"`   // FK -> users.user_id (Not Null)
	Name     string     `json:"name"`
	Kind     EntityKind `json:"kind"`
	Notes    string     `json:"notes"` // Nullable
	AuditFields
}
