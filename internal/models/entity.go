package models

// Entity is the entities table row.
type Entity struct {
	EntityID string `db:"entity_id"`
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	Kind     string `db:"kind"`
	Notes    string `db:"notes"` // Nullable
	AuditFields
}
