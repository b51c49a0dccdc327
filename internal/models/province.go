package models

// Province mirrors the provinces table.
type Province struct {
	ProvinceID string `db:"province_id"`
	Name       string `db:"name"`
	Region     string `db:"region"`
	Country    string `db:"country"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
