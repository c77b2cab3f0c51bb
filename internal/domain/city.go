package domain

// City Model. Static reference data, read-only once seeded.
type City struct {
	Code  string `gorm:"primaryKey;size:10" json:"code"` // Short code, e.g. "sf"
	Name  string `gorm:"not null" json:"name"`           // Display name
	State string `gorm:"size:2;not null" json:"state"`   // Two-letter region code
}
