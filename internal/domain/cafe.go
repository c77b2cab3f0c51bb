package domain

// Cafe Model
type Cafe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`        // Primary key
	Name        string `gorm:"not null" json:"name"`        // Cafe name
	Description string `gorm:"not null" json:"description"` // Description
	URL         string `gorm:"not null" json:"url"`         // Website
	Address     string `gorm:"not null" json:"address"`     // Street address
	CityCode    string `gorm:"size:10;not null" json:"city_code"` // Foreign key to City
	ImageURL    string `gorm:"not null" json:"image_url"`   // Image, placeholder by default
	City        City   `gorm:"foreignKey:CityCode;constraint:OnUpdate:CASCADE;" json:"-"` // City this cafe belongs to
}

// CityState returns "City, ST" for the cafe's city
func (c *Cafe) CityState() string {
	return c.City.Name + ", " + c.City.State
}
