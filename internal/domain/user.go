package domain

// DefaultImageURL is the placeholder used when a cafe has no image
const DefaultImageURL = "/static/images/default-cafe.jpg"

// DefaultProfileURL is the placeholder used for user profiles without an image
const DefaultProfileURL = "/static/images/default-profile.jpg"

// User Model
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`                     // Primary key
	Username       string `gorm:"size:15;unique;not null" json:"username"`  // Unique username, immutable after signup
	Email          string `gorm:"size:50;unique;not null" json:"email"`     // Unique email
	FirstName      string `gorm:"size:30;not null" json:"first_name"`       // First name
	LastName       string `gorm:"size:30;not null" json:"last_name"`        // Last name
	Description    string `json:"description"`                              // Optional free-text description
	ImageURL       string `gorm:"not null" json:"image_url"`                // Profile image, placeholder by default
	Admin          bool   `gorm:"not null;default:false" json:"admin"`      // Admin flag, never self-assignable
	HashedPassword string `gorm:"not null" json:"-"`                        // Bcrypt hash, never the plaintext
	Likes          []Like `gorm:"constraint:OnDelete:CASCADE;" json:"-"`    // Likes owned by this user
}

// FullName returns "First Last" for display
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
