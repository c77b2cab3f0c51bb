package domain

// Like Model. Join entity between users and cafes; a user may like a
// given cafe at most once, enforced by the composite unique index.
type Like struct {
	ID        uint  `gorm:"primaryKey" json:"id"`                                                           // Primary key
	UserID    uint  `gorm:"not null;uniqueIndex:idx_user_cafe" json:"user_id"`                              // Foreign key to User
	CafeID    uint  `gorm:"not null;uniqueIndex:idx_user_cafe" json:"cafe_id"`                              // Foreign key to Cafe
	Cafe      Cafe  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`                                          // Liked cafe
	CreatedAt int64 `gorm:"autoCreateTime:milli" json:"created_at"`                                         // Timestamp of creation in milliseconds
}
