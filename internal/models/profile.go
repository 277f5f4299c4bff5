package models

// Profile is the public display identity of a user. The pipeline reads it to
// label the opponent in modal payloads.
type Profile struct {
	BaseModel
	UserID    string  `gorm:"not null;uniqueIndex" json:"user_id"`
	Username  string  `gorm:"not null" json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Rating    int     `gorm:"default:1200" json:"rating"`
}
