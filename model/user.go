package model

import "gorm.io/gorm"

const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

// User struct
type User struct {
	gorm.Model
	Name           string   `gorm:"not null" json:"name"`
	Email          string   `gorm:"uniqueIndex;not null" json:"email"`
	Password       string   `gorm:"not null" json:"-"`
	ProfilePicture string   `json:"profile_picture"`
	AboutMe        string   `gorm:"size:500" json:"about_me"`
	SkillsOffered  []string `gorm:"serializer:json" json:"skills_offered"`
	SkillsNeeded   []string `gorm:"serializer:json" json:"skills_needed"`
	Location       string   `gorm:"not null" json:"location"`
	Rating         float64  `gorm:"default:0" json:"rating"`
	NumReviews     int      `gorm:"default:0" json:"num_reviews"`
	Role           string   `json:"role"`

	OtpEnabled bool   `gorm:"default:false" json:"otp"`
	OtpSecret  string `json:"-"`
}

// Participant is the display subset of a User shown next to messages and
// exchanges.
type Participant struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

func (u User) Participant() Participant {
	return Participant{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
}
