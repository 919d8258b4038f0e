package session

import "time"

// Session is an anonymous dashboard session. SelectedDistrict is the one
// piece of state that survives across render cycles; empty means no
// district has been picked or defaulted yet.
type Session struct {
	SessionID        string    `gorm:"primaryKey" json:"-"`
	SelectedDistrict string    `json:"selected_district"`
	ExpiresAt        time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "sessions" }
