package session

import (
	"time"

	"github.com/AgriVista/acreage-backend/internal/db"
	"github.com/AgriVista/acreage-backend/internal/utils"
	"github.com/google/uuid"
)

const lifetime = 6 * time.Hour

// Store implements the middleware's session interface against the gorm
// session table.
type Store struct{}

func (s Store) FindSessionByID(id string) (utils.SessionData, error) {
	var sess Session

	err := db.DB.First(&sess, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		SessionID:        sess.SessionID,
		SelectedDistrict: sess.SelectedDistrict,
		ExpiresAt:        sess.ExpiresAt,
	}, nil
}

func (s Store) CreateSession() (utils.SessionData, error) {
	sess := Session{
		SessionID: uuid.NewString(),
		ExpiresAt: time.Now().Add(lifetime),
	}
	if err := db.DB.Create(&sess).Error; err != nil {
		return utils.SessionData{}, err
	}
	return utils.SessionData{
		SessionID: sess.SessionID,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// SetSelectedDistrict overwrites the session's selected district.
func SetSelectedDistrict(sessionID, district string) error {
	return db.DB.Model(&Session{}).
		Where("session_id = ?", sessionID).
		Update("selected_district", district).Error
}

// SelectedDistrict reads the session's selected district; a missing
// session reads as unset rather than an error.
func SelectedDistrict(sessionID string) string {
	var sess Session
	if err := db.DB.First(&sess, "session_id = ?", sessionID).Error; err != nil {
		return ""
	}
	return sess.SelectedDistrict
}
