package models

import "time"

// NotificationRecord is one row of the per-user delivery audit trail,
// appended exactly once per successful dispatch.
type NotificationRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"-" gorm:"index;size:128"`
	AlertID     string    `json:"alertId"`
	Event       string    `json:"event"`
	AreaDesc    string    `json:"areaDesc"`
	SentAt      time.Time `json:"sentAt" gorm:"index"`
	Token       string    `json:"-"`
	Read        bool      `json:"read" gorm:"default:false"`
	FCMResponse string    `json:"-"`
}
