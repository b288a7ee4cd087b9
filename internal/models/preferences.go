package models

import "time"

// NotificationPreferences is a user's delivery policy. A user with no row
// is "not configured", which is distinct from do-not-disturb being
// disabled: both permit delivery, but only the latter was an explicit
// choice.
type NotificationPreferences struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	UserID       string    `json:"-" gorm:"uniqueIndex;size:128"`
	DNDEnabled   bool      `json:"-"`
	DNDStartHour int       `json:"-"`
	DNDEndHour   int       `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// PreferencesPayload is the wire shape of the preferences object.
type PreferencesPayload struct {
	DoNotDisturb *DoNotDisturbPayload `json:"doNotDisturb,omitempty"`
}

type DoNotDisturbPayload struct {
	Enabled   bool `json:"enabled"`
	StartHour int  `json:"startHour" validate:"min=0,max=23"`
	EndHour   int  `json:"endHour" validate:"min=0,max=23"`
}

type StorePreferencesRequest struct {
	UserID      string              `json:"userId" validate:"required"`
	Preferences *PreferencesPayload `json:"preferences" validate:"required"`
}

// ToPayload converts the stored row back to the wire shape.
func (p *NotificationPreferences) ToPayload() PreferencesPayload {
	return PreferencesPayload{
		DoNotDisturb: &DoNotDisturbPayload{
			Enabled:   p.DNDEnabled,
			StartHour: p.DNDStartHour,
			EndHour:   p.DNDEndHour,
		},
	}
}

// ApplyPayload copies the wire shape onto the stored row. A payload
// without a doNotDisturb object leaves quiet hours disabled.
func (p *NotificationPreferences) ApplyPayload(payload PreferencesPayload) {
	if payload.DoNotDisturb == nil {
		p.DNDEnabled = false
		p.DNDStartHour = 0
		p.DNDEndHour = 0
		return
	}
	p.DNDEnabled = payload.DoNotDisturb.Enabled
	p.DNDStartHour = payload.DoNotDisturb.StartHour
	p.DNDEndHour = payload.DoNotDisturb.EndHour
}
