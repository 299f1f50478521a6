package models

import "gorm.io/gorm"

// Report is a complaint filed by one user against another. Reporter and
// reported user are immutable after creation; admins resolve reports
// with optional notes.
type Report struct {
	gorm.Model
	ReporterID     uint   `gorm:"not null;index" json:"reporter_id"`
	ReportedUserID uint   `gorm:"not null;index" json:"reported_user_id"`
	Reason         string `gorm:"size:255;not null" json:"reason"`
	Description    string `gorm:"type:text" json:"description"`
	IsResolved     bool   `gorm:"default:false;index" json:"is_resolved"`
	AdminNotes     string `gorm:"type:text" json:"admin_notes,omitempty"`

	Reporter     *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	ReportedUser *User `gorm:"foreignKey:ReportedUserID" json:"reported_user,omitempty"`
}
