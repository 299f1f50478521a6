package models

import (
	"time"

	"gorm.io/gorm"
)

// Marketplace roles.
const (
	RoleBuyer    = "buyer"
	RoleSeller   = "seller"
	RoleDelivery = "delivery"
	RoleAdmin    = "admin"
)

// User is the primary account model. Moderation state lives directly on
// the user row so suspend/ban checks are a single lookup.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     string `gorm:"size:50;default:buyer" json:"role"`
	Phone    string `gorm:"size:50" json:"phone"`

	IsSuspended      bool       `gorm:"default:false;index" json:"is_suspended"`
	SuspendedAt      *time.Time `json:"suspended_at,omitempty"`
	SuspensionReason string     `gorm:"size:500" json:"suspension_reason,omitempty"`

	// Invariant: IsBanned implies IsSuspended. Ban is terminal.
	IsBanned    bool       `gorm:"default:false;index" json:"is_banned"`
	BannedAt    *time.Time `json:"banned_at,omitempty"`
	BanReason   string     `gorm:"size:500" json:"ban_reason,omitempty"`
	ReportCount int        `gorm:"default:0" json:"report_count"`
}

// FlaggedReportThreshold is the report count at which a user surfaces
// in the admin flagged-users view. Read-side filter only; suspension is
// always a manual admin action.
const FlaggedReportThreshold = 5

// IsFlagged reports whether the user has accumulated enough reports to
// appear in the admin flagged list.
func (u *User) IsFlagged() bool { return u.ReportCount >= FlaggedReportThreshold }

// CanTrade reports whether the user may buy or sell. Suspended and
// banned users cannot.
func (u *User) CanTrade() bool { return !u.IsSuspended && !u.IsBanned }
