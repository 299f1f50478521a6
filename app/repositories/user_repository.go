package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Suspend sets the suspension fields on a user row.
func (r *UserRepository) Suspend(id uint, reason string, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_suspended":      true,
		"suspended_at":      at,
		"suspension_reason": reason,
	}).Error
}

// Unsuspend clears the suspension fields on a user row.
func (r *UserRepository) Unsuspend(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_suspended":      false,
		"suspended_at":      nil,
		"suspension_reason": "",
	}).Error
}

// Ban marks a user as banned. A banned user is always also suspended.
func (r *UserRepository) Ban(id uint, reason string, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_banned":         true,
		"banned_at":         at,
		"ban_reason":        reason,
		"is_suspended":      true,
		"suspended_at":      at,
		"suspension_reason": reason,
	}).Error
}

// IncrementReportCount bumps the denormalised report counter.
func (r *UserRepository) IncrementReportCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("report_count", gorm.Expr("report_count + 1")).Error
}

// Flagged returns users whose report count has reached the admin
// review threshold, most reported first. Banned users are excluded;
// there is no further action to take on them.
func (r *UserRepository) Flagged() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("report_count >= ? AND is_banned = ?", models.FlaggedReportThreshold, false).
		Order("report_count desc").Find(&users).Error
	return users, err
}

// All returns users filtered by role, or every user when role is empty.
func (r *UserRepository) All(role string) ([]models.User, error) {
	var users []models.User
	q := r.db.Order("id")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&users).Error
	return users, err
}
