package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// ReportRepository handles database operations for Report.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ReportRepository) WithTx(tx *gorm.DB) *ReportRepository {
	return &ReportRepository{db: tx}
}

// Create persists a new report.
func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// FindByID looks up a report by primary key.
func (r *ReportRepository) FindByID(id uint) (models.Report, error) {
	var report models.Report
	err := r.db.First(&report, id).Error
	return report, err
}

// ByReportedUser returns every report filed against a user, newest first.
func (r *ReportRepository) ByReportedUser(userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Preload("Reporter").Where("reported_user_id = ?", userID).
		Order("id desc").Find(&reports).Error
	return reports, err
}

// Unresolved returns all open reports, oldest first.
func (r *ReportRepository) Unresolved() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Preload("Reporter").Preload("ReportedUser").
		Where("is_resolved = ?", false).Order("id").Find(&reports).Error
	return reports, err
}

// Resolve closes a report with the admin's notes.
func (r *ReportRepository) Resolve(id uint, notes string) error {
	return r.db.Model(&models.Report{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_resolved": true,
			"admin_notes": notes,
		}).Error
}

// DistinctReporterIDs returns each user who has ever reported the given
// user, once. The moderation cascade notifies each reporter exactly
// once regardless of how many reports they filed.
func (r *ReportRepository) DistinctReporterIDs(reportedUserID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Report{}).Distinct("reporter_id").
		Where("reported_user_id = ?", reportedUserID).
		Order("reporter_id").
		Pluck("reporter_id", &ids).Error
	return ids, err
}
