package services

import (
	"github.com/shashiranjanraj/sokoni/app/events"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/event"
)

// ReportService records complaints against users and feeds the
// report-count signal the admin view filters on.
type ReportService struct {
	users   UserStore
	reports ReportStore
}

func NewReportService(users UserStore, reports ReportStore) *ReportService {
	return &ReportService{users: users, reports: reports}
}

// File creates a report by reporterID against reportedUserID. Reporter
// and reported user are fixed for the life of the report.
func (s *ReportService) File(reporterID, reportedUserID uint, reason, description string) (models.Report, error) {
	var report models.Report

	if reporterID == reportedUserID {
		return report, ErrSelfReport
	}
	if _, err := s.users.FindByID(reportedUserID); err != nil {
		return report, notFoundOr(err)
	}

	report = models.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         reason,
		Description:    description,
	}
	if err := s.reports.Create(&report); err != nil {
		return models.Report{}, err
	}

	// Denormalised counter backing the flagged-users admin view.
	if err := s.users.IncrementReportCount(reportedUserID); err != nil {
		return models.Report{}, err
	}

	event.Fire(events.ReportCreated, events.ReportCreatedPayload{Report: report})
	return report, nil
}

// Against returns every report filed against a user. Admin only.
func (s *ReportService) Against(actor Actor, userID uint) ([]models.Report, error) {
	if !actor.isAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.reports.ByReportedUser(userID)
}

// Unresolved returns all open reports. Admin only.
func (s *ReportService) Unresolved(actor Actor) ([]models.Report, error) {
	if !actor.isAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.reports.Unresolved()
}

// Resolve closes a report with the admin's notes. Admin only.
func (s *ReportService) Resolve(actor Actor, reportID uint, notes string) error {
	if !actor.isAdmin() {
		return ErrNotAuthorized
	}
	if _, err := s.reports.FindByID(reportID); err != nil {
		return notFoundOr(err)
	}
	return s.reports.Resolve(reportID, notes)
}
