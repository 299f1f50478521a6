package services

import "github.com/shashiranjanraj/sokoni/app/models"

// AdminService serves the admin read models: dashboard aggregates,
// flagged users and account listings.
type AdminService struct {
	users   UserStore
	orders  OrderStore
	reports ReportStore
}

func NewAdminService(users UserStore, orders OrderStore, reports ReportStore) *AdminService {
	return &AdminService{users: users, orders: orders, reports: reports}
}

// Dashboard is the admin landing-page aggregate.
type Dashboard struct {
	Revenue         float64                         `json:"revenue"`
	OrdersByStatus  map[models.DeliveryStatus]int64 `json:"orders_by_status"`
	FlaggedUsers    []models.User                   `json:"flagged_users"`
	OpenReportCount int                             `json:"open_report_count"`
}

// Dashboard builds the aggregate view. Admin only.
func (s *AdminService) Dashboard(actor Actor) (Dashboard, error) {
	var d Dashboard
	if !actor.isAdmin() {
		return d, ErrNotAuthorized
	}

	revenue, err := s.orders.Revenue()
	if err != nil {
		return d, err
	}
	counts, err := s.orders.CountByStatus()
	if err != nil {
		return d, err
	}
	flagged, err := s.users.Flagged()
	if err != nil {
		return d, err
	}
	open, err := s.reports.Unresolved()
	if err != nil {
		return d, err
	}

	d.Revenue = revenue
	d.OrdersByStatus = counts
	d.FlaggedUsers = flagged
	d.OpenReportCount = len(open)
	return d, nil
}

// FlaggedUsers returns users at or above the report threshold. Admin only.
func (s *AdminService) FlaggedUsers(actor Actor) ([]models.User, error) {
	if !actor.isAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.users.Flagged()
}

// Users lists accounts, optionally filtered by role. Admin only.
func (s *AdminService) Users(actor Actor, role string) ([]models.User, error) {
	if !actor.isAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.users.All(role)
}

// Orders lists every order. Admin only.
func (s *AdminService) Orders(actor Actor) ([]models.Order, error) {
	if !actor.isAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.orders.All()
}
