package services_test

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// In-memory store fakes. Reserve takes the same all-or-nothing decision
// as the SQL conditional update, under a mutex, so concurrency tests
// exercise the same guarantee.

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uint]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(id uint) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return *u, nil
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = uint(len(s.users) + 1)
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) Suspend(id uint, reason string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsSuspended = true
	u.SuspendedAt = &at
	u.SuspensionReason = reason
	return nil
}

func (s *fakeUserStore) Unsuspend(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsSuspended = false
	u.SuspendedAt = nil
	u.SuspensionReason = ""
	return nil
}

func (s *fakeUserStore) Ban(id uint, reason string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsBanned = true
	u.BannedAt = &at
	u.BanReason = reason
	u.IsSuspended = true
	u.SuspendedAt = &at
	u.SuspensionReason = reason
	return nil
}

func (s *fakeUserStore) IncrementReportCount(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.ReportCount++
	return nil
}

func (s *fakeUserStore) Flagged() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.ReportCount >= models.FlaggedReportThreshold && !u.IsBanned {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) All(role string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[uint]*models.Product
	restores map[uint]int // productID -> total restored qty
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{
		products: make(map[uint]*models.Product),
		restores: make(map[uint]int),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) FindByID(id uint) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return *p, nil
	}
	return models.Product{}, gorm.ErrRecordNotFound
}

func (s *fakeProductStore) Create(p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = uint(len(s.products) + 1)
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *fakeProductStore) Update(p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *fakeProductStore) ActiveCatalogue() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) BySeller(sellerID uint) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) IDsBySeller(sellerID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	for _, p := range s.products {
		if p.SellerID == sellerID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (s *fakeProductStore) Reserve(productID uint, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	return true, nil
}

func (s *fakeProductStore) Restore(productID uint, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[productID]; ok {
		p.Quantity += qty
	}
	s.restores[productID] += qty
	return nil
}

func (s *fakeProductStore) SetRating(productID uint, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[productID]; ok {
		p.Rating = rating
	}
	return nil
}

func (s *fakeProductStore) SetActiveBySeller(sellerID uint, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.SellerID == sellerID {
			p.IsActive = active
		}
	}
	return nil
}

func (s *fakeProductStore) stock(id uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.Quantity
	}
	return -1
}

func (s *fakeProductStore) active(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.IsActive
	}
	return false
}

type fakeCartStore struct {
	mu     sync.Mutex
	nextID uint
	items  []*models.CartItem

	clearFails int // remaining Clear calls that fail before one succeeds
	clearCalls int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{nextID: 1}
}

func (s *fakeCartStore) ItemsByUser(userID uint) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CartItem
	for _, it := range s.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (s *fakeCartStore) Find(userID, productID uint) (models.CartItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.UserID == userID && it.ProductID == productID {
			return *it, true, nil
		}
	}
	return models.CartItem{}, false, nil
}

func (s *fakeCartStore) Create(item *models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextID
	s.nextID++
	cp := *item
	s.items = append(s.items, &cp)
	return nil
}

func (s *fakeCartStore) UpdateQuantity(id uint, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			it.Quantity = qty
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeCartStore) Delete(userID, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if !(it.UserID == userID && it.ProductID == productID) {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

func (s *fakeCartStore) Clear(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCalls++
	if s.clearFails > 0 {
		s.clearFails--
		return errors.New("cart clear: connection reset")
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	nextID uint
	orders map[uint]*models.Order

	findErr   map[uint]error // per-order FindByID failures
	afterFind func(id uint)  // runs after a successful FindByID, outside the lock
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	s := &fakeOrderStore{nextID: 1, orders: make(map[uint]*models.Order)}
	for _, o := range orders {
		s.orders[o.ID] = o
		if o.ID >= s.nextID {
			s.nextID = o.ID + 1
		}
	}
	return s
}

func (s *fakeOrderStore) Create(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.nextID
		s.nextID++
	}
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

func (s *fakeOrderStore) FindByID(id uint) (models.Order, error) {
	s.mu.Lock()
	if err, ok := s.findErr[id]; ok {
		s.mu.Unlock()
		return models.Order{}, err
	}
	o, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return models.Order{}, gorm.ErrRecordNotFound
	}
	cp := *o
	s.mu.Unlock()
	if s.afterFind != nil {
		s.afterFind(id)
	}
	return cp, nil
}

func (s *fakeOrderStore) ByBuyer(buyerID uint) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ByDeliveryService(deliveryID uint, statuses ...models.DeliveryStatus) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.DeliveryServiceID == nil || *o.DeliveryServiceID != deliveryID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if o.DeliveryStatus == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *o)
	}
	return out, nil
}

func (s *fakeOrderStore) All() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *fakeOrderStore) AssignDelivery(id, deliveryID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.DeliveryServiceID = &deliveryID
	return nil
}

func (s *fakeOrderStore) SetDeliveryStatus(id uint, status models.DeliveryStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.DeliveryStatus = status
	switch status {
	case models.DeliveryPacked:
		o.PackedAt = &at
	case models.DeliveryInTransit:
		o.ShippedAt = &at
	case models.DeliveryDelivered:
		o.DeliveredAt = &at
	}
	return nil
}

func (s *fakeOrderStore) SetPaymentStatus(id uint, status models.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.PaymentStatus = status
	return nil
}

func (s *fakeOrderStore) ForceRefund(id uint) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return false, false, nil
	}
	if !o.InFlight() {
		return false, false, nil
	}
	shipped := o.Shipped()
	o.PaymentStatus = models.PaymentRefunded
	o.DeliveryStatus = models.DeliveryCancelled
	return shipped, true, nil
}

func (s *fakeOrderStore) InFlightIDsByProducts(productIDs []uint, limit, offset int) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}

	var ids []uint
	for id, o := range s.orders {
		if !o.InFlight() {
			continue
		}
		for _, item := range o.Items {
			if wanted[item.ProductID] {
				ids = append(ids, id)
				break
			}
		}
	}
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *fakeOrderStore) CountByStatus() (map[models.DeliveryStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[models.DeliveryStatus]int64)
	for _, o := range s.orders {
		out[o.DeliveryStatus]++
	}
	return out, nil
}

func (s *fakeOrderStore) Revenue() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, o := range s.orders {
		if o.PaymentStatus != models.PaymentRefunded {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (s *fakeOrderStore) get(id uint) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return *o
	}
	return models.Order{}
}

type fakeReportStore struct {
	mu      sync.Mutex
	nextID  uint
	reports []*models.Report
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{nextID: 1}
}

func (s *fakeReportStore) Create(report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = s.nextID
	s.nextID++
	cp := *report
	s.reports = append(s.reports, &cp)
	return nil
}

func (s *fakeReportStore) FindByID(id uint) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			return *r, nil
		}
	}
	return models.Report{}, gorm.ErrRecordNotFound
}

func (s *fakeReportStore) ByReportedUser(userID uint) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Report
	for _, r := range s.reports {
		if r.ReportedUserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReportStore) Unresolved() ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Report
	for _, r := range s.reports {
		if !r.IsResolved {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReportStore) Resolve(id uint, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			r.IsResolved = true
			r.AdminNotes = notes
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeReportStore) DistinctReporterIDs(reportedUserID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[uint]bool)
	var ids []uint
	for _, r := range s.reports {
		if r.ReportedUserID == reportedUserID && !seen[r.ReporterID] {
			seen[r.ReporterID] = true
			ids = append(ids, r.ReporterID)
		}
	}
	return ids, nil
}

type fakeReviewStore struct {
	mu      sync.Mutex
	nextID  uint
	reviews []*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{nextID: 1}
}

func (s *fakeReviewStore) Create(review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	review.ID = s.nextID
	s.nextID++
	cp := *review
	s.reviews = append(s.reviews, &cp)
	return nil
}

func (s *fakeReviewStore) FindByID(id uint) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == id {
			return *r, nil
		}
	}
	return models.Review{}, gorm.ErrRecordNotFound
}

func (s *fakeReviewStore) ByProduct(productID uint) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) Exists(userID, productID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.UserID == userID && r.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeReviewStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.reviews[:0]
	for _, r := range s.reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reviews = kept
	return nil
}

func (s *fakeReviewStore) AverageRating(productID uint) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum, n float64
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n, nil
}
