package services

import "github.com/shashiranjanraj/sokoni/app/models"

// ProductService handles seller listing management and the public
// catalogue.
type ProductService struct {
	users    UserStore
	products ProductStore
}

func NewProductService(users UserStore, products ProductStore) *ProductService {
	return &ProductService{users: users, products: products}
}

// ProductInput carries the seller-editable listing fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	ImageURL    string
	IsActive    bool
}

// Create adds a listing for the seller. Suspended sellers cannot list.
func (s *ProductService) Create(sellerID uint, in ProductInput) (models.Product, error) {
	seller, err := s.users.FindByID(sellerID)
	if err != nil {
		return models.Product{}, notFoundOr(err)
	}
	if !seller.CanTrade() {
		return models.Product{}, ErrAccountSuspended
	}
	if in.Price < 0 || in.Quantity < 0 {
		return models.Product{}, ErrInvalidQuantity
	}

	p := models.Product{
		SellerID:    sellerID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
	}
	if err := s.products.Create(&p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update edits a listing the seller owns. Price changes never touch
// existing orders, which carry their own copied unit prices.
func (s *ProductService) Update(sellerID, productID uint, in ProductInput) (models.Product, error) {
	p, err := s.products.FindByID(productID)
	if err != nil {
		return models.Product{}, notFoundOr(err)
	}
	if p.SellerID != sellerID {
		return models.Product{}, ErrNotAuthorized
	}

	seller, err := s.users.FindByID(sellerID)
	if err != nil {
		return models.Product{}, notFoundOr(err)
	}
	if !seller.CanTrade() {
		return models.Product{}, ErrAccountSuspended
	}
	if in.Price < 0 || in.Quantity < 0 {
		return models.Product{}, ErrInvalidQuantity
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Category = in.Category
	p.ImageURL = in.ImageURL
	p.IsActive = in.IsActive

	if err := s.products.Update(&p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Catalogue returns the active marketplace listings.
func (s *ProductService) Catalogue() ([]models.Product, error) {
	return s.products.ActiveCatalogue()
}

// Mine returns all of a seller's own listings, active or not.
func (s *ProductService) Mine(sellerID uint) ([]models.Product, error) {
	return s.products.BySeller(sellerID)
}

// Get returns a single product.
func (s *ProductService) Get(productID uint) (models.Product, error) {
	p, err := s.products.FindByID(productID)
	if err != nil {
		return models.Product{}, notFoundOr(err)
	}
	return p, nil
}
