package services

import (
	"math"
	"strings"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// ReviewService owns product reviews and keeps each product's average
// rating in step with them.
type ReviewService struct {
	users    UserStore
	products ProductStore
	reviews  ReviewStore
}

func NewReviewService(users UserStore, products ProductStore, reviews ReviewStore) *ReviewService {
	return &ReviewService{users: users, products: products, reviews: reviews}
}

// Add creates the user's review of a product, one per user and
// product, and recomputes the product's average rating. Sellers cannot
// review their own products.
func (s *ReviewService) Add(userID, productID uint, rating int, content string) (models.Review, error) {
	var review models.Review

	if rating < models.MinRating || rating > models.MaxRating {
		return review, ErrInvalidRating
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return review, ErrEmptyReview
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return review, notFoundOr(err)
	}
	if !user.CanTrade() {
		return review, ErrAccountSuspended
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return review, notFoundOr(err)
	}
	if product.SellerID == userID {
		return review, ErrCannotReviewOwn
	}

	exists, err := s.reviews.Exists(userID, productID)
	if err != nil {
		return review, err
	}
	if exists {
		return review, ErrAlreadyReviewed
	}

	review = models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Content:   content,
	}
	if err := s.reviews.Create(&review); err != nil {
		return models.Review{}, err
	}
	if err := s.refreshRating(productID); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Delete removes a review and recomputes the product's average. The
// author, the product's seller and admins may delete.
func (s *ReviewService) Delete(actor Actor, reviewID uint) error {
	review, err := s.reviews.FindByID(reviewID)
	if err != nil {
		return notFoundOr(err)
	}

	if !actor.isAdmin() && actor.ID != review.UserID {
		product, err := s.products.FindByID(review.ProductID)
		if err != nil {
			return notFoundOr(err)
		}
		if product.SellerID != actor.ID {
			return ErrNotAuthorized
		}
	}

	if err := s.reviews.Delete(reviewID); err != nil {
		return err
	}
	return s.refreshRating(review.ProductID)
}

// ByProduct returns a product's reviews, newest first.
func (s *ReviewService) ByProduct(productID uint) ([]models.Review, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		return nil, notFoundOr(err)
	}
	return s.reviews.ByProduct(productID)
}

// refreshRating stores the product's review average rounded to two
// decimal places.
func (s *ReviewService) refreshRating(productID uint) error {
	avg, err := s.reviews.AverageRating(productID)
	if err != nil {
		return err
	}
	return s.products.SetRating(productID, math.Round(avg*100)/100)
}
