package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/app/services"
)

type reviewFixture struct {
	users    *fakeUserStore
	products *fakeProductStore
	reviews  *fakeReviewStore
	service  *services.ReviewService
}

func newReviewFixture() *reviewFixture {
	users := newFakeUserStore(
		&models.User{Model: gormModel(1), Name: "Buyer", Role: models.RoleBuyer},
		&models.User{Model: gormModel(2), Name: "Seller", Role: models.RoleSeller},
		&models.User{Model: gormModel(3), Name: "Other Buyer", Role: models.RoleBuyer},
	)
	products := newFakeProductStore(
		&models.Product{Model: gormModel(10), SellerID: 2, Name: "Product A", Price: 100, Quantity: 3, IsActive: true},
	)
	reviews := newFakeReviewStore()

	return &reviewFixture{
		users:    users,
		products: products,
		reviews:  reviews,
		service:  services.NewReviewService(users, products, reviews),
	}
}

func (f *reviewFixture) productRating(t *testing.T, id uint) float64 {
	t.Helper()
	p, err := f.products.FindByID(id)
	require.NoError(t, err)
	return p.Rating
}

func TestAddReview_UpdatesProductAverage(t *testing.T) {
	f := newReviewFixture()

	review, err := f.service.Add(1, 10, 4, "Solid product")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, 4.0, f.productRating(t, 10))

	_, err = f.service.Add(3, 10, 5, "Loved it")
	require.NoError(t, err)

	// Average of 4 and 5, rounded to two decimal places.
	assert.Equal(t, 4.5, f.productRating(t, 10))
}

func TestAddReview_RoundsAverageToTwoDecimals(t *testing.T) {
	f := newReviewFixture()
	require.NoError(t, f.users.Create(&models.User{Model: gormModel(4), Role: models.RoleBuyer}))

	_, err := f.service.Add(1, 10, 5, "Great")
	require.NoError(t, err)
	_, err = f.service.Add(3, 10, 4, "Good")
	require.NoError(t, err)
	_, err = f.service.Add(4, 10, 4, "Good")
	require.NoError(t, err)

	// 13/3 = 4.333... rounds to 4.33.
	assert.Equal(t, 4.33, f.productRating(t, 10))
}

func TestAddReview_Rejections(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.Add(1, 10, 0, "Bad rating")
	assert.ErrorIs(t, err, services.ErrInvalidRating)
	_, err = f.service.Add(1, 10, 6, "Bad rating")
	assert.ErrorIs(t, err, services.ErrInvalidRating)

	_, err = f.service.Add(1, 10, 3, "   ")
	assert.ErrorIs(t, err, services.ErrEmptyReview)

	_, err = f.service.Add(1, 999, 3, "Ghost product")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Sellers cannot review their own products.
	_, err = f.service.Add(2, 10, 5, "Excellent, says the seller")
	assert.ErrorIs(t, err, services.ErrCannotReviewOwn)

	// Nothing was written and the average is untouched.
	assert.Equal(t, 0.0, f.productRating(t, 10))
}

func TestAddReview_OnePerBuyerAndProduct(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.Add(1, 10, 4, "First impression")
	require.NoError(t, err)

	_, err = f.service.Add(1, 10, 5, "Changed my mind")
	assert.ErrorIs(t, err, services.ErrAlreadyReviewed)
	assert.Equal(t, 4.0, f.productRating(t, 10))
}

func TestAddReview_SuspendedBuyer(t *testing.T) {
	f := newReviewFixture()
	u, _ := f.users.FindByID(1)
	u.IsSuspended = true
	require.NoError(t, f.users.Create(&u))

	_, err := f.service.Add(1, 10, 4, "Nice")
	assert.ErrorIs(t, err, services.ErrAccountSuspended)
}

func TestDeleteReview_AuthorSellerAndAdminOnly(t *testing.T) {
	f := newReviewFixture()

	review, err := f.service.Add(1, 10, 2, "Disappointing")
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.productRating(t, 10))

	// An unrelated buyer may not delete.
	otherBuyer := services.Actor{ID: 3, Role: models.RoleBuyer}
	assert.ErrorIs(t, f.service.Delete(otherBuyer, review.ID), services.ErrNotAuthorized)

	// The product's seller may.
	seller := services.Actor{ID: 2, Role: models.RoleSeller}
	require.NoError(t, f.service.Delete(seller, review.ID))

	// The average drops back to zero with no reviews left.
	assert.Equal(t, 0.0, f.productRating(t, 10))

	// The buyer can review again after deletion, and an admin may
	// delete the new review.
	again, err := f.service.Add(1, 10, 3, "Second look")
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(admin, again.ID))

	assert.ErrorIs(t, f.service.Delete(seller, 999), services.ErrNotFound)
}

func TestDeleteReview_Author(t *testing.T) {
	f := newReviewFixture()

	review, err := f.service.Add(1, 10, 4, "Fine")
	require.NoError(t, err)

	author := services.Actor{ID: 1, Role: models.RoleBuyer}
	require.NoError(t, f.service.Delete(author, review.ID))

	reviews, err := f.service.ByProduct(10)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewsByProduct(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.Add(1, 10, 4, "Good")
	require.NoError(t, err)
	_, err = f.service.Add(3, 10, 5, "Great")
	require.NoError(t, err)

	reviews, err := f.service.ByProduct(10)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = f.service.ByProduct(999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
