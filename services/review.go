package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"infostore/models"
	"infostore/repository"
)

// ReviewService manages product reviews and keeps the product's denormalized
// rating aggregates in step with every mutation.
type ReviewService struct {
	store *repository.Store
	cache ProductCache
}

func NewReviewService(store *repository.Store, cache ProductCache) *ReviewService {
	return &ReviewService{store: store, cache: cache}
}

type AddReviewInput struct {
	ProductID uint
	Rating    int
	Comment   string
}

func (s *ReviewService) AddReview(ctx context.Context, userID uint, in AddReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalidArgument("rating must be between 1 and 5")
	}

	if _, err := s.store.Products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("product not found")
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	var review *models.Review
	err := s.store.Atomically(ctx, func(tx *repository.Store) error {
		exists, err := tx.Reviews.ExistsForProductAndUser(ctx, in.ProductID, userID)
		if err != nil {
			return fmt.Errorf("check existing review: %w", err)
		}
		if exists {
			return alreadyExists("you have already reviewed this product")
		}

		review = &models.Review{
			ProductID: in.ProductID,
			UserID:    userID,
			Rating:    uint(in.Rating),
			Comment:   in.Comment,
		}
		if err := tx.Reviews.Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return alreadyExists("you have already reviewed this product")
			}
			return fmt.Errorf("create review: %w", err)
		}
		return s.refreshAggregates(ctx, tx, in.ProductID)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return review, nil
}

type UpdateReviewInput struct {
	Rating  int
	Comment string
}

func (s *ReviewService) UpdateReview(ctx context.Context, reviewID uint, actor *models.User, in UpdateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalidArgument("rating must be between 1 and 5")
	}

	var review *models.Review
	err := s.store.Atomically(ctx, func(tx *repository.Store) error {
		var err error
		review, err = s.getEditableReview(ctx, tx, reviewID, actor)
		if err != nil {
			return err
		}
		review.Rating = uint(in.Rating)
		review.Comment = in.Comment
		if err := tx.Reviews.Update(ctx, review); err != nil {
			return fmt.Errorf("update review: %w", err)
		}
		return s.refreshAggregates(ctx, tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uint, actor *models.User) error {
	err := s.store.Atomically(ctx, func(tx *repository.Store) error {
		review, err := s.getEditableReview(ctx, tx, reviewID, actor)
		if err != nil {
			return err
		}
		if err := tx.Reviews.Delete(ctx, reviewID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		return s.refreshAggregates(ctx, tx, review.ProductID)
	})
	if err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// Authors may edit their own reviews; admins may edit any.
func (s *ReviewService) getEditableReview(ctx context.Context, tx *repository.Store, reviewID uint, actor *models.User) (*models.Review, error) {
	review, err := tx.Reviews.GetByID(ctx, reviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("review not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, forbidden("you do not have permission to modify this review")
	}
	return review, nil
}

func (s *ReviewService) refreshAggregates(ctx context.Context, tx *repository.Store, productID uint) error {
	average, total, err := tx.Reviews.AggregateForProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("aggregate reviews: %w", err)
	}
	if err := tx.Products.UpdateRating(ctx, productID, average, total); err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	return nil
}

func (s *ReviewService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("product cache invalidation failed: %v", err)
	}
}
