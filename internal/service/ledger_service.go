package service

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/repository"
)

// Границы допустимой оценки товара
const (
	MinScore = 1
	MaxScore = 5
)

// LedgerService ведёт оценки и рекомендации товаров
type LedgerService struct {
	store repository.Store
	tx    repository.TxManager
}

func NewLedgerService(store repository.Store, tx repository.TxManager) *LedgerService {
	return &LedgerService{store: store, tx: tx}
}

// RateProduct ставит оценку товару. Повторная оценка той же пары
// (пользователь, товар) перезаписывает балл и отзыв.
func (s *LedgerService) RateProduct(ctx context.Context, userID, productID int64, score int, review string) (*domain.Rating, error) {
	if score < MinScore || score > MaxScore {
		return nil, fmt.Errorf("%w: score must be between %d and %d", ErrValidation, MinScore, MaxScore)
	}
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	var out *domain.Rating
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.store.GetRating(ctx, userID, productID)
		switch {
		case err == nil:
			existing.Score = score
			existing.Review = review
			if err := s.store.UpdateRating(ctx, existing); err != nil {
				return err
			}
			out = existing
			return nil
		case errors.Is(err, repository.ErrNotFound):
			r := &domain.Rating{CustomerID: userID, ProductID: productID, Score: score, Review: review}
			if err := s.store.CreateRating(ctx, r); err != nil {
				return err
			}
			out = r
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AverageRating среднее по оценкам товара; nil, когда оценок нет
func (s *LedgerService) AverageRating(ctx context.Context, productID int64) (*float64, error) {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	ratings, err := s.store.ListRatings(ctx, productID)
	if err != nil {
		return nil, err
	}
	return averageScore(ratings), nil
}

// Recommend рекомендует товар пользователю с именем username
func (s *LedgerService) Recommend(ctx context.Context, recommenderID, productID int64, username string) error {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return err
	}
	target, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	r := domain.Recommendation{RecommenderID: recommenderID, CustomerID: target.ID, ProductID: productID}
	return s.store.CreateRecommendation(ctx, &r)
}

// Unrecommend снимает рекомендацию; NotFound, если её не было
func (s *LedgerService) Unrecommend(ctx context.Context, recommenderID, productID int64, username string) error {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return err
	}
	target, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.store.DeleteRecommendation(ctx, recommenderID, target.ID, productID)
}
