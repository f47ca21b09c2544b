package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/repository"
)

func TestRateProduct_Upsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)

	first, err := f.ledger.RateProduct(ctx, f.buyer.ID, p.ID, 5, "great")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// second rating by the same user overwrites, it does not add
	second, err := f.ledger.RateProduct(ctx, f.buyer.ID, p.ID, 2, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Score)
	assert.Equal(t, "changed my mind", second.Review)

	ratings, err := f.store.ListRatings(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 2, ratings[0].Score)
}

func TestRateProduct_ScoreBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)

	_, err := f.ledger.RateProduct(ctx, f.buyer.ID, p.ID, 0, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.ledger.RateProduct(ctx, f.buyer.ID, p.ID, 6, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.ledger.RateProduct(ctx, f.buyer.ID, 999, 3, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAverageRating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)

	avg, err := f.ledger.AverageRating(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, avg, "no ratings must yield a nil average, not a division fault")

	_, err = f.ledger.RateProduct(ctx, f.buyer.ID, p.ID, 5, "")
	require.NoError(t, err)
	_, err = f.ledger.RateProduct(ctx, f.seller.ID, p.ID, 2, "")
	require.NoError(t, err)

	avg, err = f.ledger.AverageRating(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 3.5, *avg, 1e-9)
}

func TestRecommendations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)

	require.NoError(t, f.ledger.Recommend(ctx, f.seller.ID, p.ID, "buyer"))

	// unknown targets
	err := f.ledger.Recommend(ctx, f.seller.ID, p.ID, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	err = f.ledger.Recommend(ctx, f.seller.ID, 999, "buyer")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, f.ledger.Unrecommend(ctx, f.seller.ID, p.ID, "buyer"))

	// nothing left to withdraw
	err = f.ledger.Unrecommend(ctx, f.seller.ID, p.ID, "buyer")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
