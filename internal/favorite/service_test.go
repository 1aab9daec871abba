package favorite

import (
	"context"
	"errors"
	"testing"

	"material_market_backend/internal/listing"
	"material_market_backend/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockListingSource is a mock type for favorite.ListingSource
type MockListingSource struct {
	mock.Mock
}

func (m *MockListingSource) AllListings(ctx context.Context) ([]listing.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

type FavoriteServiceTestSuite struct {
	service    *ServiceImplementation
	set        Set
	mockSource *MockListingSource
	metrics    *metrics.Metrics
}

func setupFavoriteServiceTestSuite(t *testing.T) *FavoriteServiceTestSuite {
	ts := &FavoriteServiceTestSuite{
		set:        NewMemorySet(),
		mockSource: new(MockListingSource),
		metrics:    metrics.NewNop(),
	}
	ts.service = NewService(ts.set, ts.mockSource, ts.metrics, zap.NewNop())
	return ts
}

func TestService_Toggle_CountsResults(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()

	status, err := ts.service.Toggle(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, &Status{ListingID: "1", Favorite: true}, status)

	status, err = ts.service.Toggle(ctx, "1")
	require.NoError(t, err)
	assert.False(t, status.Favorite)

	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.FavoriteTogglesTotal.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.FavoriteTogglesTotal.WithLabelValues("removed")))
}

func TestService_FavoritedListings_FollowsStoreOrder(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	all := []listing.Listing{{ID: "c"}, {ID: "b"}, {ID: "a"}}
	ts.mockSource.On("AllListings", ctx).Return(all, nil)

	// favorited in a different order than the store, plus a dangling id
	for _, id := range []string{"a", "gone", "c"} {
		_, err := ts.service.Toggle(ctx, id)
		require.NoError(t, err)
	}

	favs, err := ts.service.FavoritedListings(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "c", favs[0].ID)
	assert.Equal(t, "a", favs[1].ID)

	ids, err := ts.set.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestService_FavoritedListings_SubsetOfAll(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	all := listing.DemoListings()
	ts.mockSource.On("AllListings", ctx).Return(all, nil)

	for _, id := range []string{"2", "5", "8"} {
		_, err := ts.service.Toggle(ctx, id)
		require.NoError(t, err)
	}

	favs, err := ts.service.FavoritedListings(ctx)
	require.NoError(t, err)

	var expected []string
	for _, l := range all {
		status, err := ts.service.IsFavorite(ctx, l.ID)
		require.NoError(t, err)
		if status.Favorite {
			expected = append(expected, l.ID)
		}
	}
	var got []string
	for _, l := range favs {
		got = append(got, l.ID)
	}
	assert.Equal(t, expected, got)
}

func TestService_FavoritedListings_RecomputedOnRead(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	ts.mockSource.On("AllListings", ctx).Return([]listing.Listing{{ID: "1"}}, nil).Once()
	ts.mockSource.On("AllListings", ctx).Return([]listing.Listing{{ID: "2"}, {ID: "1"}}, nil).Once()

	_, err := ts.service.Toggle(ctx, "2")
	require.NoError(t, err)

	favs, err := ts.service.FavoritedListings(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)

	favs, err = ts.service.FavoritedListings(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "2", favs[0].ID)
	ts.mockSource.AssertExpectations(t)
}

func TestService_FavoritedListings_SourceError(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	ts.mockSource.On("AllListings", ctx).Return(nil, errors.New("db down"))

	favs, err := ts.service.FavoritedListings(ctx)
	assert.Nil(t, favs)
	assert.EqualError(t, err, "db down")
}
