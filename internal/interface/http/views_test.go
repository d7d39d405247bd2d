package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

func TestFormatAverage(t *testing.T) {
	assert.Nil(t, formatAverage(nil), "no ratings renders as null, not 0.00")

	v := 3.6666666
	got := formatAverage(&v)
	require.NotNil(t, got)
	assert.Equal(t, "3.67", *got)

	whole := 4.0
	got = formatAverage(&whole)
	require.NotNil(t, got)
	assert.Equal(t, "4.00", *got)
}

func TestListingView(t *testing.T) {
	avg := 4.25
	mine := 5
	l := &entity.StoreListing{
		Store:      entity.Store{ID: "s-1", Name: "Corner Shop", Address: "1 Main St"},
		Average:    &avg,
		Count:      8,
		UserRating: &mine,
	}
	view := listingView(l)

	assert.Equal(t, "s-1", view["id"])
	require.NotNil(t, view["overallRating"])
	assert.Equal(t, "4.25", *view["overallRating"].(*string))
	assert.EqualValues(t, 8, view["totalRatings"])
	assert.Equal(t, &mine, view["userRating"])
}

func TestStatsView_NoRatings(t *testing.T) {
	view := statsView(&entity.StoreStats{StoreID: "s-1", StoreName: "Quiet Shop"})
	assert.Nil(t, view["avgRating"].(*string))
	assert.EqualValues(t, 0, view["totalRatings"])
}
