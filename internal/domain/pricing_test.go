package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestComputePrice(t *testing.T) {
	t.Run("room only, three nights", func(t *testing.T) {
		// $100/night, 2024-06-01 -> 2024-06-04
		nights := interval("2024-06-01", "2024-06-04").Nights()
		price, err := ComputePrice(nights, 10000, nil, false)
		require.NoError(t, err)
		assert.Equal(t, 3, nights)
		assert.Equal(t, int64(30000), price)
	})

	t.Run("breakfast included", func(t *testing.T) {
		price, err := ComputePrice(2, 10000, int64Ptr(1500), true)
		require.NoError(t, err)
		assert.Equal(t, int64(23000), price)
	})

	t.Run("breakfast offered but not included", func(t *testing.T) {
		price, err := ComputePrice(2, 10000, int64Ptr(1500), false)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), price)
	})

	t.Run("breakfast included but not offered", func(t *testing.T) {
		price, err := ComputePrice(2, 10000, nil, true)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), price)

		price, err = ComputePrice(2, 10000, int64Ptr(0), true)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), price)
	})

	t.Run("zero nights", func(t *testing.T) {
		_, err := ComputePrice(0, 10000, nil, false)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("negative nights", func(t *testing.T) {
		_, err := ComputePrice(-2, 10000, nil, false)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestComputePrice_Linearity(t *testing.T) {
	roomPrices := []int64{1, 4999, 10000, 123456}
	breakfastPrices := []int64{1, 750, 2500}

	for _, r := range roomPrices {
		for _, b := range breakfastPrices {
			one, err := ComputePrice(1, r, int64Ptr(b), true)
			require.NoError(t, err)

			for n := 1; n <= 60; n++ {
				with, err := ComputePrice(n, r, int64Ptr(b), true)
				require.NoError(t, err)
				without, err := ComputePrice(n, r, int64Ptr(b), false)
				require.NoError(t, err)

				assert.Equal(t, int64(n)*one, with)
				assert.Equal(t, int64(n)*b, with-without)
			}
		}
	}
}

func TestQuoteRoom(t *testing.T) {
	room := &Room{ID: "room-1", RoomPrice: 10000, BreakfastPrice: int64Ptr(2000)}

	price, err := QuoteRoom(room, interval("2024-06-01", "2024-06-04"), true)
	require.NoError(t, err)
	assert.Equal(t, int64(36000), price)

	_, err = QuoteRoom(room, interval("2024-06-04", "2024-06-04"), false)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = QuoteRoom(room, interval("2024-06-04", "2024-06-01"), false)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestVerifyDeclaredPrice(t *testing.T) {
	assert.NoError(t, VerifyDeclaredPrice(30000, 30000))
	assert.ErrorIs(t, VerifyDeclaredPrice(30000, 100), ErrPriceMismatch)
}
