package domain

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id string, p int64) ProductSnapshot {
	return ProductSnapshot{ProductID: id, Title: "product " + id, Price: decimal.NewFromInt(p)}
}

func TestCart_TotalsExample(t *testing.T) {
	var cart Cart
	a := snapshot("a", 1000)
	b := snapshot("b", 500)

	cart.Add(a)
	cart.Add(a)
	cart.Add(b)

	assert.True(t, decimal.NewFromInt(2500).Equal(cart.Total()))
	assert.Equal(t, 3, cart.Count())
	assert.Len(t, cart.Lines, 2)

	cart.Remove(a.ProductID)

	assert.True(t, decimal.NewFromInt(1500).Equal(cart.Total()))
	assert.Equal(t, 2, cart.Count())
}

func TestCart_EmptyTotalIsZero(t *testing.T) {
	var cart Cart
	assert.True(t, cart.Total().IsZero())
	assert.Equal(t, 0, cart.Count())
}

func TestCart_AddKeepsOneLinePerProduct(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("a", 10))
	cart.Add(snapshot("b", 20))
	cart.Add(snapshot("a", 10))

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "a", cart.Lines[0].ProductID)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "b", cart.Lines[1].ProductID)
}

func TestCart_RemoveLastUnitDropsLine(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("a", 10))
	cart.Add(snapshot("b", 20))
	cart.Add(snapshot("c", 30))

	cart.Remove("b")

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "a", cart.Lines[0].ProductID)
	assert.Equal(t, "c", cart.Lines[1].ProductID)

	_, ok := cart.Line("b")
	assert.False(t, ok)
}

func TestCart_RemoveUnknownIsNoop(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("a", 10))

	cart.Remove("zzz")

	assert.Equal(t, 1, cart.Count())
}

func TestCart_AddThenRemoveRestoresState(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("a", 10))
	cart.Add(snapshot("b", 20))
	before := append([]CartLine(nil), cart.Lines...)

	cart.Add(snapshot("a", 10))
	cart.Remove("a")
	assert.Equal(t, before, cart.Lines)

	cart.Add(snapshot("c", 30))
	cart.Remove("c")
	assert.Equal(t, before, cart.Lines)
}

func TestCart_ZeroIsIdempotent(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("a", 1000))
	cart.Add(snapshot("a", 1000))
	cart.Add(snapshot("b", 500))

	cart.Zero("a")
	once := append([]CartLine(nil), cart.Lines...)
	cart.Zero("a")

	assert.Equal(t, once, cart.Lines)

	line, ok := cart.Line("a")
	require.True(t, ok)
	assert.True(t, line.Price.IsZero())
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, decimal.NewFromInt(500).Equal(cart.Total()))
}

func TestCart_Clear(t *testing.T) {
	var cart Cart
	cart.Add(snapshot("a", 1000))
	cart.Clear()

	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total().IsZero())
}

func TestCart_TotalMatchesLinesAfterRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []ProductSnapshot{snapshot("a", 1000), snapshot("b", 250), snapshot("c", 75)}

	var cart Cart
	for i := 0; i < 500; i++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(3) {
		case 0:
			cart.Add(p)
		case 1:
			cart.Remove(p.ProductID)
		case 2:
			cart.Zero(p.ProductID)
		}

		expected := decimal.Zero
		count := 0
		for _, line := range cart.Lines {
			require.GreaterOrEqual(t, line.Quantity, 1)
			expected = expected.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			count += line.Quantity
		}
		require.True(t, expected.Equal(cart.Total()))
		require.Equal(t, count, cart.Count())
	}
}
