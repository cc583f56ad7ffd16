package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(t *testing.T, id string, quantity int) Item {
	item, err := NewItem(id, "Item "+id, quantity, nil, "")
	require.NoError(t, err)
	return item
}

func TestNewItem_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		quantity int
		wantErr  bool
	}{
		{"valid", "sausage-1", 1, false},
		{"empty id", "", 1, true},
		{"zero quantity", "sausage-1", 0, true},
		{"negative quantity", "sausage-1", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewItem(tt.id, "Sausage", tt.quantity, nil, "")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCart_Add_MergesDuplicateIDs(t *testing.T) {
	c := New()
	c.Add(testItem(t, "x", 3))
	c.Add(testItem(t, "x", 2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCart_Add_KeepsExistingFieldsOnMerge(t *testing.T) {
	c := New()
	first, err := NewItem("ham-2", "Smoked Ham", 1, &Weight{Value: 500, Unit: "g"}, "https://cdn.example.com/ham.jpg")
	require.NoError(t, err)
	c.Add(first)

	// Repeat add with different display fields only bumps the quantity.
	second, err := NewItem("ham-2", "Renamed Ham", 4, &Weight{Value: 999, Unit: "g"}, "")
	require.NoError(t, err)
	c.Add(second)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "Smoked Ham", items[0].Name)
	require.NotNil(t, items[0].Weight)
	assert.Equal(t, 500.0, items[0].Weight.Value)
	assert.Equal(t, "https://cdn.example.com/ham.jpg", items[0].ImageURL)
}

func TestCart_Add_PreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Add(testItem(t, "a", 1))
	c.Add(testItem(t, "b", 1))
	c.Add(testItem(t, "c", 1))
	c.Add(testItem(t, "a", 1))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestCart_Remove(t *testing.T) {
	c := New()
	c.Add(testItem(t, "a", 2))
	c.Add(testItem(t, "b", 1))

	c.Remove("a")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestCart_Remove_AbsentIDIsNoop(t *testing.T) {
	c := New()
	c.Add(testItem(t, "a", 2))

	c.Remove("missing")

	assert.Equal(t, 1, c.Len())
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New()
	c.Add(testItem(t, "a", 2))

	c.UpdateQuantity("a", 7)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCart_UpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		c := New()
		c.Add(testItem(t, "a", 2))
		c.Add(testItem(t, "b", 3))

		c.UpdateQuantity("a", q)

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 3, c.TotalItems())
	}
}

func TestCart_TotalItems(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.TotalItems())

	c.Add(testItem(t, "a", 2))
	c.Add(testItem(t, "b", 3))
	assert.Equal(t, 5, c.TotalItems())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.Add(testItem(t, "a", 2))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
}

func TestRestore_DropsInvalidEntries(t *testing.T) {
	items := []Item{
		{ID: "a", Name: "A", Quantity: 2},
		{ID: "", Name: "broken", Quantity: 1},
		{ID: "b", Name: "B", Quantity: 0},
		{ID: "a", Name: "A again", Quantity: 3},
	}

	c := Restore(items)

	restored := c.Items()
	require.Len(t, restored, 1)
	assert.Equal(t, "a", restored[0].ID)
	assert.Equal(t, 5, restored[0].Quantity)
}
