package orders

import (
	"testing"
	"time"

	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []Order) []string {
	out := make([]string, len(list))
	for i, o := range list {
		out[i] = o.ID
	}
	return out
}

func filterFixture() []Order {
	list := SampleOrders(fixedNow)
	list = append(list, Order{
		ID:           "5",
		CustomerName: "álvaro",
		Phone:        "699999999",
		DeliveryDate: "2025-01-05",
		Status:       roscon.StatusDelivered,
		CreatedAt:    fixedNow.Add(time.Hour),
		Contents: Itemized{Items: []LineItem{
			NewLineItem(roscon.SizeMini, roscon.FillingCustard, 2),
			NewLineItem(roscon.SizeLarge, roscon.FillingTruffle, 1),
		}},
		Price: decimal.NewFromInt(49),
	})
	return list
}

func TestQuerySearchIgnoresAccentsAndCase(t *testing.T) {
	list := filterFixture()

	assert.Equal(t, []string{"1"}, ids(Query{Search: "maria"}.Apply(list)))
	assert.Equal(t, []string{"3"}, ids(Query{Search: "MARTÍNEZ"}.Apply(list)))
	assert.Equal(t, []string{"5"}, ids(Query{Search: "Alvaro"}.Apply(list)))
	assert.Equal(t, []string{"4"}, ids(Query{Search: "600111"}.Apply(list)))
	assert.Empty(t, Query{Search: "nadie"}.Apply(list))
}

func TestQueryFiltersOnAnyLineItem(t *testing.T) {
	list := filterFixture()

	assert.ElementsMatch(t, []string{"1", "2", "5"}, ids(Query{Size: roscon.SizeLarge}.Apply(list)))
	assert.ElementsMatch(t, []string{"2", "5"}, ids(Query{Filling: roscon.FillingTruffle}.Apply(list)))
	assert.Equal(t, []string{"5"}, ids(Query{Size: roscon.SizeMini, Filling: roscon.FillingCustard}.Apply(list)))
	assert.Empty(t, Query{Size: roscon.SizeMini, Filling: roscon.FillingTruffle}.Apply(list))
	assert.Equal(t, []string{"3"}, ids(Query{Status: roscon.StatusPreparing}.Apply(list)))
}

func TestQuerySorting(t *testing.T) {
	list := filterFixture()

	byDate := Query{}.Apply(list)
	require.Len(t, byDate, 5)
	assert.Equal(t, []string{"3", "5", "1", "2", "4"}, ids(byDate))

	assert.Equal(t, []string{"5", "3", "2", "1", "4"}, ids(Query{SortBy: SortByCustomer}.Apply(list)))
	assert.Equal(t, "5", Query{SortBy: SortByCreated}.Apply(list)[0].ID)
}

func TestParseSortKey(t *testing.T) {
	key, ok := ParseSortKey("")
	assert.True(t, ok)
	assert.Equal(t, SortByDeliveryDate, key)

	key, ok = ParseSortKey(" Cliente ")
	assert.True(t, ok)
	assert.Equal(t, SortByCustomer, key)

	_, ok = ParseSortKey("precio")
	assert.False(t, ok)
}

func TestUrgent(t *testing.T) {
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	assert.True(t, Order{DeliveryDate: "2025-01-06", Status: roscon.StatusPending}.Urgent(now))
	assert.True(t, Order{DeliveryDate: "2025-01-04", Status: roscon.StatusReady}.Urgent(now))
	assert.False(t, Order{DeliveryDate: "2025-01-07", Status: roscon.StatusPending}.Urgent(now))
	assert.False(t, Order{DeliveryDate: "2025-01-05", Status: roscon.StatusDelivered}.Urgent(now))
	assert.False(t, Order{DeliveryDate: "mañana", Status: roscon.StatusPending}.Urgent(now))
}
