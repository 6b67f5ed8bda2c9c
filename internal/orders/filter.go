package orders

import (
	"sort"
	"strings"
	"unicode"

	"roscon_orders/internal/roscon"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type SortKey string

const (
	SortByDeliveryDate SortKey = "entrega"
	SortByCustomer     SortKey = "cliente"
	SortByCreated      SortKey = "creado"
)

// Query narrows and orders a list of orders. Empty fields match everything.
type Query struct {
	Search  string
	Size    roscon.Size
	Filling roscon.Filling
	Status  roscon.Status
	SortBy  SortKey
}

func (q Query) Matches(o Order) bool {
	if needle := strings.TrimSpace(q.Search); needle != "" {
		if !strings.Contains(fold(o.CustomerName), fold(needle)) && !strings.Contains(o.Phone, needle) {
			return false
		}
	}
	if q.Status != "" && o.Status != q.Status {
		return false
	}
	if q.Size == "" && q.Filling == "" {
		return true
	}
	for _, item := range LineItems(o) {
		if (q.Size == "" || item.Size == q.Size) && (q.Filling == "" || item.Filling == q.Filling) {
			return true
		}
	}
	return false
}

// Apply returns the matching orders sorted by q.SortBy (delivery date when unset).
func (q Query) Apply(list []Order) []Order {
	out := make([]Order, 0, len(list))
	for _, o := range list {
		if q.Matches(o) {
			out = append(out, o)
		}
	}

	switch q.SortBy {
	case SortByCustomer:
		sort.SliceStable(out, func(i, j int) bool {
			return fold(out[i].CustomerName) < fold(out[j].CustomerName)
		})
	case SortByCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DeliveryDate < out[j].DeliveryDate
		})
	}
	return out
}

func ParseSortKey(value string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortByDeliveryDate:
		return SortByDeliveryDate, true
	case SortByCustomer:
		return SortByCustomer, true
	case SortByCreated:
		return SortByCreated, true
	}
	return "", false
}

// fold lowercases s and strips accents so "maria" finds "María".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
