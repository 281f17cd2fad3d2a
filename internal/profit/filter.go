package profit

import (
	"strings"

	"backend/internal/model"
)

// FilterAll is the sentinel matching every value of an exact-match filter.
const FilterAll = "all"

// Filter is the working-subset selection the list view applies before
// pagination. All predicates are ANDed; zero values match everything.
type Filter struct {
	// Search matches case-insensitively as a substring of booking no,
	// business no, container no, shipper or client.
	Search string
	// ContainerType matches exactly, or everything when "all"/empty.
	ContainerType string
	// Client matches exactly, or everything when "all"/empty.
	Client string
}

// Apply returns the records matching the filter, preserving input order.
func Apply(records []model.ShipmentRecord, f Filter) []model.ShipmentRecord {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	matched := make([]model.ShipmentRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !matchesSearch(&r, search) {
			continue
		}
		if !matchesExact(r.ContainerType, f.ContainerType) {
			continue
		}
		if !matchesExact(r.Client, f.Client) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func matchesSearch(r *model.ShipmentRecord, query string) bool {
	for _, field := range []string{r.BookingNo, r.BusinessNo, r.ContainerNo, r.Shipper, r.Client} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesExact(value, want string) bool {
	return want == "" || want == FilterAll || value == want
}
