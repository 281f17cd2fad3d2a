package profit

import (
	"sort"
	"time"

	"backend/internal/model"
)

// Granularity selects the period bucket size for the dashboard chart.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is one of the supported bucket sizes.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// Placeholders for records missing a grouping field.
const (
	UnknownClient      = "Unknown"
	OtherContainerType = "Other"
)

// topGroupLimit caps the client and route rankings.
const topGroupLimit = 5

// Bucket is one period on the volume/profit chart.
type Bucket struct {
	Period time.Time `json:"period"` // period start
	Label  string    `json:"label"`
	Volume int       `json:"volume"`
	Profit float64   `json:"profit"`
}

// GroupCount is a generic name/count ranking entry.
type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary is the full dashboard rollup for one reporting year.
type Summary struct {
	Volume         int          `json:"volume"`
	Profit         float64      `json:"profit"`
	Growth         float64      `json:"growth"` // month-over-month, percent
	Buckets        []Bucket     `json:"buckets"`
	TopClients     []GroupCount `json:"top_clients"`
	TopRoutes      []GroupCount `json:"top_routes"`
	ContainerTypes []GroupCount `json:"container_types"`
}

// Aggregate rolls up a single-year snapshot into the dashboard summary.
// Records are bucketed by their loading date, falling back to the creation
// timestamp when no loading date was entered. The caller is responsible for
// restricting the snapshot to one year; Aggregate just groups what it gets.
func Aggregate(records []model.ShipmentRecord, g Granularity) Summary {
	s := Summary{
		Buckets:        []Bucket{},
		TopClients:     []GroupCount{},
		TopRoutes:      []GroupCount{},
		ContainerTypes: []GroupCount{},
	}

	monthProfit := make(map[time.Time]float64)
	bucketIdx := make(map[time.Time]int)

	for i := range records {
		r := &records[i]
		profit := NetProfit(r)
		anchor := anchorDate(r)

		s.Volume++
		s.Profit += profit

		start := periodStart(anchor, g)
		idx, ok := bucketIdx[start]
		if !ok {
			idx = len(s.Buckets)
			bucketIdx[start] = idx
			s.Buckets = append(s.Buckets, Bucket{Period: start, Label: periodLabel(start, g)})
		}
		s.Buckets[idx].Volume++
		s.Buckets[idx].Profit += profit

		// Growth is always month-over-month, whatever the chart shows.
		monthProfit[periodStart(anchor, GranularityMonth)] += profit
	}

	sort.Slice(s.Buckets, func(i, j int) bool {
		return s.Buckets[i].Period.Before(s.Buckets[j].Period)
	})

	s.Growth = monthOverMonthGrowth(monthProfit)
	s.TopClients = topGroups(records, topGroupLimit, func(r *model.ShipmentRecord) string {
		if r.Client == "" {
			return UnknownClient
		}
		return r.Client
	})
	s.TopRoutes = topGroups(records, topGroupLimit, func(r *model.ShipmentRecord) string {
		return r.PortOfLoading + " - " + r.PortOfDischarge
	})
	s.ContainerTypes = countGroups(records, func(r *model.ShipmentRecord) string {
		if r.ContainerType == "" {
			return OtherContainerType
		}
		return r.ContainerType
	})

	return s
}

// AnchorYear returns the reporting year a record belongs to: the loading
// date's year when set, otherwise the creation year. Mirrors the repository
// side year selection so both agree on which records make up a year.
func AnchorYear(r *model.ShipmentRecord) int {
	return anchorDate(r).Year()
}

func anchorDate(r *model.ShipmentRecord) time.Time {
	if r.LoadingDate != nil {
		return *r.LoadingDate
	}
	return r.CreatedAt
}

// periodStart truncates t to the start of its bucket period. Weeks start on
// Monday.
func periodStart(t time.Time, g Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case GranularityWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

func periodLabel(start time.Time, g Granularity) string {
	if g == GranularityMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

// monthOverMonthGrowth compares the two most recent populated months.
// A previous month of exactly 0 saturates to +100 rather than dividing by
// zero; fewer than two populated months reports 0.
func monthOverMonthGrowth(monthProfit map[time.Time]float64) float64 {
	if len(monthProfit) < 2 {
		return 0
	}

	months := make([]time.Time, 0, len(monthProfit))
	for m := range monthProfit {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	prev := monthProfit[months[len(months)-2]]
	curr := monthProfit[months[len(months)-1]]
	if prev == 0 {
		return 100
	}
	return (curr - prev) / prev * 100
}

// topGroups counts records per key, sorts by count descending keeping
// first-encountered order for ties, and truncates to limit.
func topGroups(records []model.ShipmentRecord, limit int, key func(*model.ShipmentRecord) string) []GroupCount {
	groups := countGroups(records, key)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	if len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// countGroups tallies records per key in first-encountered order.
func countGroups(records []model.ShipmentRecord, key func(*model.ShipmentRecord) string) []GroupCount {
	idx := make(map[string]int)
	groups := []GroupCount{}
	for i := range records {
		k := key(&records[i])
		at, ok := idx[k]
		if !ok {
			at = len(groups)
			idx[k] = at
			groups = append(groups, GroupCount{Name: k})
		}
		groups[at].Count++
	}
	return groups
}
