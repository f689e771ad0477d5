// Package filter narrows a record collection by exact-match date and/or
// site. Both dimensions are optional and independent, so filters compose
// in any order.
package filter

import (
	"sort"

	"wellness-report/models"
	"wellness-report/parser"
)

// Apply keeps the records matching the given date and site. An empty
// date or site means no constraint on that dimension; the site sentinels
// "All"/"Todas" also mean unconstrained. Matching is exact equality
// after date normalization, never a range. The input is not mutated and
// the surviving order is preserved.
func Apply(records []models.ShiftRecord, date, site string) []models.ShiftRecord {
	date = parser.NormalizeDate(date)
	if !siteConstrains(site) {
		site = ""
	}

	out := make([]models.ShiftRecord, 0, len(records))
	for _, rec := range records {
		if date != "" && rec.Date != date {
			continue
		}
		if site != "" && rec.Site != site {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ByDate keeps records on exactly the given date.
func ByDate(records []models.ShiftRecord, date string) []models.ShiftRecord {
	return Apply(records, date, "")
}

// BySite keeps records at exactly the given site.
func BySite(records []models.ShiftRecord, site string) []models.ShiftRecord {
	return Apply(records, "", site)
}

// ByEmployee keeps one employee's records, for "my records" views.
func ByEmployee(records []models.ShiftRecord, name string) []models.ShiftRecord {
	if name == "" {
		return []models.ShiftRecord{}
	}
	out := make([]models.ShiftRecord, 0, len(records))
	for _, rec := range records {
		if rec.EmployeeName == name {
			out = append(out, rec)
		}
	}
	return out
}

// Sites returns the sorted unique non-empty site identifiers present in
// the collection, as offered by the per-site report picker.
func Sites(records []models.ShiftRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.Site != "" {
			seen[rec.Site] = struct{}{}
		}
	}
	sites := make([]string, 0, len(seen))
	for s := range seen {
		sites = append(sites, s)
	}
	sort.Strings(sites)
	return sites
}

func siteConstrains(site string) bool {
	switch site {
	case "", "All", "Todas":
		return false
	}
	return true
}
