package service

import (
	"sort"
	"time"

	"github.com/andy/fatoura/internal/domain"
)

// ClientRevenue is the archived total billed to one client
type ClientRevenue struct {
	Name     string
	Invoices int
	Total    float64
}

// ArchiveSummary aggregates archived invoices
type ArchiveSummary struct {
	Year      int // 0 means all years
	Invoices  int
	Total     float64
	StampDuty float64 // Stamp duty collected on cash invoices
	ByMonth   map[time.Month]float64
	ByClient  []ClientRevenue // Highest total first
}

// Summary aggregates the archive, optionally restricted to one year.
// Archived totals are used as stored.
func (w *Workspace) Summary(year int) ArchiveSummary {
	return SummarizeArchive(w.Archive(), year)
}

// SummarizeArchive aggregates invoices issued in year, or all when year is 0
func SummarizeArchive(archive []domain.InvoiceData, year int) ArchiveSummary {
	sum := ArchiveSummary{
		Year:    year,
		ByMonth: make(map[time.Month]float64),
	}

	// Initialize all months to 0
	for m := time.January; m <= time.December; m++ {
		sum.ByMonth[m] = 0
	}

	byClient := make(map[string]*ClientRevenue)
	for _, inv := range archive {
		if year != 0 && inv.Date.Year() != year {
			continue
		}

		totals := inv.Totals()
		total := inv.StoredTotal()

		sum.Invoices++
		sum.Total += total
		sum.StampDuty += totals.StampDuty
		if !inv.Date.IsZero() {
			sum.ByMonth[inv.Date.Month()] += total
		}

		name := inv.Client.Name
		cr, ok := byClient[name]
		if !ok {
			cr = &ClientRevenue{Name: name}
			byClient[name] = cr
		}
		cr.Invoices++
		cr.Total += total
	}

	for _, cr := range byClient {
		sum.ByClient = append(sum.ByClient, *cr)
	}
	sort.Slice(sum.ByClient, func(i, j int) bool {
		if sum.ByClient[i].Total != sum.ByClient[j].Total {
			return sum.ByClient[i].Total > sum.ByClient[j].Total
		}
		return sum.ByClient[i].Name < sum.ByClient[j].Name
	})

	return sum
}
