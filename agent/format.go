package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/corpfacts/core"
	"github.com/poiesic/corpfacts/storage"
)

const dateLayout = "2006-01-02"

func formatBatch(batch *core.Batch) string {
	var b strings.Builder
	for _, record := range batch.Records {
		fmt.Fprintf(&b, "- %s\n", record.Name)
		if len(record.Founders) > 0 {
			fmt.Fprintf(&b, "  Founded by: %s\n", strings.Join(record.Founders, ", "))
		}
		if record.HasFoundingDate() {
			fmt.Fprintf(&b, "  Founded: %s\n", record.FoundingDate.Format(dateLayout))
		}
	}
	return b.String()
}

func formatCompanies(companies []*core.Company) string {
	var b strings.Builder
	for _, company := range companies {
		fmt.Fprintf(&b, "- %s (ID: %d)\n", company.Name, company.Id)
		if len(company.Founders) > 0 {
			fmt.Fprintf(&b, "  Founded by: %s\n", strings.Join(company.Founders, ", "))
		}
		if company.FoundingDate != nil {
			fmt.Fprintf(&b, "  Founded: %s\n", company.FoundingDate.Format(dateLayout))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatDetails(company *core.Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company Details for '%s':\n", company.Name)
	fmt.Fprintf(&b, "ID: %d\n", company.Id)
	fmt.Fprintf(&b, "Name: %s\n", company.Name)
	if company.FoundingDate != nil {
		fmt.Fprintf(&b, "Founded: %s\n", company.FoundingDate.Format(dateLayout))
	}
	if len(company.Founders) > 0 {
		fmt.Fprintf(&b, "Founded by: %s\n", strings.Join(company.Founders, ", "))
	}
	fmt.Fprintf(&b, "Created: %s\n", company.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Updated: %s\n", company.UpdatedAt.Format(time.RFC3339))
	return b.String()
}

func formatStats(stats *storage.Stats) string {
	var b strings.Builder
	b.WriteString("Database Statistics:\n")
	fmt.Fprintf(&b, "Total Companies: %d\n", stats.TotalCompanies)
	fmt.Fprintf(&b, "Total Founders: %d\n", stats.TotalFounders)
	fmt.Fprintf(&b, "Companies with Founding Dates: %d\n", stats.WithDates)
	fmt.Fprintf(&b, "Companies without Founding Dates: %d\n", stats.WithoutDates)
	return b.String()
}
