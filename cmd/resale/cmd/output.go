package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	apiclient "github.com/Joshspeakman/ebay-resale-analyzer/internal/api/client"
	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printReport(w io.Writer, report *apiclient.AnalyzeReport) error {
	tw := newTabWriter(w)

	item := &report.Item
	tw.writef("Item:\t%s\n", item.ItemName)
	if item.Brand != "" {
		tw.writef("Brand:\t%s\n", item.Brand)
	}
	if item.Model != "" {
		tw.writef("Model:\t%s\n", item.Model)
	}
	tw.writef("Category:\t%s\n", categoryLabel(item))
	tw.writef("ID Confidence:\t%.0f%%\n", item.Confidence*100)
	if len(item.SpecialAttributes) > 0 {
		tw.writef("Notable:\t%s\n", strings.Join(item.SpecialAttributes, ", "))
	}

	market := &report.Market
	tw.writef("\n")
	tw.writef("Sold Listings:\t%s\n", countLabel(market.SoldCount))
	tw.writef("Active Listings:\t%s\n", countLabel(market.ActiveCount))
	tw.writef("Data Source:\t%s\n", market.DataSource)
	if market.SourceNote != "" {
		tw.writef("Note:\t%s\n", market.SourceNote)
	}

	if err := tw.finish(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := printRecommendation(w, &report.Recommendation); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nVision cost: $%.4f (%d tokens)\n", report.Usage.CostUSD, report.Usage.TotalTokens)
	return nil
}

func printRecommendation(w io.Writer, rec *domain.PriceRecommendation) error {
	tw := newTabWriter(w)
	tw.writef("Suggested Price:\t%s\n", priceLabel(rec.SuggestedPrice))
	tw.writef("Quick Sale:\t%s\n", priceLabel(rec.QuickSalePrice))
	tw.writef("Premium:\t%s\n", priceLabel(rec.PremiumPrice))
	tw.writef("Confidence:\t%s\n", rec.Confidence)
	for i, m := range rec.Methodology {
		if i == 0 {
			tw.writef("Methodology:\t%s\n", m)
		} else {
			tw.writef("\t%s\n", m)
		}
	}
	return tw.finish()
}

func printStatistics(w io.Writer, result *apiclient.StatisticsResult) error {
	tw := newTabWriter(w)
	tw.writef("Median:\t$%.2f\n", result.Distribution.Median)
	tw.writef("Mode:\t$%.2f\n", result.Distribution.Mode)
	tw.writef("Mean:\t$%.2f\n", result.Distribution.Mean)
	tw.writef("Std Dev:\t$%.2f\n", result.Distribution.StdDev)
	tw.writef("Samples:\t%d\n", len(result.Filtered))
	if result.OutlierCount > 0 {
		tw.writef("Outliers Removed:\t%d\n", result.OutlierCount)
	}
	return tw.finish()
}

func printQuota(w io.Writer, status *apiclient.QuotaStatus) error {
	tw := newTabWriter(w)
	tw.writef("Provider:\t%s\n", status.Provider)
	tw.writef("Rate Limited:\t%v\n", status.RateLimited)
	if status.RateLimited {
		tw.writef("Daily Budget:\t%d\n", status.DailyBudget)
		tw.writef("Used:\t%d\n", status.Used)
		tw.writef("Remaining:\t%d\n", status.Remaining)
		if status.ResetAt != nil {
			tw.writef("Resets:\t%s\n", status.ResetAt.Format("2006-01-02 15:04:05 MST"))
		}
	}
	return tw.finish()
}

func priceLabel(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *p)
}

func countLabel(n int) string {
	if n == domain.CountUnavailable {
		return "unavailable"
	}
	return fmt.Sprintf("%d", n)
}

func categoryLabel(item *domain.ItemIdentification) string {
	if item.Subcategory != "" {
		return item.Category + " / " + item.Subcategory
	}
	return item.Category
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
