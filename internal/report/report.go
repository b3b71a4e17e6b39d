// Package report renders repository snapshots as aligned text tables. It
// only ever consumes snapshot copies, never the store itself.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tmarbury/stockroom/internal/inventory"
)

// Items writes one row per item in snapshot order.
func Items(w io.Writer, items []inventory.Item) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tUNIT PRICE\tRECEIVED")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			item.ID, item.Name, item.Category, item.Quantity, item.UnitPrice, item.ReceivedAt)
	}
	return tw.Flush()
}

// Grouped writes a section per category, most recently received items first
// within each section.
func Grouped(w io.Writer, svc *inventory.Service) error {
	for _, category := range svc.Categories() {
		fmt.Fprintf(w, "== %s ==\n", category)
		if err := Items(w, svc.ByCategoryRecentFirst(category)); err != nil {
			return err
		}
	}
	return nil
}
