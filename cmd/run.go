package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tmarbury/stockroom/internal/inventory"
	"github.com/tmarbury/stockroom/internal/report"
	"github.com/tmarbury/stockroom/internal/store"
)

// newRunCmd creates and configures the 'run' subcommand: one full session
// against the store, ending with a restore from the snapshot it wrote.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Seed, mutate, save, and restore the inventory",
		Long: `Seeds the repository (from inventory.seed_file when configured,
otherwise with built-in sample data), applies a few mutations, saves a
snapshot, clears memory, restores from the snapshot, and prints the
resulting inventory grouped by category.`,

		RunE: runSession,
	}
	return cmd
}

func runSession(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	svc := appInstance.Service()
	logger := appInstance.Logger()
	out := cmd.OutOrStdout()

	items, err := seedItems(appInstance.Config().Inventory.SeedFile)
	if err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}
	for _, item := range items {
		if err := svc.Add(item); err != nil {
			// Duplicate sample data is survivable; anything else is not.
			if errors.Is(err, store.ErrDuplicateID) {
				logger.Warn("skipping duplicate seed item", zap.Int("id", item.ID))
				continue
			}
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	if err := mutate(svc); err != nil {
		return fmt.Errorf("apply mutations: %w", err)
	}

	fmt.Fprintln(out, "Inventory before save:")
	if err := report.Items(out, svc.Items()); err != nil {
		return err
	}

	if err := svc.Save(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	svc.Clear()
	if err := svc.Restore(); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	fmt.Fprintln(out, "\nInventory after restore, by category:")
	if err := report.Grouped(out, svc); err != nil {
		return err
	}

	threshold := appInstance.Config().Inventory.LowStockThreshold
	if low, found := svc.FirstBelowThreshold(threshold); found {
		fmt.Fprintf(out, "\nLow stock: %s (id %d) has %d left\n", low.Name, low.ID, low.Quantity)
	}
	return nil
}

// mutate exercises the update and remove paths on whatever was seeded.
func mutate(svc *inventory.Service) error {
	all := svc.Items()
	if len(all) == 0 {
		return nil
	}
	if err := svc.UpdateQuantity(all[0].ID, all[0].Quantity+10); err != nil {
		return err
	}
	if len(all) > 1 {
		if err := svc.Remove(all[len(all)-1].ID); err != nil {
			return err
		}
	}
	return nil
}

// seedItems loads records from path, or returns the built-in sample set
// when no seed file is configured.
func seedItems(path string) ([]inventory.Item, error) {
	if path == "" {
		return sampleItems()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file %s: %w", path, err)
	}
	defer f.Close()
	return inventory.ParseItems(f)
}

func sampleItems() ([]inventory.Item, error) {
	records := []struct {
		id       int
		name     string
		category string
		quantity int
		price    string
		received string
	}{
		{1, "Laptop", "electronics", 12, "899.99", "2026-08-01"},
		{2, "Smart Watch", "electronics", 3, "120.00", "2026-08-18"},
		{3, "Rice 5kg", "groceries", 40, "9.75", "2026-08-10"},
		{4, "Olive Oil 1L", "groceries", 7, "14.20", "2026-08-25"},
	}

	items := make([]inventory.Item, 0, len(records))
	for _, r := range records {
		received, err := inventory.ParseDate(r.received)
		if err != nil {
			return nil, err
		}
		price, err := inventory.PriceFromString(r.price)
		if err != nil {
			return nil, err
		}
		item, err := inventory.NewItem(r.id, r.name, r.category, r.quantity, price, received)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
