package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/menu"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/service"
)

var menuFlags struct {
	category string
	search   string
	sort     string
	popular  bool
	special  bool
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Filter and sort the catalog and print the result as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}

		sortMode, err := menu.ParseSortMode(menuFlags.sort)
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		svc := service.NewMenuService(repository.NewInMemoryDishRepository(cat))
		dishes, err := svc.Query(cmd.Context(), menu.Query{
			Category:    menuFlags.category,
			Search:      menuFlags.search,
			Sort:        sortMode,
			PopularOnly: menuFlags.popular,
			SpecialOnly: menuFlags.special,
		})
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), dishes)
	},
}

var quoteFlags struct {
	packageID int64
	guests    int
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Estimate the price of a private event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}

		svc := service.NewEventService(
			repository.NewInMemoryPackageRepository(events.DefaultPackages()),
			events.NewCalculator(cfg.Events.PerGuestSurcharge),
		)

		quote, err := svc.Quote(cmd.Context(), quoteFlags.packageID, quoteFlags.guests)
		if err != nil {
			return err
		}
		if !quote.Available {
			fmt.Fprintln(cmd.ErrOrStderr(), "no package selected, pricing on request")
		}

		return printJSON(cmd.OutOrStdout(), quote)
	},
}

func init() {
	f := menuCmd.Flags()
	f.StringVar(&menuFlags.category, "category", menu.AllCategories, "category id, or all")
	f.StringVar(&menuFlags.search, "search", "", "case-insensitive text to find in name or description")
	f.StringVar(&menuFlags.sort, "sort", string(menu.SortDefault), "default, rating, price-low or price-high")
	f.BoolVar(&menuFlags.popular, "popular", false, "only popular dishes")
	f.BoolVar(&menuFlags.special, "special", false, "only chef's specials")

	q := quoteCmd.Flags()
	q.Int64Var(&quoteFlags.packageID, "package", 0, "event package id (0 for none)")
	q.IntVar(&quoteFlags.guests, "guests", 0, "number of guests")
	_ = quoteCmd.MarkFlagRequired("guests")
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
