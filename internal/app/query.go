package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hitoshi/raidboard/internal/board"
	"github.com/hitoshi/raidboard/internal/catalog"
	"github.com/hitoshi/raidboard/internal/config"
	"github.com/hitoshi/raidboard/internal/gamedata"
	"github.com/hitoshi/raidboard/internal/listing"
	"github.com/hitoshi/raidboard/internal/model"
)

// runQuery はカタログを検索し、結果を表形式で out に書き出す。
// 検索条件の解釈はHTTPの検索APIと同じ。
func runQuery(ctx context.Context, out io.Writer, cfg *config.Config, args []string) error {
	return runQueryAt(ctx, out, cfg, args, time.Now)
}

func runQueryAt(ctx context.Context, out io.Writer, cfg *config.Config, args []string, now func() time.Time) error {
	opts, err := ParseQueryArgs(args, out)
	if err != nil {
		return err
	}

	store, err := openCatalog(ctx, cfg, now)
	if err != nil {
		return err
	}
	defer store.close()

	pageSize := cfg.PageSize
	if opts.PageSize > 0 {
		pageSize = opts.PageSize
	}
	service := board.NewService(store.repo, nil,
		board.WithClock(now),
		board.WithPageSize(pageSize),
		board.WithSourceName(cfg.CatalogSource),
	)

	refNow := service.Now()
	req, err := board.ParseSearchRequest(opts.Values, refNow, cfg.Location)
	if err != nil {
		return err
	}
	result, err := service.Search(catalog.WithReferenceTime(ctx, refNow), req)
	if err != nil {
		return err
	}

	return writeListingTable(out, result, cfg.Location)
}

// writeListingTable は検索結果を表形式で書き出す。
func writeListingTable(out io.Writer, result *board.SearchResult, loc *time.Location) error {
	if result.TotalCount == 0 {
		_, err := fmt.Fprintln(out, board.EmptyResultMessage)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRAID\tDIFFICULTY\tPRICE\tMARKET\tSCHEDULE\tBOSSES\tOPEN\tPOSTER")
	for _, l := range result.Listings {
		market := listing.CompareToMarket(l.Price, l.MarketAveragePrice)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID,
			l.RaidName,
			gamedata.DifficultyLabel(l.Difficulty),
			listing.FormatGold(l.Price),
			fmt.Sprintf("%s %+.1f%%", market.Position, market.DeviationPercent),
			scheduleCell(l, result.Now, loc),
			listing.BossCountLabel(l),
			openSlotsCell(l),
			fmt.Sprintf("%s (%d)", l.Poster.Name, l.Poster.Karma),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\npage %d/%d, %d listings, sort %s\n",
		result.Page, result.TotalPages, result.TotalCount, result.Sort)
	return err
}

func scheduleCell(l model.Listing, now time.Time, loc *time.Location) string {
	if l.ScheduledTime == nil {
		return "-"
	}
	return listing.ScheduleLabel(*l.ScheduledTime, now, loc) + " " + listing.ScheduleClock(*l.ScheduledTime, loc)
}

// openSlotsCell は空き枠を "T1 H2 D4" 形式で返す。
func openSlotsCell(l model.Listing) string {
	open := listing.OpenSlots(l)
	parts := make([]string, 0, 3)
	for _, role := range []model.Role{model.RoleTank, model.RoleHealer, model.RoleDPS} {
		if n, ok := open[role]; ok {
			parts = append(parts, fmt.Sprintf("%s%d", strings.ToUpper(string(role)[:1]), n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
