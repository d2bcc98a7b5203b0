package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/caseline/caseline/internal/config"
	"github.com/caseline/caseline/internal/models"
	"github.com/caseline/caseline/internal/timeline"
)

func newProcessCmd() *cobra.Command {
	var (
		sortDir   string
		show      []string
		asJSON    bool
		assignIDs bool
		pageSize  int
	)

	cmd := &cobra.Command{
		Use:   "process [items.json]",
		Short: "Process a batch of timeline items",
		Long:  "Process a JSON array of timeline items and render the resulting view.\nReads from the file argument, or stdin when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			var items []models.TimelineItem
			if err := json.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("failed to decode items: %w", err)
			}

			if assignIDs {
				for i := range items {
					if items[i].ID == "" {
						items[i].ID = uuid.New().String()
					}
				}
			}
			for i := range items {
				if err := items[i].Validate(); err != nil {
					return fmt.Errorf("items[%d]: %w", i, err)
				}
			}

			cfg := GetConfig()
			if !cmd.Flags().Changed("sort") {
				sortDir = cfg.Timeline.SortDirection
			}
			dir := models.SortDirection(sortDir)
			switch dir {
			case models.SortNewestFirst, models.SortOldestFirst:
				// ok
			default:
				return fmt.Errorf("sort must be newest-first or oldest-first")
			}

			vis, err := visibilityFromFlags(cfg, show)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("page-size") {
				pageSize = cfg.Timeline.PageSize
			}

			source, err := timeline.NewMemorySource(items...)
			if err != nil {
				return err
			}

			processor := timeline.NewProcessor(cfg)
			view := timeline.NewView()

			// Page through the source the way the panel does, newest
			// first, unbounded reference to start.
			ctx := context.Background()
			var before time.Time
			for {
				page, hasMore, err := source.FetchPage(ctx, before, pageSize)
				if err != nil {
					return err
				}
				if len(page) == 0 {
					break
				}
				view.Append(processor.ProcessBatch(page))
				if !hasMore {
					break
				}
				before = page[len(page)-1].CreatedDate
			}

			visible := view.Visible(vis, dir)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(visible)
			}

			renderTimeline(cmd.OutOrStdout(), visible)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortDir, "sort", "", "sort direction (newest-first, oldest-first)")
	cmd.Flags().StringSliceVar(&show, "show", nil, "categories to show (email, public, internal, system)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit processed items as JSON")
	cmd.Flags().BoolVar(&assignIDs, "assign-ids", false, "generate identifiers for items missing one")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "fetch batch size")

	return cmd
}

func visibilityFromFlags(cfg *config.Config, show []string) (models.CategoryVisibility, error) {
	if len(show) == 0 {
		return models.CategoryVisibility{
			Email:    cfg.Timeline.ShowEmail,
			Public:   cfg.Timeline.ShowPublic,
			Internal: cfg.Timeline.ShowInternal,
			System:   cfg.Timeline.ShowSystem,
		}, nil
	}

	var vis models.CategoryVisibility
	for _, name := range show {
		switch models.Category(name) {
		case models.CategoryEmail:
			vis.Email = true
		case models.CategoryPublic:
			vis.Public = true
		case models.CategoryInternal:
			vis.Internal = true
		case models.CategorySystem:
			vis.System = true
		default:
			return vis, fmt.Errorf("unknown category %q", name)
		}
	}
	return vis, nil
}
