package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"signaldesk/internal/desk"
	"signaldesk/internal/models"
)

func newIdeasCmd(app *App) *cobra.Command {
	var criteria desk.Criteria
	var expiry, timeframe string
	var limit int

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "List trade ideas",
		Long:  "Filter, rank and display the stored trade ideas the way the desk views do.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			ideas, err := app.Store.ListIdeas(ctx)
			if err != nil {
				return fmt.Errorf("loading ideas: %w", err)
			}

			criteria.Expiry = desk.ExpiryBucket(expiry)
			criteria.Timeframe = desk.Timeframe(timeframe)
			now := time.Now()
			window := desk.NewWindow(limit, limit)
			view := desk.BuildView(ideas, criteria, window, now)

			if output.IsJSON() {
				return output.JSON(view)
			}

			color.Cyan("Trade Ideas")
			output.Dim("active %d | resolved %d", view.ActiveTotal, view.ResolvedTotal)
			output.Println()

			renderIdeas(output, view.Visible, now)
			if view.ActiveTotal > len(view.Visible) {
				output.Dim("... %d more active ideas", view.ActiveTotal-len(view.Visible))
			}

			if len(view.Resolved) > 0 {
				output.Println()
				output.Bold("Resolved")
				renderIdeas(output, view.Resolved, now)
			}

			output.Println()
			renderGroups(output, view.Groups)
			return nil
		},
	}

	cmd.Flags().StringVar(&criteria.Search, "search", "", "Substring match on symbol or catalyst")
	cmd.Flags().StringVar(&criteria.Direction, "direction", "", "long, short or day_trade")
	cmd.Flags().StringVar(&criteria.Source, "source", "", "Idea source engine")
	cmd.Flags().StringVar(&criteria.AssetType, "asset", "", "stock, penny_stock, option or crypto")
	cmd.Flags().StringVar(&criteria.Grade, "grade", "", "Probability band prefix (e.g. A)")
	cmd.Flags().StringVar(&criteria.DatePreset, "range", "", "Posted range: today, 7d, 30d, 3m, 1y")
	cmd.Flags().StringVar(&criteria.StatusView, "status", "", "published, draft or all")
	cmd.Flags().StringVar(&criteria.Symbol, "symbol", "", "Symbol match")
	cmd.Flags().StringVar(&criteria.View, "view", "", "active, won, lost or expired")
	cmd.Flags().StringVar(&expiry, "expiry", "", "Expiry bucket: expired, 7d, 14d, 30d, 90d, leaps")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "Horizon: today, few_days, next_week, next_month")
	cmd.Flags().IntVar(&limit, "limit", 20, "Active ideas to show")

	return cmd
}

func renderIdeas(output *Output, ideas []models.TradeIdea, now time.Time) {
	if len(ideas) == 0 {
		output.Dim("no ideas match")
		return
	}
	table := NewTable(output, "", "Symbol", "Dir", "Asset", "Grade", "Entry", "Target", "Stop", "R:R", "Score", "Age", "Status")
	for _, idea := range ideas {
		table.AddRow(
			tierMarker(output, idea, now),
			idea.Symbol,
			string(idea.Direction),
			string(idea.AssetType),
			idea.ProbabilityBand,
			FormatPrice(idea.EntryPrice),
			FormatPrice(idea.TargetPrice),
			FormatPrice(idea.StopLoss),
			fmt.Sprintf("%.1f", idea.RiskRewardRatio),
			fmt.Sprintf("%.0f", desk.PriorityScore(idea)),
			FormatAge(idea.Timestamp, now),
			statusCell(output, idea),
		)
	}
	table.Render()
}

func tierMarker(output *Output, idea models.TradeIdea, now time.Time) string {
	switch desk.Tier(idea, now) {
	case desk.TierFresh:
		return output.Green("*")
	case desk.TierActive:
		return " "
	default:
		return output.DimText("x")
	}
}

func statusCell(output *Output, idea models.TradeIdea) string {
	switch idea.Outcome() {
	case models.StatusHitTarget:
		return output.Green("won")
	case models.StatusHitStop:
		return output.Red("lost")
	case models.StatusExpired:
		return output.DimText("expired")
	default:
		return "open"
	}
}

func renderGroups(output *Output, groups map[models.AssetType]desk.GroupStats) {
	if len(groups) == 0 {
		return
	}
	assets := make([]string, 0, len(groups))
	for asset := range groups {
		assets = append(assets, string(asset))
	}
	sort.Strings(assets)

	output.Bold("By instrument class")
	table := NewTable(output, "Asset", "Ideas", "Closed", "Win rate", "Net P/L", "Avg R:R")
	for _, asset := range assets {
		g := groups[models.AssetType(asset)]
		table.AddRow(
			asset,
			fmt.Sprintf("%d", g.Ideas),
			fmt.Sprintf("%d", g.ClosedCount),
			FormatPercent(g.WinRate),
			FormatPnL(g.NetPnL),
			fmt.Sprintf("%.1f", g.AvgRiskReward),
		)
	}
	table.Render()
}
