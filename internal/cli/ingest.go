package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	derrors "signaldesk/internal/errors"
	"signaldesk/internal/models"
)

// snapshotFile is the upstream snapshot format: the idea collection plus
// optional market data used only to backfill missing current prices.
type snapshotFile struct {
	Ideas  []models.TradeIdea `json:"ideas"`
	Quotes []models.Quote     `json:"quotes,omitempty"`
}

// validateIdea rejects records the desk cannot use at all. Recoverable
// oddities (unknown status strings, zero timestamps) are normalized or
// flagged downstream instead; only a record with no tradable identity is
// refused here.
func validateIdea(idea models.TradeIdea) error {
	if strings.TrimSpace(idea.Symbol) == "" {
		return derrors.NewRecordError(idea.ID, idea.Symbol, "symbol", "empty", derrors.ErrMalformedRecord)
	}
	if idea.EntryPrice < 0 || idea.TargetPrice < 0 || idea.StopLoss < 0 {
		return derrors.NewRecordError(idea.ID, idea.Symbol, "prices", "negative", derrors.ErrMalformedRecord)
	}
	return nil
}

func newIngestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file.json>",
		Short: "Load an upstream idea snapshot into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading snapshot: %w", err)
			}

			var snap snapshotFile
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parsing snapshot: %w", err)
			}
			if len(snap.Ideas) == 0 {
				output.Warning("snapshot contains no ideas")
				return nil
			}

			ideas := make([]models.TradeIdea, 0, len(snap.Ideas))
			for _, idea := range snap.Ideas {
				if err := validateIdea(idea); err != nil {
					if derrors.Is(err, derrors.ErrMalformedRecord) {
						output.Warning("skipping %v", err)
						continue
					}
					return err
				}
				ideas = append(ideas, idea)
			}
			if len(ideas) == 0 {
				output.Warning("no usable ideas in snapshot")
				return nil
			}

			models.BackfillPrices(ideas, snap.Quotes)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			written, err := app.Store.SaveIdeas(ctx, ideas)
			if err != nil {
				return fmt.Errorf("saving ideas: %w", err)
			}

			if skipped := len(snap.Ideas) - written; skipped > 0 {
				output.Warning("skipped %d malformed records", skipped)
			}
			output.Success("ingested %d ideas from %s", written, args[0])
			return nil
		},
	}
}
