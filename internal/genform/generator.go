// Package genform generates synthetic form-responses workbooks for testing
// the allocation pipeline against realistic season shapes.
package genform

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/athid/kallelse/pkg/logger"
)

// Sheet name matching the allocation tool's default input.
const sheetName = "Formulärsvar 1 (exakt)"

// firstNames seeds the synthetic roster.
var firstNames = []string{
	"Alva", "Boel", "Cleo", "Dana", "Elin", "Freja", "Greta", "Hedda",
	"Ines", "Juni", "Klara", "Lovisa", "Maja", "Nora", "Olivia", "Pia",
	"Rut", "Saga", "Tuva", "Ulla", "Vera", "Wilma", "Ylva", "Zelda",
}

// opponents seeds the synthetic schedule.
var opponents = []string{
	"Hammarby", "AIK", "Nacka", "Huddinge", "Täby", "Sollentuna",
	"Järfälla", "Lidingö", "Salem", "Väsby",
}

// Run generates a workbook according to cfg.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("genform")

	if cfg.Players <= 0 || cfg.HomeMatches+cfg.AwayMatches <= 0 {
		return ErrInvalidShape
	}
	if cfg.Output == "" {
		cfg.Output = fmt.Sprintf("form_responses_%s.xlsx", uuid.NewString())
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible workbooks

	headers := []interface{}{"Spelare", "Barnets namn", "Målvakt", "Reserv"}
	titles := matchTitles(rng, cfg.HomeMatches, cfg.AwayMatches)
	for _, t := range titles {
		headers = append(headers, t)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteForm, err)
	}
	if err := setRow(f, 1, headers); err != nil {
		return err
	}

	for i := 0; i < cfg.Players; i++ {
		row := []interface{}{
			i + 1,
			playerName(i),
			yesNo(rng.Float64() < cfg.GKShare),
			yesNo(rng.Float64() < cfg.ReserveShare),
		}
		for range titles {
			row = append(row, yesNo(rng.Float64() < cfg.AvailabilityRate))
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(cfg.Output); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWriteForm, cfg.Output, err)
	}

	log.Info(ctx, "generated form workbook",
		logger.String("output", cfg.Output),
		logger.Int("players", cfg.Players),
		logger.Int("matches", len(titles)))
	return nil
}

// matchTitles interleaves home and away columns in schedule order.
func matchTitles(rng *rand.Rand, home, away int) []string {
	titles := make([]string, 0, home+away)
	h, a := home, away
	for i := 0; h > 0 || a > 0; i++ {
		opponent := opponents[rng.Intn(len(opponents))]
		// Alternate venues while either remains.
		if (i%2 == 0 && h > 0) || a == 0 {
			titles = append(titles, fmt.Sprintf("Match %d mot %s (Hemma)", i+1, opponent))
			h--
		} else {
			titles = append(titles, fmt.Sprintf("Match %d mot %s (Borta)", i+1, opponent))
			a--
		}
	}
	return titles
}

func playerName(i int) string {
	name := firstNames[i%len(firstNames)]
	if i >= len(firstNames) {
		return fmt.Sprintf("%s %d", name, i/len(firstNames)+1)
	}
	return name
}

func yesNo(v bool) string {
	if v {
		return "Ja"
	}
	return "Nej"
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteForm, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteForm, err)
	}
	return nil
}
