package renderer

import (
	"strings"
	"testing"
	"time"
)

func TestRenderStatsAdd(t *testing.T) {
	stats := RenderStats{}
	stats.Add(RowStats{Row: 0, Samples: 10})
	stats.Add(RowStats{Row: 1, Samples: 10, NaNPixels: 2})

	if stats.Rows != 2 || stats.TotalSamples != 20 || stats.NaNPixels != 2 {
		t.Errorf("unexpected totals: %+v", stats)
	}
}

func TestRenderStatsSamplesPerSecond(t *testing.T) {
	stats := RenderStats{TotalSamples: 500, Duration: 2 * time.Second}
	if got := stats.SamplesPerSecond(); got != 250 {
		t.Errorf("expected 250 rays/s, got %v", got)
	}
	if got := (RenderStats{TotalSamples: 5}).SamplesPerSecond(); got != 0 {
		t.Errorf("expected 0 for zero duration, got %v", got)
	}
}

func TestRenderStatsTable(t *testing.T) {
	stats := RenderStats{Width: 40, Height: 20, SamplesPerPixel: 4, Workers: 2, Rows: 20}
	table := stats.Table()

	for _, want := range []string{"Resolution", "40x20", "Samples per pixel", "Workers"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}
