package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RowStats contains statistics for a single rendered row
type RowStats struct {
	Row       int // Camera row j
	Samples   int // Camera rays traced
	NaNPixels int // Pixels whose sum contained a NaN
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	Rows            int           // Rows completed
	TotalSamples    int           // Total camera rays traced
	NaNPixels       int           // Pixels that produced NaN and were written as black
	Duration        time.Duration // Wall clock render time
}

// Add accumulates a finished row
func (s *RenderStats) Add(row RowStats) {
	s.Rows++
	s.TotalSamples += row.Samples
	s.NaNPixels += row.NaNPixels
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// Table renders the statistics as a text table
func (s RenderStats) Table() string {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Samples per pixel", fmt.Sprint(s.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprint(s.MaxDepth)})
	table.Append([]string{"Workers", fmt.Sprint(s.Workers)})
	table.Append([]string{"Rows", fmt.Sprint(s.Rows)})
	table.Append([]string{"Camera rays", fmt.Sprint(s.TotalSamples)})
	table.Append([]string{"NaN pixels", fmt.Sprint(s.NaNPixels)})
	table.Append([]string{"Render time", s.Duration.Round(time.Millisecond).String()})
	table.Append([]string{"Rays per second", fmt.Sprintf("%.0f", s.SamplesPerSecond())})
	table.Render()
	return buf.String()
}
