package dimfield

import (
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderEnergyChart writes a PNG line chart of observable and potential
// energy across the swept dimensions. Companion to ExportCSV for quick
// inspection; the real-time renderer consumes the raw tables instead.
func RenderEnergyChart(path string, snapshots []Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	return renderEnergyChart(f, snapshots)
}

func renderEnergyChart(w io.Writer, snapshots []Snapshot) error {
	if len(snapshots) == 0 {
		return fmt.Errorf("%w: no snapshots to chart", ErrConfiguration)
	}
	xs := make([]float64, len(snapshots))
	obs := make([]float64, len(snapshots))
	pot := make([]float64, len(snapshots))
	for i, s := range snapshots {
		xs[i] = float64(s.Dimension)
		obs[i] = s.Result.Observable
		pot[i] = s.Result.Potential
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Dimension",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name: "Energy",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "observable", XValues: xs, YValues: obs},
			chart.ContinuousSeries{Name: "potential", XValues: xs, YValues: pot},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
