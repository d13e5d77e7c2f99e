package report

import (
	"sync"

	"github.com/pkg/errors"
	charts "github.com/vicanso/go-charts/v2"

	"madurez42001/internal/model"
)

const (
	radarSize   = 600
	barWidth    = 600
	barHeight   = 420
	donutWidth  = 600
	donutHeight = 420

	scaleCeiling = float64(model.ScaleMax)
)

var setupOnce sync.Once

// Setup performs the one-time, process-wide renderer initialization. It is
// idempotent; every render path calls it so a missed startup call cannot
// leave the renderer unconfigured.
func Setup() {
	setupOnce.Do(func() {
		charts.SetDefaultWidth(barWidth)
		charts.SetDefaultHeight(barHeight)
	})
}

// RenderedCharts holds the rasterized PNG images of the results view.
type RenderedCharts struct {
	Radar []byte
	Bars  []byte
	Donut []byte
}

// Render rasterizes the snapshot's three charts to PNG.
func (s *Service) Render(snap *model.Snapshot) (*RenderedCharts, error) {
	Setup()

	radar, err := renderRadar(snap.Radar)
	if err != nil {
		return nil, errors.Wrap(err, "report: radar render")
	}
	bars, err := renderBars(snap.Bars)
	if err != nil {
		return nil, errors.Wrap(err, "report: bar render")
	}
	donut, err := renderDonut(snap.Distribution)
	if err != nil {
		return nil, errors.Wrap(err, "report: donut render")
	}

	return &RenderedCharts{
		Radar: radar,
		Bars:  bars,
		Donut: donut,
	}, nil
}

func renderRadar(ds model.ChartDataset) ([]byte, error) {
	maxes := make([]float64, len(ds.Labels))
	for i := range maxes {
		maxes[i] = scaleCeiling
	}
	p, err := charts.RadarRender(
		[][]float64{ds.Values},
		charts.TitleTextOptionFunc("Análisis por Componentes"),
		charts.RadarIndicatorOptionFunc(ds.Labels, maxes),
		charts.WidthOptionFunc(radarSize),
		charts.HeightOptionFunc(radarSize),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func renderBars(ds model.ChartDataset) ([]byte, error) {
	p, err := charts.BarRender(
		[][]float64{ds.Values},
		charts.TitleTextOptionFunc("Comparación de Puntuaciones"),
		charts.XAxisDataOptionFunc(ds.Labels),
		charts.WidthOptionFunc(barWidth),
		charts.HeightOptionFunc(barHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func renderDonut(ds model.ChartDataset) ([]byte, error) {
	p, err := charts.PieRender(
		ds.Values,
		charts.TitleTextOptionFunc("Distribución de Madurez"),
		charts.LegendLabelsOptionFunc(ds.Labels),
		charts.PieSeriesShowLabel(),
		charts.WidthOptionFunc(donutWidth),
		charts.HeightOptionFunc(donutHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}
