package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madurez42001/internal/catalog"
	"madurez42001/internal/report"
	"madurez42001/internal/scoring"
)

func newTestService(t *testing.T) (*Service, *report.Service, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	reports := report.NewService(cat, scoring.NewEngine(cat))
	return NewService(cat, reports), reports, cat
}

func fullResponses(cat *catalog.Catalog, value int) map[string]int {
	responses := make(map[string]int)
	for _, section := range cat.Sections() {
		for _, q := range section.Questions {
			responses[q.ID] = value
		}
	}
	return responses
}

func TestExportProducesPDF(t *testing.T) {
	svc, reports, cat := newTestService(t)

	artifact, err := svc.Export(reports.Build(fullResponses(cat, 3)))
	require.NoError(t, err)
	assert.NotEmpty(t, artifact.Data)
	assert.Equal(t, "%PDF", string(artifact.Data[:4]))
	if artifact.Degraded {
		assert.Equal(t, FallbackFilename, artifact.Filename)
	} else {
		assert.Equal(t, Filename, artifact.Filename)
	}
}

func TestFallbackRendersWithoutCharts(t *testing.T) {
	svc, reports, cat := newTestService(t)

	data, err := svc.renderFallback(reports.Build(fullResponses(cat, 1)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFallbackRendersSuccessMessage(t *testing.T) {
	svc, reports, cat := newTestService(t)

	// All-fives assessment has no recommendations; the fallback prints the
	// success message instead of a list.
	data, err := svc.renderFallback(reports.Build(fullResponses(cat, 5)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFallbackRendersNoDataSnapshot(t *testing.T) {
	svc, reports, _ := newTestService(t)

	data, err := svc.renderFallback(reports.Build(map[string]int{}))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportBusyGuard(t *testing.T) {
	svc, reports, cat := newTestService(t)
	snap := reports.Build(fullResponses(cat, 3))

	// Simulate an in-flight export; a second request must be refused, and
	// the guard must clear once the flag is released.
	require.True(t, svc.inFlight.CompareAndSwap(false, true))
	_, err := svc.Export(snap)
	assert.ErrorIs(t, err, ErrBusy)

	svc.inFlight.Store(false)
	_, err = svc.Export(snap)
	assert.NoError(t, err)
}
