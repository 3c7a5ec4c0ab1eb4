//nolint:thelper,whitespace,lll,funlen,gocritic,dupl // ok for tests
package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"

	"github.com/racesense/telemetry-strategy-go/pkg/ingest"
)

func jsonPath(t *testing.T, doc any, path string) []any {
	p, err := jp.ParseString(path)
	assert.NoError(t, err)
	return p.Get(doc)
}

func TestAnalyzeFile_WritesStrategyDocument(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "race.csv")
	assert.NoError(t,
		os.WriteFile(csvFile, []byte(ingest.GenerateSampleRace()), 0o644))

	outFile = filepath.Join(dir, "result.json")
	prettyPrint = false
	defer func() { outFile = ""; prettyPrint = true }()

	assert.NoError(t, analyzeFile(csvFile))

	data, err := os.ReadFile(outFile)
	assert.NoError(t, err)
	doc, err := oj.ParseString(string(data))
	assert.NoError(t, err)

	laps := jsonPath(t, doc, "$.laps")
	assert.Len(t, laps, 1)
	assert.Len(t, laps[0], ingest.SampleLaps)

	// the degradation series is a per-lap array, one entry per racing lap
	deg := jsonPath(t, doc, "$.tireDegradation")
	assert.Len(t, deg, 1)
	assert.Len(t, deg[0], ingest.SampleLaps-1)

	car := jsonPath(t, doc, "$.strategy.carNumber")
	assert.Len(t, car, 1)
	assert.EqualValues(t, ingest.SampleCarNumber, car[0])

	points := jsonPath(t, doc, "$.sourcePoints")
	assert.Len(t, points, 1)
	assert.EqualValues(t, (ingest.SampleLaps-1)*120+180, points[0])
}

func TestAnalyzeFile_EmptyInputIsRecoverable(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "empty.csv")
	assert.NoError(t, os.WriteFile(csvFile, []byte("meta_time\n"), 0o644))

	outFile = filepath.Join(dir, "unwritten.json")
	defer func() { outFile = "" }()

	assert.NoError(t, analyzeFile(csvFile))
	_, err := os.Stat(outFile)
	assert.True(t, os.IsNotExist(err))
}
