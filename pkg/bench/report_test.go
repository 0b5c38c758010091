package bench

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := NewReport()
	r.Add("Glossy Empty + Ceiling", Record{
		Algorithm: "Path Tracing", Acronym: "pt",
		Elapsed: 1500 * time.Millisecond, File: "gec_pt.bmp",
	})
	r.Add("Glossy Empty + Ceiling", Record{
		Algorithm: "Light Tracing", Acronym: "lt",
		Elapsed: 2 * time.Second, File: "gec_lt.bmp",
	})
	r.Add("Empty + Sun", Record{
		Algorithm: "Vertex Connection Merging", Acronym: "vcm",
		Elapsed: 3 * time.Second, File: "es_vcm.bmp",
	})
	return r
}

func TestReportGrouping(t *testing.T) {
	r := sampleReport()

	require.Len(t, r.Groups, 2)
	assert.Equal(t, 3, r.Cells())
	assert.Len(t, r.Groups[0].Records, 2)
	assert.Len(t, r.Groups[1].Records, 1)
}

func TestReportHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().WriteHTML(&buf))
	html := buf.String()

	assert.Contains(t, html, "<h2>Glossy Empty + Ceiling</h2>")
	assert.Contains(t, html, "<h2>Empty + Sun</h2>")
	assert.Contains(t, html, `src="gec_pt.bmp"`)
	assert.Contains(t, html, "pt (1.5 s)")
	assert.Contains(t, html, "vcm (3 s)")
	assert.Equal(t, 2, strings.Count(html, "<table>"), "one table per scene group")
}

func TestReportSummaryTable(t *testing.T) {
	summary := sampleReport().Summary()

	assert.Contains(t, summary, "Render time")
	assert.Contains(t, summary, "pt")
	assert.Contains(t, summary, "es_vcm.bmp")
	assert.Contains(t, summary, "3 cells")
	assert.Contains(t, summary, "6.5 s")
}
