package bench

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Record is one completed benchmark cell
type Record struct {
	Algorithm string
	Acronym   string
	Elapsed   time.Duration
	File      string
}

// Group collects the records of one scene configuration
type Group struct {
	Scene   string
	Records []Record
}

// Report accumulates benchmark results grouped per scene configuration
type Report struct {
	Groups []*Group
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{}
}

// Add appends a record to the given scene's group, creating the group on
// first use. Cells arrive scene by scene, so the last group is the only
// candidate.
func (r *Report) Add(sceneName string, record Record) {
	if n := len(r.Groups); n > 0 && r.Groups[n-1].Scene == sceneName {
		r.Groups[n-1].Records = append(r.Groups[n-1].Records, record)
		return
	}
	r.Groups = append(r.Groups, &Group{Scene: sceneName, Records: []Record{record}})
}

// Cells returns the total number of recorded cells
func (r *Report) Cells() int {
	total := 0
	for _, group := range r.Groups {
		total += len(group.Records)
	}
	return total
}

const thumbnailSize = 128

// WriteHTML renders the report as an HTML page of per-scene thumbnail
// rows, one table per scene configuration
func (r *Report) WriteHTML(w io.Writer) error {
	for _, group := range r.Groups {
		if _, err := fmt.Fprintf(w, "<table>\n<tr><h2>%s</h2></tr>\n<tr>\n", html.EscapeString(group.Scene)); err != nil {
			return err
		}
		for _, record := range group.Records {
			file := filepath.Base(record.File)
			alt := fmt.Sprintf("%s (%.3g s)", record.Algorithm, record.Elapsed.Seconds())
			_, err := fmt.Fprintf(w,
				"<td> <a href=%q><img src=%q alt=%q height=\"%d\" width=\"%d\" /></a><br/>\n%s (%.3g s)</td>\n",
				file, file, alt, thumbnailSize, thumbnailSize,
				record.Acronym, record.Elapsed.Seconds())
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "</tr>\n</table>\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteHTMLFile writes the HTML report to the named file
func (r *Report) WriteHTMLFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("bench: creating report %s: %w", filename, err)
	}
	defer file.Close()
	return r.WriteHTML(file)
}

// Summary renders a console table of every cell's timing
func (r *Report) Summary() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Algorithm", "Render time", "Output"})

	var total time.Duration
	for _, group := range r.Groups {
		for _, record := range group.Records {
			table.Append([]string{
				group.Scene,
				record.Acronym,
				fmt.Sprintf("%.3g s", record.Elapsed.Seconds()),
				record.File,
			})
			total += record.Elapsed
		}
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%.3g s", total.Seconds()), fmt.Sprintf("%d cells", r.Cells())})

	table.Render()
	return buf.String()
}
