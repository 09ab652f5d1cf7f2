package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/citywatch/weatherstation/internal/weather"
)

// Sink receives normalized readings for presentation. How rows and charts are
// rendered is the consumer's concern; the polling loop only pushes data.
type Sink interface {
	UpdateRow(r weather.Reading)
	RedrawChart(city string, points []weather.TempPoint)
}

// TableWriter is a minimal terminal Sink: one formatted line per row update
// and a summary line per chart redraw. A real presentation layer would
// replace it; the HTTP feed API serves richer consumers.
type TableWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTableWriter creates a TableWriter printing to out.
func NewTableWriter(out io.Writer) *TableWriter {
	return &TableWriter{out: out}
}

func (t *TableWriter) UpdateRow(r weather.Reading) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "%-20s %6.1f °C  %5.1f %%  %6.1f km/h  %s\n",
		r.City, r.Temperature, r.Humidity, r.Wind, r.Condition)
}

func (t *TableWriter) RedrawChart(city string, points []weather.TempPoint) {
	if len(points) == 0 {
		return
	}
	last := points[len(points)-1]

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "chart %s: %d points, latest %.1f °C at %s\n",
		city, len(points), last.Temperature, last.Timestamp.Format("15:04:05"))
}
