package analysis

import (
	"fmt"
	"strings"
	"time"
)

// SampleCSV renders the built-in demo dataset: 90 daily rows alternating
// products A, B and C with linearly growing revenue and cost. Useful for
// trying the tool without a file and as a known-good pipeline fixture.
func SampleCSV() []byte {
	var b strings.Builder
	b.WriteString("Fecha,Producto,Ventas,Coste\n")
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	products := []string{"A", "B", "C"}
	for i := 0; i < 90; i++ {
		fmt.Fprintf(&b, "%s,%s,%.2f,%.2f\n",
			start.AddDate(0, 0, i).Format("2006-01-02"),
			products[i%len(products)],
			500+1.5*float64(i),
			300+1.2*float64(i),
		)
	}
	return []byte(b.String())
}
