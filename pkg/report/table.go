package report

// Table is a rectangular report ready for serialization: a header plus data
// rows already rendered to strings in output order.
type Table struct {
	Fields []string
	Rows   [][]string
}
