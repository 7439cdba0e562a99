package stats

// ColumnSummary is the per-column part of a data exploration
type ColumnSummary struct {
	Column            string   `json:"column"`
	Type              string   `json:"type"`
	MissingCount      int      `json:"missing_count"`
	MissingPercentage float64  `json:"missing_percentage"`
	UniqueCount       int      `json:"unique_count"`           // missing excluded
	UniqueItems       []string `json:"unique_items,omitempty"` // first-appearance order
}

// Exploration summarizes missingness, uniqueness and duplicate rows of a table
type Exploration struct {
	Columns             []ColumnSummary `json:"columns"`
	TotalRows           int             `json:"total_rows"`
	DuplicateRows       int             `json:"duplicate_rows"`
	DuplicatePercentage float64         `json:"duplicate_percentage"`
}

// MissingShare compares missing percentages of one feature across two tables
type MissingShare struct {
	Column       string  `json:"column"`
	TrainPercent float64 `json:"train_percent"`
	TestPercent  float64 `json:"test_percent"`
}

// ValueShare is one row of a value-count table
type ValueShare struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // over all rows, missing included
}

// HistogramBin is one equal-width bin; Upper is exclusive except for the last bin
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BoxPlot carries what a renderer needs to draw a box plot with outlier bounds
type BoxPlot struct {
	Column     string    `json:"column"`
	Title      string    `json:"title"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
	Outliers   []float64 `json:"outliers,omitempty"`
}
