package schema

// BenchmarkRow describes the industry tier cut points for one metric, in
// display form.
type BenchmarkRow struct {
	Metric string `json:"metric"`
	Elite  string `json:"elite"`
	High   string `json:"high"`
	Medium string `json:"medium"`
	Low    string `json:"low"`
}

// ThresholdRow describes the active health boundaries for one metric.
type ThresholdRow struct {
	Metric  string  `json:"metric"`
	Good    float64 `json:"good"`
	Warning float64 `json:"warning"`
}

// BenchmarksRenderModel contains all processed data needed for the benchmarks
// display.
type BenchmarksRenderModel struct {
	Title      string         `json:"title"`
	Benchmarks []BenchmarkRow `json:"benchmarks"`
	Thresholds []ThresholdRow `json:"thresholds"`
	Note       string         `json:"note"`
}
