package storage

// Event is a single row in the events table. Tags is nil when the column
// is NULL, which marshals to JSON null rather than an empty array.
type Event struct {
	ID      int64    `json:"id"`
	Date    string   `json:"date"`
	Type    string   `json:"type"`
	RouteTo string   `json:"route_to"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
	Title   string   `json:"title"`
}

// Stats holds aggregate statistics about the events table.
type Stats struct {
	TotalEvents int64
	OldestDate  string
	NewestDate  string
	TopTypes    []TypeCount
}

// TypeCount pairs an event type with its row count.
type TypeCount struct {
	Type  string
	Count int64
}
