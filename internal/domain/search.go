package domain

// SearchHistory is an analytics record for one executed search.
// Entries live in the document store, keyed by a ULID so they sort by creation time.
type SearchHistory struct {
	EntryID      string `json:"entry_id" dynamodbav:"entry_id"`
	UserID       int64  `json:"user_id" dynamodbav:"user_id"`
	Query        string `json:"query" dynamodbav:"query"`
	SearchType   string `json:"type" dynamodbav:"search_type"`
	ResultsCount int    `json:"results_count" dynamodbav:"results_count"`
	CreatedAt    string `json:"timestamp" dynamodbav:"created_at"` // RFC3339, GSI sort key
}
