package dto

// SearchPerformedMessage travels over the in-process bus from the search
// service to the trending-query consumer.
type SearchPerformedMessage struct {
	Query       string `json:"query"`
	ResultCount int64  `json:"result_count"`
	Broadened   bool   `json:"broadened"`
}
