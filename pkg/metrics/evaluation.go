package metrics

// Evaluation summarizes one engine run for structured logging.
type Evaluation struct {
	Readings  int     `json:"readings"`
	Triggered int     `json:"triggered"`
	Ranked    int     `json:"ranked"`
	Score     float64 `json:"score"`
	Level     string  `json:"level"`
	ElapsedMS int64   `json:"elapsedMs"`
}

// IsZero reports whether no evaluation data was recorded.
func (e Evaluation) IsZero() bool {
	return e == Evaluation{}
}
