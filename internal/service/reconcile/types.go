package reconcile

// Result summarizes the effect of one reconciliation pass.
type Result struct {
	RunID     string `json:"run_id"`
	Scheduled int    `json:"scheduled"`
	Cancelled int    `json:"cancelled"`
	Unchanged int    `json:"unchanged"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}
