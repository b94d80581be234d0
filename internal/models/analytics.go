package models

// FeedbackStats summarizes stored feedback rows.
type FeedbackStats struct {
	TotalFeedback    int     `json:"total_feedback"`
	AverageRating    float64 `json:"avg_rating"`
	PositiveFeedback int     `json:"positive_feedback"` // ratings >= 4
}

// Analytics aggregates conversation-log statistics for the analytics endpoint.
type Analytics struct {
	TotalMessages      int            `json:"total_messages"`
	TotalSessions      int            `json:"total_sessions"`
	IntentDistribution map[string]int `json:"intent_distribution"`
	AverageConfidence  float64        `json:"average_confidence"`
	FeedbackStats      FeedbackStats  `json:"feedback_stats"`
}
