// internal/swipes/dto.go

package swipes

type SwipeRequest struct {
	JobID  int64  `json:"job_id" validate:"required,min=1"`
	Action string `json:"action" validate:"required,oneof=apply skip"`
}

type SwipeResponse struct {
	InteractionID    int64  `json:"interaction_id"`
	JobID            int64  `json:"job_id"`
	Action           string `json:"action"`
	Score            int    `json:"score"`
	CreditsRemaining int    `json:"credits_remaining"`
}

type RewindResponse struct {
	JobID          int64 `json:"job_id"`
	CreditRefunded bool  `json:"credit_refunded"`
}

type CreditsResponse struct {
	SwipeCredits int `json:"swipe_credits"`
	BoostCredits int `json:"boost_credits"`
}
