package models

type StartSessionRequest struct {
	SessionID  string `json:"session_id,omitempty"`
	Topic      string `json:"topic"`
	UnitTitle  string `json:"unit_title"`
	GradeLabel string `json:"grade_label"`
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
	Step      Step   `json:"step"`
}

type MessageRequest struct {
	Text string `json:"text"`
}

type TurnResponse struct {
	ResponseText string   `json:"response_text"`
	Step         Step     `json:"step"`
	FinalSummary *Summary `json:"final_summary,omitempty"`
}

// SessionState is a read-only snapshot of a session for the state endpoint.
type SessionState struct {
	SessionID  string    `json:"session_id"`
	Unit       UnitState `json:"unit"`
	Transcript []Message `json:"transcript"`
}
