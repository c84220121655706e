package http

import (
	"errors"

	"github.com/rgdevment/scam-shield/internal/domain"
)

type CallAnalysisRequest struct {
	PhoneNumber   string `json:"phone_number"`
	Duration      int    `json:"duration"`
	CallFrequency int    `json:"call_frequency"`
	IsUnknown     bool   `json:"is_unknown"`
	TimeOfDay     string `json:"time_of_day"`
}

func (r *CallAnalysisRequest) Validate() error {
	if len(r.PhoneNumber) < 5 {
		return errors.New("phone_number is too short")
	}

	validBuckets := map[string]bool{
		"": true, "night": true, "morning": true,
		"business": true, "evening": true,
	}
	if !validBuckets[r.TimeOfDay] {
		return errors.New("invalid time_of_day")
	}

	return nil
}

func (r *CallAnalysisRequest) ToInput() domain.CallInput {
	bucket := domain.TimeOfDay(r.TimeOfDay)
	if r.TimeOfDay == "" {
		bucket = domain.TimeBusiness
	}
	return domain.CallInput{
		PhoneNumber: r.PhoneNumber,
		Duration:    r.Duration,
		Frequency:   r.CallFrequency,
		Unknown:     r.IsUnknown,
		TimeOfDay:   bucket,
	}
}

type MessageAnalysisRequest struct {
	MessageText string `json:"message_text"`
	Sender      string `json:"sender"`
}

// Validate is intentionally permissive: empty text is a valid message and
// scores on its own merits, it is not a request error.
func (r *MessageAnalysisRequest) Validate() error {
	return nil
}

func (r *MessageAnalysisRequest) ToInput() domain.MessageInput {
	sender := r.Sender
	if sender == "" {
		sender = "Unknown"
	}
	return domain.MessageInput{
		Text:   r.MessageText,
		Sender: sender,
	}
}

type CombinedAnalysisRequest struct {
	Call    *CallAnalysisRequest    `json:"call,omitempty"`
	Message *MessageAnalysisRequest `json:"message,omitempty"`
}

func (r *CombinedAnalysisRequest) Validate() error {
	if r.Call == nil && r.Message == nil {
		return errors.New("at least one of call or message is required")
	}
	if r.Call != nil {
		if err := r.Call.Validate(); err != nil {
			return err
		}
	}
	if r.Message != nil {
		if err := r.Message.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *CombinedAnalysisRequest) callInput() *domain.CallInput {
	if r.Call == nil {
		return nil
	}
	in := r.Call.ToInput()
	return &in
}

func (r *CombinedAnalysisRequest) messageInput() *domain.MessageInput {
	if r.Message == nil {
		return nil
	}
	in := r.Message.ToInput()
	return &in
}

type AnalysisResponse struct {
	Assessment *domain.RiskAssessment `json:"assessment"`
	Alert      domain.Alert           `json:"alert"`
}

type CombinedAnalysisResponse struct {
	Assessment *domain.OverallAssessment `json:"assessment"`
	Alert      domain.Alert              `json:"alert"`
}
