package service

import (
	"context"

	"github.com/rgdevment/scam-shield/internal/domain"
)

// Service is the application-facing surface of the analysis engine.
type Service interface {
	AnalyzeCall(ctx context.Context, in domain.CallInput) (*domain.RiskAssessment, domain.Alert, error)

	AnalyzeMessage(ctx context.Context, in domain.MessageInput) (*domain.RiskAssessment, domain.Alert, error)

	// AnalyzeCombined assesses a call and a message from the same contact
	// and blends them into one overall report. Either input may be nil,
	// but not both.
	AnalyzeCombined(ctx context.Context, call *domain.CallInput, msg *domain.MessageInput) (*domain.OverallAssessment, domain.Alert, error)

	// PhoneRisk returns the last known verdict for a number, from cache or
	// storage. Unknown numbers read as LOW, never as an error.
	PhoneRisk(ctx context.Context, phoneNumber string) (*domain.PhoneRisk, error)

	Statistics(ctx context.Context) (*domain.Statistics, error)
}
