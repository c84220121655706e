package service

import (
	"context"

	"github.com/rgdevment/scam-shield/internal/domain"
)

// Repository is the persistence sink. The engine fires assessments into it
// and never reads them back during analysis; lookups serve the reporting
// endpoints only.
type Repository interface {
	SaveCallAnalysis(ctx context.Context, r *domain.CallRecord) error

	SaveMessageAnalysis(ctx context.Context, r *domain.MessageRecord) error

	// LastCallAnalysis returns the most recent record for a number, or
	// (nil, nil) when the number has no history.
	LastCallAnalysis(ctx context.Context, phoneNumber string) (*domain.CallRecord, error)

	IncrementStatistics(ctx context.Context, kind domain.Kind, isScam bool) error

	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}

// Cache holds the latest verdict per phone number. A nil Cache is a valid
// configuration; lookups then always hit storage.
type Cache interface {
	// GetPhoneRisk returns (nil, nil) on a miss.
	GetPhoneRisk(ctx context.Context, phoneNumber string) (*domain.PhoneRisk, error)

	SetPhoneRisk(ctx context.Context, risk *domain.PhoneRisk) error
}
