package service

import (
	"context"
	"errors"
	"log"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine"
)

// ErrNoInput is returned when a combined analysis is requested with neither
// a call nor a message.
var ErrNoInput = errors.New("at least one of call or message input is required")

// analysisService is the concrete implementation of the Service interface.
// It is unexported (starts with lowercase) to force usage of the interface.
type analysisService struct {
	engine *engine.Engine
	repo   Repository
	cache  Cache
}

// NewAnalysisService is the constructor. cache may be nil.
func NewAnalysisService(eng *engine.Engine, repo Repository, cache Cache) Service {
	return &analysisService{
		engine: eng,
		repo:   repo,
		cache:  cache,
	}
}

func (s *analysisService) AnalyzeCall(ctx context.Context, in domain.CallInput) (*domain.RiskAssessment, domain.Alert, error) {
	assessment := s.engine.AnalyzeCall(in)
	alert := s.engine.ComposeAlert(assessment)
	s.persistCall(ctx, in, assessment)
	return assessment, alert, nil
}

func (s *analysisService) AnalyzeMessage(ctx context.Context, in domain.MessageInput) (*domain.RiskAssessment, domain.Alert, error) {
	assessment := s.engine.AnalyzeMessage(in)
	alert := s.engine.ComposeAlert(assessment)
	s.persistMessage(ctx, in, assessment)
	return assessment, alert, nil
}

func (s *analysisService) AnalyzeCombined(ctx context.Context, call *domain.CallInput, msg *domain.MessageInput) (*domain.OverallAssessment, domain.Alert, error) {
	if call == nil && msg == nil {
		return nil, domain.Alert{}, ErrNoInput
	}

	var callAssessment, msgAssessment *domain.RiskAssessment
	if call != nil {
		callAssessment = s.engine.AnalyzeCall(*call)
		s.persistCall(ctx, *call, callAssessment)
	}
	if msg != nil {
		msgAssessment = s.engine.AnalyzeMessage(*msg)
		s.persistMessage(ctx, *msg, msgAssessment)
	}

	overall := s.engine.Combine(callAssessment, msgAssessment)
	return overall, s.engine.ComposeOverallAlert(overall), nil
}

func (s *analysisService) PhoneRisk(ctx context.Context, phoneNumber string) (*domain.PhoneRisk, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPhoneRisk(ctx, phoneNumber)
		if err != nil {
			log.Printf("⚠️  phone risk cache lookup failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	record, err := s.repo.LastCallAnalysis(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &domain.PhoneRisk{
			PhoneNumber: phoneNumber,
			Score:       0,
			Level:       domain.LevelLow,
			KnownNumber: false,
		}, nil
	}

	risk := &domain.PhoneRisk{
		PhoneNumber: phoneNumber,
		Score:       record.Score,
		Level:       record.Level,
		LastSeen:    record.CreatedAt,
		KnownNumber: true,
	}
	s.cachePhoneRisk(ctx, risk)
	return risk, nil
}

func (s *analysisService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	return s.repo.GetStatistics(ctx)
}

// persistCall is fire-and-forget: a storage failure degrades the history,
// never the verdict.
func (s *analysisService) persistCall(ctx context.Context, in domain.CallInput, a *domain.RiskAssessment) {
	record := domain.NewCallRecord(in, a)
	if err := s.repo.SaveCallAnalysis(ctx, record); err != nil {
		log.Printf("⚠️  failed to persist call analysis for %s: %v", in.PhoneNumber, err)
		return
	}
	if err := s.repo.IncrementStatistics(ctx, domain.KindCall, a.IsScam()); err != nil {
		log.Printf("⚠️  failed to update call statistics: %v", err)
	}
	s.cachePhoneRisk(ctx, &domain.PhoneRisk{
		PhoneNumber: in.PhoneNumber,
		Score:       a.Score,
		Level:       a.Level,
		LastSeen:    a.CreatedAt,
		KnownNumber: true,
	})
}

func (s *analysisService) persistMessage(ctx context.Context, in domain.MessageInput, a *domain.RiskAssessment) {
	record := domain.NewMessageRecord(in, a)
	if err := s.repo.SaveMessageAnalysis(ctx, record); err != nil {
		log.Printf("⚠️  failed to persist message analysis from %s: %v", in.Sender, err)
		return
	}
	if err := s.repo.IncrementStatistics(ctx, domain.KindSMS, a.IsScam()); err != nil {
		log.Printf("⚠️  failed to update message statistics: %v", err)
	}
}

func (s *analysisService) cachePhoneRisk(ctx context.Context, risk *domain.PhoneRisk) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetPhoneRisk(ctx, risk); err != nil {
		log.Printf("⚠️  failed to cache phone risk for %s: %v", risk.PhoneNumber, err)
	}
}
