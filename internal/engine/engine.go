package engine

import (
	"fmt"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine/features"
	"github.com/rgdevment/scam-shield/internal/engine/predict"
	"github.com/rgdevment/scam-shield/internal/engine/rules"
	"github.com/rgdevment/scam-shield/internal/engine/urlcheck"
)

// Engine is the risk-scoring core. Every operation is a pure, synchronous
// transformation of its input, so concurrent invocations for independent
// inputs are safe without locks. The only external call is into the
// predictor capability; a predictor that is not reentrant must be
// serialized by its owner, not here.
type Engine struct {
	callExtractor    *features.CallExtractor
	messageExtractor *features.MessageExtractor
	ruleScorer       *rules.Scorer
	callPredict      *predict.Scorer
	messagePredict   *predict.Scorer
	aggregator       *Aggregator
	composer         *Composer
}

// New wires the engine from configuration tables and optional predictors.
// Any table or wiring problem fails here, at construction, never
// per-request.
func New(cfg Config, callPredictor, messagePredictor predict.Predictor) (*Engine, error) {
	urlAnalyzer, err := urlcheck.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	callExtractor, err := features.NewCallExtractor(cfg.Call)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	messageExtractor, err := features.NewMessageExtractor(cfg.Message, urlAnalyzer)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	callTable := rules.DefaultCallTable()
	if cfg.CallTable != nil {
		callTable = *cfg.CallTable
	}
	messageTable := rules.DefaultMessageTable()
	if cfg.MessageTable != nil {
		messageTable = *cfg.MessageTable
	}
	ruleScorer, err := rules.NewScorer(callTable, messageTable)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	callPredict, err := predict.NewScorer(callPredictor, features.CallSchema())
	if err != nil {
		return nil, fmt.Errorf("engine: call %w", err)
	}
	messagePredict, err := predict.NewScorer(messagePredictor, features.MessageSchema())
	if err != nil {
		return nil, fmt.Errorf("engine: message %w", err)
	}

	aggregator, err := NewAggregator(cfg.Blend)
	if err != nil {
		return nil, err
	}

	return &Engine{
		callExtractor:    callExtractor,
		messageExtractor: messageExtractor,
		ruleScorer:       ruleScorer,
		callPredict:      callPredict,
		messagePredict:   messagePredict,
		aggregator:       aggregator,
		composer:         NewComposer(),
	}, nil
}

// AnalyzeCall runs the full call pipeline: extraction, parallel pools
// (rules and model), aggregation.
func (e *Engine) AnalyzeCall(in domain.CallInput) *domain.RiskAssessment {
	v := e.callExtractor.Extract(in)
	ruleScore, findings := e.ruleScorer.Score(v)
	probability := e.callPredict.Score(v)
	return e.aggregator.AggregateCall(probability, ruleScore, findings, v)
}

// AnalyzeMessage runs the full message pipeline, including per-URL
// sub-analysis of any embedded links.
func (e *Engine) AnalyzeMessage(in domain.MessageInput) *domain.RiskAssessment {
	v, urls := e.messageExtractor.Extract(in)
	_, findings := e.ruleScorer.Score(v)
	probability := e.messagePredict.Score(v)
	return e.aggregator.AggregateMessage(probability, findings, urls, v)
}

// Combine blends a call and a message assessment into one overall report.
func (e *Engine) Combine(call, sms *domain.RiskAssessment) *domain.OverallAssessment {
	return e.aggregator.Combine(call, sms)
}

// ComposeAlert renders the user-facing alert for an assessment.
func (e *Engine) ComposeAlert(a *domain.RiskAssessment) domain.Alert {
	return e.composer.Compose(a)
}

// ComposeOverallAlert renders the alert for a combined report.
func (e *Engine) ComposeOverallAlert(o *domain.OverallAssessment) domain.Alert {
	return e.composer.ComposeOverall(o)
}
