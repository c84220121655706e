package scylla

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/service"
)

// Analysis history expires on its own; 90 days is plenty for trend reporting.
const historyTTLSeconds = 7776000

type scyllaRepository struct {
	session *gocql.Session
}

func NewScyllaRepository(session *gocql.Session) service.Repository {
	return &scyllaRepository{
		session: session,
	}
}

func Connect(keyspace string, hosts ...string) (*gocql.Session, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.ProtoVersion = 4
	cluster.Timeout = 5 * time.Second
	cluster.ConnectTimeout = 5 * time.Second

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to scylla: %w", err)
	}

	log.Println("✅ Connected to ScyllaDB")
	return session, nil
}

func (r *scyllaRepository) SaveCallAnalysis(ctx context.Context, record *domain.CallRecord) error {
	query := `
        INSERT INTO call_analysis (phone_number, created_at, id, duration, call_frequency,
            is_unknown, is_international, risk_score, risk_level, is_scam, findings)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) USING TTL ?`

	err := r.session.Query(query,
		record.PhoneNumber,
		record.CreatedAt,
		record.ID.String(),
		record.Duration,
		record.Frequency,
		record.Unknown,
		record.International,
		record.Score,
		string(record.Level),
		record.IsScam,
		record.Findings,
		historyTTLSeconds,
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to save call analysis: %w", err)
	}

	return nil
}

func (r *scyllaRepository) SaveMessageAnalysis(ctx context.Context, record *domain.MessageRecord) error {
	query := `
        INSERT INTO sms_analysis (sender, created_at, id, message_text, has_url, urls,
            risk_score, risk_level, is_scam, findings)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) USING TTL ?`

	err := r.session.Query(query,
		record.Sender,
		record.CreatedAt,
		record.ID.String(),
		record.Text,
		record.HasURL,
		record.URLs,
		record.Score,
		string(record.Level),
		record.IsScam,
		record.Findings,
		historyTTLSeconds,
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to save message analysis: %w", err)
	}

	return nil
}

func (r *scyllaRepository) LastCallAnalysis(ctx context.Context, phoneNumber string) (*domain.CallRecord, error) {
	query := `
        SELECT id, created_at, duration, call_frequency, is_unknown, is_international,
               risk_score, risk_level, is_scam, findings
        FROM call_analysis WHERE phone_number = ? LIMIT 1`

	var record domain.CallRecord
	var id string
	var riskLevelStr string

	err := r.session.Query(query, phoneNumber).WithContext(ctx).Scan(
		&id,
		&record.CreatedAt,
		&record.Duration,
		&record.Frequency,
		&record.Unknown,
		&record.International,
		&record.Score,
		&riskLevelStr,
		&record.IsScam,
		&record.Findings,
	)

	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scylla: failed to get last call analysis: %w", err)
	}

	parsedID, _ := uuid.Parse(id)
	record.ID = parsedID
	record.PhoneNumber = phoneNumber
	record.Level = domain.RiskLevel(riskLevelStr)
	return &record, nil
}

func (r *scyllaRepository) IncrementStatistics(ctx context.Context, kind domain.Kind, isScam bool) error {
	query := `UPDATE statistics SET total = total + 1 WHERE kind = ?`
	if isScam {
		query = `UPDATE statistics SET total = total + 1, scams = scams + 1 WHERE kind = ?`
	}

	if err := r.session.Query(query, string(kind)).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("scylla: failed to update statistics: %w", err)
	}
	return nil
}

func (r *scyllaRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	query := `SELECT kind, total, scams FROM statistics`

	iter := r.session.Query(query).WithContext(ctx).Iter()

	var stats domain.Statistics
	var kind string
	var total, scams int64

	for iter.Scan(&kind, &total, &scams) {
		switch domain.Kind(kind) {
		case domain.KindCall:
			stats.TotalCalls = total
			stats.CallScams = scams
		case domain.KindSMS:
			stats.TotalMessages = total
			stats.MessageScams = scams
		}
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: failed to iterate statistics: %w", err)
	}

	return &stats, nil
}
