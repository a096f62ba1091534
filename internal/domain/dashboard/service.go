package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 2 * time.Minute
)

// Stats is the front-desk overview.
type Stats struct {
	ActiveMembers    int             `json:"active_members"`
	ExpiringSoon     int             `json:"expiring_soon"`
	ExpiredMembers   int             `json:"expired_members"`
	PendingApprovals int             `json:"pending_approvals"`
	CheckinsToday    int             `json:"checkins_today"`
	ActiveLockers    int             `json:"active_lockers"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`
	DuesOutstanding  decimal.Decimal `json:"dues_outstanding"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// Service aggregates counters across the schema. Results are cached in
// Redis for a short window; without Redis every request recomputes.
type Service struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewService(db *sqlx.DB, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats Stats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("Failed to cache dashboard stats")
			}
		}
	}

	return stats, nil
}

func (s *Service) computeStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{GeneratedAt: time.Now()}
	now := time.Now()
	weekAhead := now.AddDate(0, 0, 7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err := s.db.GetContext(ctx, &stats.ActiveMembers,
		`SELECT COUNT(*) FROM members WHERE is_approved = TRUE AND payment_expiry_date >= $1`, now)
	if err != nil {
		return nil, err
	}

	_ = s.db.GetContext(ctx, &stats.ExpiringSoon,
		`SELECT COUNT(*) FROM members
		 WHERE is_approved = TRUE AND payment_expiry_date BETWEEN $1 AND $2`, now, weekAhead)

	_ = s.db.GetContext(ctx, &stats.ExpiredMembers,
		`SELECT COUNT(*) FROM members WHERE is_approved = TRUE AND payment_expiry_date < $1`, now)

	_ = s.db.GetContext(ctx, &stats.PendingApprovals,
		`SELECT (SELECT COUNT(*) FROM registration_applications) + (SELECT COUNT(*) FROM renewal_applications)`)

	_ = s.db.GetContext(ctx, &stats.CheckinsToday,
		`SELECT COUNT(*) FROM entry_logs WHERE result = 'granted' AND occurred_at >= $1`,
		time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()))

	_ = s.db.GetContext(ctx, &stats.ActiveLockers,
		`SELECT COUNT(*) FROM member_lockers WHERE locker_status = 'active'`)

	_ = s.db.GetContext(ctx, &stats.RevenueThisMonth, `
		SELECT COALESCE(SUM(paid_amount), 0) FROM (
			SELECT paid_amount, payment_date FROM payments
			UNION ALL SELECT paid_amount, payment_date FROM membership_renewals
			UNION ALL SELECT paid_amount, payment_date FROM locker_payments
			UNION ALL SELECT paid_amount, payment_date FROM transactions
		) ledger WHERE payment_date >= $1`, monthStart)

	_ = s.db.GetContext(ctx, &stats.DuesOutstanding,
		`SELECT COALESCE(SUM(-credit), 0) FROM members WHERE credit < 0`)

	return stats, nil
}

// Invalidate drops the cached stats so the next read recomputes.
func (s *Service) Invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate dashboard cache")
	}
}
