package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/makersair/fhbridge/internal/domain"
)

// DeliveryLog records every processed webhook and its outcome. It is an
// audit trail for reconciling with FareHarbor, not a source of truth for
// pending round trips.
type DeliveryLog interface {
	Record(ctx context.Context, rec domain.DeliveryRecord) error
	RecentByOrder(ctx context.Context, orderDisplayID string, limit int) ([]domain.DeliveryRecord, error)
}

type PGDeliveryLog struct {
	db *pgxpool.Pool
}

func NewDeliveryLog(db *pgxpool.Pool) DeliveryLog {
	return &PGDeliveryLog{db: db}
}

func (r *PGDeliveryLog) Record(ctx context.Context, rec domain.DeliveryRecord) error {
	_, err := r.db.Exec(ctx, `INSERT INTO webhook_deliveries (request_id, order_display_id, outcome, error, received_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.RequestID, rec.OrderDisplayID, rec.Outcome, rec.Error, rec.ReceivedAt)
	return err
}

func (r *PGDeliveryLog) RecentByOrder(ctx context.Context, orderDisplayID string, limit int) ([]domain.DeliveryRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT request_id, order_display_id, outcome, error, received_at
		FROM webhook_deliveries WHERE order_display_id=$1 ORDER BY received_at DESC LIMIT $2`,
		orderDisplayID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.DeliveryRecord, 0)
	for rows.Next() {
		var rec domain.DeliveryRecord
		if err := rows.Scan(&rec.RequestID, &rec.OrderDisplayID, &rec.Outcome, &rec.Error, &rec.ReceivedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var _ DeliveryLog = (*PGDeliveryLog)(nil)
