package repository

import (
	"context"
	"time"

	"rinto/internal/infra/db"
	"rinto/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const createNotificationJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, created_at)
VALUES ($1, $2, $3, $4, $5, now())
`

func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := dbtx.Exec(ctx, createNotificationJobSQL,
		pgconv.UUIDToPgtype(uuid.New()),
		kind,
		topic,
		payload,
		pgconv.TimeToPgtype(runAt),
	); err != nil {
		return wrapPgErr("failed to enqueue notification job", err)
	}
	return nil
}
