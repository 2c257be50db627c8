package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"leavesync/internal/bootstrap"
	"leavesync/internal/calendar"
	"leavesync/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle reacts to leave status changes: cached calendars of
// the affected employee are dropped and review decisions are audit-logged.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := invalidateCalendars(ctx, rdb, event.CompanyID, event.EmployeeID); err != nil {
			log.Error("invalidate cached calendars failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if event.ReviewedBy != "" && audit != nil {
			audit.Log(ctx, bootstrap.AuditLog{
				Action:  event.EventType,
				Message: "leave request reviewed",
				Meta: map[string]any{
					"leave_id":    event.LeaveID,
					"company_id":  event.CompanyID,
					"employee_id": event.EmployeeID,
					"status":      event.Status,
					"reviewed_by": event.ReviewedBy,
					"request_id":  event.RequestID,
				},
			})
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave lifecycle event processed",
			zap.String("leave_id", event.LeaveID),
			zap.String("status", event.Status),
		)
	}
}

// invalidateCalendars deletes every cached month of the employee; the next
// read recomputes against the new booking state.
func invalidateCalendars(ctx context.Context, rdb *redis.Client, companyID, employeeID string) error {
	if rdb == nil {
		return nil
	}

	pattern := fmt.Sprintf("%s:%s:%s:*", calendar.CacheKeyPrefix, companyID, employeeID)
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
