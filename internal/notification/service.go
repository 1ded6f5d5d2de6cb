package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/logger"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/metrics"
)

const (
	queueKey       = "notifications:pending"
	failedQueueKey = "notifications:failed"
	maxTries       = 3
)

// AdminAudienceResolver answers "who are the admins" so the emitter does not
// reach into user tables itself.
type AdminAudienceResolver interface {
	AdminIDs(ctx context.Context) ([]int, error)
}

// Emitter fans events out to their audience. All methods are best-effort:
// they log failures and never return them, so a dropped notification cannot
// roll back the booking or transaction that triggered it.
type Emitter interface {
	NotifyAdmins(ctx context.Context, kind, title, message string)
	NotifyUser(ctx context.Context, userID int, kind, title, message string)
}

type Service struct {
	repo   Repository
	admins AdminAudienceResolver
	redis  *redis.Client
}

func NewService(repo Repository, admins AdminAudienceResolver, redisClient *redis.Client) *Service {
	return &Service{repo: repo, admins: admins, redis: redisClient}
}

func (s *Service) NotifyAdmins(ctx context.Context, kind, title, message string) {
	adminIDs, err := s.admins.AdminIDs(ctx)
	if err != nil {
		logger.Error("failed to resolve admin audience", "kind", kind, "error", err)
		metrics.RecordNotification(kind, "error")
		return
	}

	for _, adminID := range adminIDs {
		s.emit(ctx, adminID, kind, title, message)
	}
}

func (s *Service) NotifyUser(ctx context.Context, userID int, kind, title, message string) {
	s.emit(ctx, userID, kind, title, message)
}

func (s *Service) emit(ctx context.Context, recipientID int, kind, title, message string) {
	n, err := s.repo.Create(ctx, recipientID, kind, title, message)
	if err != nil {
		logger.Error("failed to persist notification",
			"recipient_id", recipientID, "kind", kind, "error", err)
		metrics.RecordNotification(kind, "error")
		return
	}

	job := deliveryJob{
		NotificationID: n.ID,
		RecipientID:    recipientID,
		Kind:           kind,
		Title:          title,
		Created:        time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("failed to marshal delivery job: %v", err)
		return
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		// The row is persisted; delivery is lost, not the notification.
		logger.Error("failed to queue notification delivery",
			"notification_id", n.ID, "error", err)
		metrics.RecordNotification(kind, "queue_error")
		return
	}

	metrics.RecordNotification(kind, "queued")
}

// Start drains the delivery queue until ctx is cancelled. Failed deliveries
// are retried up to maxTries, then parked on the failed list.
func (s *Service) Start(ctx context.Context) {
	logger.Info("notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification dispatcher stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job deliveryJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("bad delivery job data: %v", err)
		return
	}

	job.Tries++
	if err := s.repo.MarkDelivered(ctx, job.NotificationID); err != nil {
		logger.Error("notification delivery failed",
			"notification_id", job.NotificationID, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			time.Sleep(time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}

		s.saveFailed(job, err)
		return
	}

	metrics.RecordNotification(job.Kind, "delivered")
}

func (s *Service) saveFailed(job deliveryJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Error("notification moved to failed queue", "notification_id", job.NotificationID)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
