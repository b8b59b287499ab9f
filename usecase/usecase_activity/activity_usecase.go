package usecase_activity

import (
	"context"
	"fmt"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var recordedEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "activity_events_recorded_total",
		Help: "Activity log entries written, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// RegisterMetrics adds the activity collectors to reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	if err := reg.Register(recordedEvents); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return err
		}
	}
	return nil
}

type activityUsecase struct {
	repo    domain_activity.ActivityRepository
	actors  *usecase.BaseUsecaseImpl[domain_activity.Actor]
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewActivityUsecase(
	repo domain_activity.ActivityRepository,
	actors domain.BaseRepository[domain_activity.Actor],
	timeout time.Duration,
	logger *zap.Logger,
) domain_activity.ActivityUsecase {
	return &activityUsecase{
		repo:    repo,
		actors:  usecase.NewBaseUsecase[domain_activity.Actor](actors, timeout),
		timeout: timeout,
		now:     time.Now,
		logger:  logger.Named("ActivityUsecase"),
	}
}

func (uc *activityUsecase) Record(ctx context.Context, event domain_activity.Event) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	entry := &domain_activity.ActivityLog{
		Time:         uc.now().UTC(),
		Action:       event.Action,
		Description:  event.Description,
		IPAddress:    event.Client.IPAddress,
		Device:       event.Client.Device,
		UserID:       event.Actor,
		TargetUserID: event.Target,
	}
	if entry.IPAddress == "" {
		entry.IPAddress = domain_activity.UnknownIPAddress
	}
	if entry.Device == "" {
		entry.Device = domain_activity.UnknownDeviceString
	}

	if err := uc.repo.Create(ctx, entry); err != nil {
		recordedEvents.WithLabelValues(event.Action, "error").Inc()
		uc.logger.Error("Failed to record activity",
			zap.String("action", event.Action),
			zap.String("actor", event.Actor.Hex()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to record activity: %w", err)
	}

	recordedEvents.WithLabelValues(event.Action, "ok").Inc()
	return nil
}

func (uc *activityUsecase) ListForUser(ctx context.Context, targetID string, req domain_query.QueryRequest) (*domain_activity.ActivityPage, error) {
	target, err := uc.actors.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	result, err := uc.repo.QueryForTarget(ctx, target.ID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	return &domain_activity.ActivityPage{
		User:       target,
		Logs:       result.Items,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		Limit:      result.Limit,
	}, nil
}
