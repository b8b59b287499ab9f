package usecase_auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Registrar creates user accounts for self-registration and admin creation.
type Registrar struct {
	repo     domain_auth.UserRepository
	images   *usecase.ProfileImages
	recorder domain_activity.Recorder
	timeout  time.Duration
	logger   *zap.Logger
}

func NewRegistrar(
	repo domain_auth.UserRepository,
	images *usecase.ProfileImages,
	recorder domain_activity.Recorder,
	timeout time.Duration,
	logger *zap.Logger,
) *Registrar {
	return &Registrar{
		repo:     repo,
		images:   images,
		recorder: recorder,
		timeout:  timeout,
		logger:   logger.Named("Registrar"),
	}
}

// RegisterOptions controls what the caller may decide about the new account.
type RegisterOptions struct {
	// HonourRoleStatus keeps the requested role and status; otherwise the
	// account is an active plain user.
	HonourRoleStatus bool
	// Actor is recorded as the acting user; zero means the new user itself.
	Actor       primitive.ObjectID
	Action      string
	Description string
}

func (r *Registrar) Register(
	ctx context.Context,
	req domain_auth.RegisterRequest,
	image *domain_auth.ProfileImage,
	client domain_activity.ClientInfo,
	opts RegisterOptions,
) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	email := strings.TrimSpace(req.Email)
	existing, err := r.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrConflict)
	}

	imgName, err := r.images.Store(ctx, image)
	if err != nil {
		return nil, err
	}

	hash, err := usecase.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role, status := domain_auth.RoleUser, domain_auth.StatusActive
	if opts.HonourRoleStatus {
		if req.Role != "" {
			role = req.Role
		}
		if req.Status != "" {
			status = req.Status
		}
	}

	user := &domain_auth.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		PhoneNo:   req.Phone,
		Location:  req.Location,
		Password:  hash,
		Role:      role,
		Status:    status,
		ImgURL:    imgName,
	}
	if err := r.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	actor := opts.Actor
	if actor.IsZero() {
		actor = user.ID
	}
	action, description := opts.Action, opts.Description
	if action == "" {
		action, description = domain_activity.ActionCreate, "Created new user"
	}
	record(ctx, r.recorder, r.logger, domain_activity.Event{
		Actor:       actor,
		Target:      user.ID,
		Action:      action,
		Description: description,
		Client:      client,
	})

	return user, nil
}

// record writes an audit entry. Failures are logged and never fail the request.
func record(ctx context.Context, recorder domain_activity.Recorder, logger *zap.Logger, event domain_activity.Event) {
	if err := recorder.Record(ctx, event); err != nil {
		logger.Warn("Activity not recorded", zap.String("action", event.Action), zap.Error(err))
	}
}
