package usecase_admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase/usecase_auth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type adminUsecase struct {
	repo      domain_auth.UserRepository
	users     *usecase.BaseUsecaseImpl[domain_auth.User]
	registrar *usecase_auth.Registrar
	images    *usecase.ProfileImages
	recorder  domain_activity.Recorder
	timeout   time.Duration
	logger    *zap.Logger
}

func NewAdminUsecase(
	repo domain_auth.UserRepository,
	registrar *usecase_auth.Registrar,
	images *usecase.ProfileImages,
	recorder domain_activity.Recorder,
	timeout time.Duration,
	logger *zap.Logger,
) domain_auth.AdminUsecase {
	return &adminUsecase{
		repo:      repo,
		users:     usecase.NewBaseUsecase[domain_auth.User](repo, timeout),
		registrar: registrar,
		images:    images,
		recorder:  recorder,
		timeout:   timeout,
		logger:    logger.Named("AdminUsecase"),
	}
}

func (uc *adminUsecase) ListUsers(ctx context.Context, req domain_query.QueryRequest) (*domain_query.QueryResult[domain_auth.User], error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	result, err := uc.repo.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return result, nil
}

func (uc *adminUsecase) GetUser(ctx context.Context, id string) (*domain_auth.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *adminUsecase) EditUser(
	ctx context.Context,
	actor primitive.ObjectID,
	id string,
	req domain_auth.AdminUpdateUserRequest,
	image *domain_auth.ProfileImage,
	client domain_activity.ClientInfo,
) error {
	user, err := uc.manageable(ctx, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	imgName, err := uc.images.Replace(ctx, user.ImgURL, image)
	if err != nil {
		return err
	}

	set := bson.M{
		"firstName": strings.TrimSpace(req.FirstName),
		"lastName":  strings.TrimSpace(req.LastName),
		"email":     strings.TrimSpace(req.Email),
		"role":      req.Role,
		"status":    req.Status,
		"location":  req.Location,
		"phoneNo":   req.PhoneNo,
	}
	if imgName != user.ImgURL {
		set["imgUrl"] = imgName
	}
	if err := uc.users.UpdateByID(ctx, id, set); err != nil {
		return err
	}

	uc.record(ctx, domain_activity.Event{
		Actor:       actor,
		Target:      user.ID,
		Action:      domain_activity.ActionAdminUpdate,
		Description: fmt.Sprintf("Updated details of user (%s)", user.Email),
		Client:      client,
	})
	return nil
}

func (uc *adminUsecase) DeleteUser(ctx context.Context, actor primitive.ObjectID, id string, client domain_activity.ClientInfo) error {
	user, err := uc.manageable(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.users.UpdateByID(ctx, id, bson.M{"status": domain_auth.StatusDeleted}); err != nil {
		return err
	}

	uc.record(ctx, domain_activity.Event{
		Actor:       actor,
		Target:      user.ID,
		Action:      domain_activity.ActionAdminDelete,
		Description: fmt.Sprintf("Deleted user (%s) by admin", user.Email),
		Client:      client,
	})
	return nil
}

func (uc *adminUsecase) CreateUser(
	ctx context.Context,
	actor primitive.ObjectID,
	req domain_auth.RegisterRequest,
	image *domain_auth.ProfileImage,
	client domain_activity.ClientInfo,
) (*domain_auth.User, error) {
	return uc.registrar.Register(ctx, req, image, client, usecase_auth.RegisterOptions{
		HonourRoleStatus: true,
		Actor:            actor,
		Action:           domain_activity.ActionAdminCreate,
		Description:      fmt.Sprintf("Created user (%s) by admin", strings.TrimSpace(req.Email)),
	})
}

// manageable loads a user an admin may still edit or delete. Deleted users are
// reported as not found.
func (uc *adminUsecase) manageable(ctx context.Context, id string) (*domain_auth.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || (user.Status != domain_auth.StatusActive && user.Status != domain_auth.StatusInactive) {
		return nil, fmt.Errorf("user %s not found or already deleted: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

func (uc *adminUsecase) record(ctx context.Context, event domain_activity.Event) {
	if err := uc.recorder.Record(ctx, event); err != nil {
		uc.logger.Warn("Activity not recorded", zap.String("action", event.Action), zap.Error(err))
	}
}
