package usecase_auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/internal/tokenutil"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type Config struct {
	JWTSecret    string
	TokenExpiry  time.Duration
	OTPTTL       time.Duration
	OnlineWindow time.Duration
}

type authUsecase struct {
	repo      domain_auth.UserRepository
	registrar *Registrar
	images    *usecase.ProfileImages
	recorder  domain_activity.Recorder
	otp       domain_auth.OTPStore
	presence  domain_auth.PresenceTracker
	mailer    domain_auth.Mailer
	cfg       Config
	timeout   time.Duration
	now       func() time.Time
	newCode   func() (string, error)
	logger    *zap.Logger
}

func NewAuthUsecase(
	repo domain_auth.UserRepository,
	registrar *Registrar,
	images *usecase.ProfileImages,
	recorder domain_activity.Recorder,
	otp domain_auth.OTPStore,
	presence domain_auth.PresenceTracker,
	mailer domain_auth.Mailer,
	cfg Config,
	timeout time.Duration,
	logger *zap.Logger,
) domain_auth.AuthUsecase {
	return &authUsecase{
		repo:      repo,
		registrar: registrar,
		images:    images,
		recorder:  recorder,
		otp:       otp,
		presence:  presence,
		mailer:    mailer,
		cfg:       cfg,
		timeout:   timeout,
		now:       time.Now,
		newCode:   fourDigitCode,
		logger:    logger.Named("AuthUsecase"),
	}
}

func (uc *authUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (uc *authUsecase) Register(ctx context.Context, req domain_auth.RegisterRequest, image *domain_auth.ProfileImage, client domain_activity.ClientInfo) (*domain_auth.User, error) {
	return uc.registrar.Register(ctx, req, image, client, RegisterOptions{})
}

func (uc *authUsecase) Login(ctx context.Context, req domain_auth.LoginRequest, client domain_activity.ClientInfo) (*domain_auth.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.repo.GetActiveByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", fmt.Errorf("login %s: %w", req.Email, domain.ErrNotFound)
	}
	if !usecase.PasswordMatches(user.Password, req.Password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := tokenutil.CreateSessionToken(user.ID.Hex(), uc.cfg.JWTSecret, uc.cfg.TokenExpiry)
	if err != nil {
		return nil, "", err
	}

	uc.record(ctx, user.ID, user.ID, domain_activity.ActionLogin, "Successfully logged in", client)
	return user, token, nil
}

func (uc *authUsecase) Authenticate(ctx context.Context, token string) (*domain_auth.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	userID, err := tokenutil.ExtractUserID(token, uc.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", domain.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s inactive or deleted: %w", userID, domain.ErrForbidden)
	}
	return user, nil
}

func (uc *authUsecase) Me(ctx context.Context, userID primitive.ObjectID) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.activeUser(ctx, userID)
}

// ============== 找回密码 ==============

func (uc *authUsecase) SendResetCode(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.activeUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := uc.newCode()
	if err != nil {
		return err
	}
	if err := uc.otp.Save(ctx, user.Email, code, uc.cfg.OTPTTL); err != nil {
		return err
	}

	return uc.mailer.Send(ctx, user.Email, "Password Reset OTP", "Your OTP for password reset is: "+code)
}

func (uc *authUsecase) VerifyResetCode(ctx context.Context, email, code string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.activeUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	return uc.checkCode(ctx, user.Email, code)
}

func (uc *authUsecase) CompleteReset(ctx context.Context, req domain_auth.ForgotPasswordRequest, client domain_activity.ClientInfo) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.activeUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := uc.checkCode(ctx, user.Email, req.OTP); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, domain.ErrInvalidInput)
	}
	if usecase.PasswordMatches(user.Password, req.Password) {
		return domain.ErrPasswordReused
	}

	if err := uc.setPassword(ctx, user.ID, req.Password); err != nil {
		return err
	}
	if err := uc.otp.Delete(ctx, user.Email); err != nil {
		uc.logger.Warn("Reset code not deleted", zap.Error(err))
	}

	uc.record(ctx, user.ID, user.ID, domain_activity.ActionUpdate, "Changed password through forgot password", client)
	return nil
}

// ============== 账户管理 ==============

func (uc *authUsecase) ResetPassword(ctx context.Context, userID primitive.ObjectID, req domain_auth.ResetPasswordRequest, client domain_activity.ClientInfo) error {
	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if !usecase.PasswordMatches(user.Password, req.OldPassword) {
		return domain.ErrInvalidCredentials
	}

	if err := uc.setPassword(ctx, user.ID, req.NewPassword); err != nil {
		return err
	}

	uc.record(ctx, user.ID, user.ID, domain_activity.ActionUpdate, "Updated password", client)
	return nil
}

func (uc *authUsecase) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req domain_auth.UpdateProfileRequest, image *domain_auth.ProfileImage, client domain_activity.ClientInfo) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.activeUser(ctx, userID)
	if err != nil {
		return err
	}

	imgName, err := uc.images.Replace(ctx, user.ImgURL, image)
	if err != nil {
		return err
	}

	set := bson.M{
		"firstName": strings.TrimSpace(req.FirstName),
		"lastName":  strings.TrimSpace(req.LastName),
		"email":     strings.TrimSpace(req.Email),
		"phoneNo":   req.PhoneNo,
		"location":  req.Location,
	}
	if imgName != user.ImgURL {
		set["imgUrl"] = imgName
	}
	if _, err := uc.repo.UpdateByID(ctx, user.ID, bson.M{"$set": set}); err != nil {
		return err
	}

	uc.record(ctx, user.ID, user.ID, domain_activity.ActionUpdate, "Updated profile details", client)
	return nil
}

func (uc *authUsecase) DeleteAccount(ctx context.Context, userID primitive.ObjectID, client domain_activity.ClientInfo) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := uc.repo.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{"status": domain_auth.StatusDeleted}}); err != nil {
		return err
	}

	uc.record(ctx, user.ID, user.ID, domain_activity.ActionDelete, "Deleted account", client)
	return nil
}

func (uc *authUsecase) Logout(ctx context.Context, userID primitive.ObjectID, client domain_activity.ClientInfo) {
	if userID.IsZero() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	uc.record(ctx, userID, userID, domain_activity.ActionLogout, "User manually logged out", client)
}

// ============== 在线状态 ==============

func (uc *authUsecase) TouchPresence(ctx context.Context, userID primitive.ObjectID) {
	if err := uc.presence.Touch(ctx, userID, uc.now()); err != nil {
		uc.logger.Warn("Presence not updated", zap.String("userID", userID.Hex()), zap.Error(err))
	}
}

func (uc *authUsecase) UsersWithPresence(ctx context.Context, userID primitive.ObjectID) ([]domain_auth.UserPresence, *domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	current, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	users, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	lastSeen, err := uc.presence.LastSeen(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	now := uc.now()
	result := make([]domain_auth.UserPresence, 0, len(users))
	for _, u := range users {
		entry := domain_auth.UserPresence{User: *u}
		if seen, ok := lastSeen[u.ID]; ok {
			seen := seen
			entry.LastSeen = &seen
			entry.IsOnline = now.Sub(seen) <= uc.cfg.OnlineWindow
		}
		result = append(result, entry)
	}
	return result, current, nil
}

// ============== 辅助方法 ==============

func (uc *authUsecase) activeUser(ctx context.Context, id primitive.ObjectID) (*domain_auth.User, error) {
	user, err := uc.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return user, nil
}

func (uc *authUsecase) activeUserByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	user, err := uc.repo.GetActiveByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return user, nil
}

func (uc *authUsecase) checkCode(ctx context.Context, email, code string) error {
	stored, err := uc.otp.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored == "" || stored != strings.TrimSpace(code) {
		return domain.ErrInvalidOTP
	}
	return nil
}

func (uc *authUsecase) setPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := usecase.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = uc.repo.UpdateByID(ctx, id, bson.M{"$set": bson.M{"password": hash}})
	return err
}

func (uc *authUsecase) record(ctx context.Context, actor, target primitive.ObjectID, action, description string, client domain_activity.ClientInfo) {
	record(ctx, uc.recorder, uc.logger, domain_activity.Event{
		Actor:       actor,
		Target:      target,
		Action:      action,
		Description: description,
		Client:      client,
	})
}

func fourDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}
