// File: internal/usecase/user_uc.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ UserUseCase = (*userUC)(nil)

type RegisterUserInput struct {
	Username string
	Email    string
	Mobile   string
	DeviceID string
}

type UserUseCase interface {
	Register(ctx context.Context, in RegisterUserInput) (*model.User, error)
	Get(ctx context.Context, id model.UserID) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]*model.User, error)
	Timeline(ctx context.Context, userID model.UserID, limit int) ([]*model.TimelineEvent, error)
	// AddTimelineEvent appends an operator-written event to a user's history.
	AddTimelineEvent(ctx context.Context, userID model.UserID, eventType, title, description string, metadata map[string]any) (*model.TimelineEvent, error)
}

type userUC struct {
	users    repository.UserRepository
	timeline repository.TimelineRepository
	txm      repository.TransactionManager
	now      func() time.Time
	log      *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, timeline repository.TimelineRepository, txm repository.TransactionManager, logger *zerolog.Logger) *userUC {
	l := logger.With().Str("component", "UserUC").Logger()
	return &userUC{users: users, timeline: timeline, txm: txm, now: time.Now, log: &l}
}

func (u *userUC) Register(ctx context.Context, in RegisterUserInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Mobile = strings.TrimSpace(in.Mobile)
	if in.Username == "" || in.Mobile == "" {
		return nil, domain.ErrMissingFields
	}

	now := u.now()
	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     in.Username,
		Email:        in.Email,
		Mobile:       in.Mobile,
		DeviceID:     in.DeviceID,
		Subscription: "none",
		RegisteredAt: now,
		UpdatedAt:    now,
	}

	err := u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.users.Save(ctx, tx, user); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, &model.TimelineEvent{
			ID:          ulid.Make().String(),
			UserID:      user.ID,
			EventType:   model.EventRegistration,
			Title:       "Account created",
			Description: "User registered via the mobile app",
			Metadata:    map[string]any{"deviceId": in.DeviceID},
			Timestamp:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

func (u *userUC) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	if id.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	user, err := u.users.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (u *userUC) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	return u.users.List(ctx, repository.NoTX, offset, limit)
}

func (u *userUC) Timeline(ctx context.Context, userID model.UserID, limit int) ([]*model.TimelineEvent, error) {
	if userID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	return u.timeline.ListByUser(ctx, repository.NoTX, userID, limit)
}

func (u *userUC) AddTimelineEvent(ctx context.Context, userID model.UserID, eventType, title, description string, metadata map[string]any) (*model.TimelineEvent, error) {
	if userID.Empty() || eventType == "" {
		return nil, domain.ErrInvalidArgument
	}
	if _, err := u.users.FindByID(ctx, repository.NoTX, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	e := &model.TimelineEvent{
		ID:          ulid.Make().String(),
		UserID:      userID,
		EventType:   model.TimelineEventType(eventType),
		Title:       title,
		Description: description,
		Metadata:    metadata,
		Timestamp:   u.now(),
	}
	if err := u.timeline.Append(ctx, repository.NoTX, e); err != nil {
		return nil, err
	}
	return e, nil
}
