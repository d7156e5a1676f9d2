// File: internal/usecase/plan_uc.go
package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ PlanUseCase = (*planUC)(nil)

type PlanInput struct {
	Name         string
	MonthlyPrice int64
	YearlyPrice  int64
	Duration     string
	Features     []string
}

type PlanUseCase interface {
	Create(ctx context.Context, in PlanInput) (*model.Plan, error)
	Update(ctx context.Context, id model.PlanID, in PlanInput) (*model.Plan, error)
	Get(ctx context.Context, id model.PlanID) (*model.Plan, error)
	List(ctx context.Context) ([]*model.Plan, error)
	Delete(ctx context.Context, id model.PlanID) error
}

type planUC struct {
	plans repository.PlanRepository
	log   *zerolog.Logger
}

func NewPlanUseCase(plans repository.PlanRepository, logger *zerolog.Logger) *planUC {
	l := logger.With().Str("component", "PlanUC").Logger()
	return &planUC{plans: plans, log: &l}
}

func (u *planUC) Create(ctx context.Context, in PlanInput) (*model.Plan, error) {
	p, err := model.NewPlan(model.PlanID(uuid.NewString()), in.Name, in.MonthlyPrice, in.YearlyPrice, in.Duration, in.Features)
	if err != nil {
		return nil, err
	}
	if err := u.plans.Save(ctx, repository.NoTX, p); err != nil {
		return nil, err
	}
	u.log.Info().Str("plan_id", p.ID.String()).Str("name", p.Name).Msg("plan created")
	return p, nil
}

func (u *planUC) Update(ctx context.Context, id model.PlanID, in PlanInput) (*model.Plan, error) {
	p, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.MonthlyPrice > 0 {
		p.MonthlyPrice = in.MonthlyPrice
	}
	if in.YearlyPrice > 0 {
		p.YearlyPrice = in.YearlyPrice
	}
	if in.Duration != "" {
		p.Duration = in.Duration
	}
	if in.Features != nil {
		p.Features = in.Features
	}
	if err := u.plans.Save(ctx, repository.NoTX, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *planUC) Get(ctx context.Context, id model.PlanID) (*model.Plan, error) {
	if id.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	p, err := u.plans.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

func (u *planUC) List(ctx context.Context) ([]*model.Plan, error) {
	return u.plans.List(ctx, repository.NoTX)
}

func (u *planUC) Delete(ctx context.Context, id model.PlanID) error {
	if id.Empty() {
		return domain.ErrInvalidArgument
	}
	return u.plans.Delete(ctx, repository.NoTX, id)
}
