// File: internal/usecase/upi_app_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ UpiAppUseCase = (*upiAppUC)(nil)

type UpiAppInput struct {
	Name        string
	PackageName string
	Icon        string
	Priority    int
	Active      *bool // nil means enabled
}

type UpiAppUseCase interface {
	// List returns the enabled apps, highest priority first. An empty table
	// is seeded with the stock picker entries on first read.
	List(ctx context.Context) ([]*model.UpiApp, error)
	Create(ctx context.Context, in UpiAppInput) (*model.UpiApp, error)
}

type upiAppUC struct {
	apps repository.UpiAppRepository
	now  func() time.Time
	log  *zerolog.Logger
}

func NewUpiAppUseCase(apps repository.UpiAppRepository, logger *zerolog.Logger) *upiAppUC {
	l := logger.With().Str("component", "UpiAppUC").Logger()
	return &upiAppUC{apps: apps, now: time.Now, log: &l}
}

// defaultUpiApps is the stock picker list; the Android client ships these
// icons in its assets.
func defaultUpiApps() []UpiAppInput {
	return []UpiAppInput{
		{Name: "PhonePe", PackageName: "com.phonepe.app", Icon: "assets/images/payment_icons/icons8-phone-pe.png", Priority: 5},
		{Name: "Google Pay", PackageName: "com.google.android.apps.nfc.payment", Icon: "assets/images/payment_icons/icons8-google-pay.png", Priority: 4},
		{Name: "Paytm", PackageName: "net.one97.paytm", Icon: "assets/images/payment_icons/icons8-paytm.png", Priority: 3},
		{Name: "BHIM", PackageName: "in.org.npci.upiapp", Icon: "assets/images/payment_icons/icons8-bhim.png", Priority: 2},
		{Name: "Amazon Pay", PackageName: "in.amazon.mShop.android.shopping", Icon: "assets/images/payment_icons/amazon-pay-svgrepo-com.png", Priority: 1},
	}
}

func (u *upiAppUC) List(ctx context.Context) ([]*model.UpiApp, error) {
	apps, err := u.apps.ListActive(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	if len(apps) > 0 {
		return apps, nil
	}
	for _, in := range defaultUpiApps() {
		app, err := u.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	u.log.Info().Int("count", len(apps)).Msg("seeded default upi apps")
	return apps, nil
}

func (u *upiAppUC) Create(ctx context.Context, in UpiAppInput) (*model.UpiApp, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	app, err := model.NewUpiApp(uuid.NewString(), in.Name, in.PackageName, in.Icon, in.Priority, active, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.apps.Save(ctx, repository.NoTX, app); err != nil {
		return nil, err
	}
	return app, nil
}
