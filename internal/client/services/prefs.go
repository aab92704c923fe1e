package services

import (
	"context"

	"github.com/orator-app/orator-cli/internal/client/repositories/metadata"
	"github.com/orator-app/orator-cli/internal/common"
)

// PrefsService persists small UI preferences in the metadata store.
type PrefsService interface {
	SidebarCollapsed(ctx context.Context) (bool, error)
	SetSidebarCollapsed(ctx context.Context, collapsed bool) error
}

type prefsService struct {
	store metadata.Repository
}

func NewPrefsService(store metadata.Repository) PrefsService {
	return &prefsService{store: store}
}

func (p *prefsService) SidebarCollapsed(ctx context.Context) (bool, error) {
	v, err := p.store.Get(ctx, common.MetaKeySidebarCollapsed)
	if err != nil {
		return false, err
	}
	return string(v) == "true", nil
}

func (p *prefsService) SetSidebarCollapsed(ctx context.Context, collapsed bool) error {
	v := "false"
	if collapsed {
		v = "true"
	}
	return p.store.Set(ctx, common.MetaKeySidebarCollapsed, []byte(v))
}
