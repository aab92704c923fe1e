package cli

import (
	"context"
	"fmt"
	"log"
)

// Sidebar toggles the persisted sidebar preference.
func (a *App) Sidebar(ctx context.Context) error {
	collapsed, err := a.prefs.SidebarCollapsed(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if err := a.prefs.SetSidebarCollapsed(ctx, !collapsed); err != nil {
		log.Println(err.Error())
		return err
	}

	if !collapsed {
		fmt.Println("Sidebar collapsed")
	} else {
		fmt.Println("Sidebar expanded")
	}
	return nil
}
