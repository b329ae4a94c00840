package tui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// TUI runs the terminal screens. AuthFlow and MainLoop each run their own
// Bubble Tea program.
type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	versionListLimit int

	// program is the running main loop, nil between runs.
	program atomic.Pointer[tea.Program]
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, versionListLimit int, logger *logger.Logger) *TUI {
	return &TUI{
		services:         services,
		buildInfo:        buildInfo,
		logger:           logger,
		versionListLimit: versionListLimit,
	}
}

// AuthFlow shows the sign-in menu until the user signs in or quits.
func (t *TUI) AuthFlow(ctx context.Context) (models.Session, error) {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.services.AuthService),
		pageRegister: NewRegisterModel(ctx, t.services.AuthService),
	}

	result, err := t.run(ctx, NewRootModel(pages, pageMenu, t.buildInfo), false)
	if err != nil {
		return models.Session{}, err
	}
	if result.quitByUser {
		return models.Session{}, ErrUserQuit
	}
	return result.session, nil
}

// MainLoop runs the vault screens. It starts on the unlock page while the
// session is locked. logout reports that the user signed out.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	pages := map[string]tea.Model{
		pageUnlock:    NewUnlockModel(ctx, t.services),
		pageTasks:     NewTasksModel(ctx, t.services),
		pageTaskForm:  NewTaskFormModel(ctx, t.services),
		pageTemplates: NewTemplatesModel(ctx, t.services),
		pageConflict:  NewConflictModel(ctx, t.services),
		pageHistory:   NewHistoryModel(ctx, t.services, t.versionListLimit),
		pageDevices:   NewDevicesModel(ctx, t.services),
		pageExport:    NewExportModel(ctx, t.services),
	}

	start := pageTasks
	if t.services.Session.Locked() {
		start = pageUnlock
	}

	result, err := t.run(ctx, NewRootModel(pages, start, t.buildInfo), true)
	if err != nil {
		return false, err
	}
	if result.quitByUser {
		return false, ErrUserQuit
	}
	return result.logout, nil
}

// NotifyLocked moves the running main loop to the unlock page. It is safe
// to call from any goroutine and does nothing when no loop is running.
func (t *TUI) NotifyLocked() {
	if p := t.program.Load(); p != nil {
		p.Send(VaultLocked{})
	}
}

func (t *TUI) run(ctx context.Context, root RootModel, track bool) (RootModel, error) {
	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	if track {
		t.program.Store(p)
		defer t.program.Store(nil)
	}

	finalModel, err := p.Run()
	if err != nil {
		t.logger.Error().Err(err).Msg("tui program failed")
		return RootModel{}, err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return RootModel{}, tea.ErrProgramKilled
	}
	return result, nil
}
