package tui

import (
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// Page names used with [NavigateTo].
const (
	pageMenu      = "menu"
	pageLogin     = "login"
	pageRegister  = "register"
	pageUnlock    = "unlock"
	pageTasks     = "tasks"
	pageTaskForm  = "task_form"
	pageTemplates = "templates"
	pageConflict  = "conflict"
	pageHistory   = "history"
	pageDevices   = "devices"
	pageExport    = "export"
)

// NavigateTo switches the active page. Payload, when set, is delivered to
// the new page right after its Init.
type NavigateTo struct {
	Page    string
	Payload any
}

// AuthResult finishes the sign-in flow when Err is nil.
type AuthResult struct {
	Session models.Session
	Err     error
}

// RegisterResult is produced by the registration form.
type RegisterResult struct {
	Username string
	Err      error
}

// RegisterSuccessNotice is shown by the menu after a registration.
type RegisterSuccessNotice struct {
	Username string
}

type (
	LogoutRequested struct{}
	QuitRequested   struct{}

	// VaultLocked is sent when the vault was locked by the idle timer.
	VaultLocked struct{}
)

// unlockDoneMsg reports the first sync after the passphrase was entered.
type unlockDoneMsg struct {
	err error
}

type stateLoadedMsg struct {
	state *models.State
	err   error
}

// mutationDoneMsg reports any task or template change.
type mutationDoneMsg struct {
	notice string
	err    error
}

type syncDoneMsg struct {
	notice string
	err    error
}

type versionsLoadedMsg struct {
	versions []models.VersionInfo
	err      error
}

type devicesLoadedMsg struct {
	devices []models.Device
	current string
	err     error
}

type fileDoneMsg struct {
	notice string
	err    error
}

// statusTickMsg refreshes the sync status line. Ticks of an older
// generation are dropped so that revisiting a page does not double them.
type statusTickMsg struct {
	gen int
}

// editTask opens the task form for an existing task.
type editTask struct {
	task models.Task
}

// newTemplate opens the task form in template mode.
type newTemplate struct{}
