// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client runs the Life OS terminal client.
//
// An [App] signs the user in (or restores the saved session), prepares the
// device identity, the sync marker and the local task state, starts the
// background sync scheduler and hands control to the TUI until the user
// quits. Logging out returns to the sign-in screen in the same process.
package client
