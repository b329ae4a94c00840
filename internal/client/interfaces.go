// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is what cmd/client runs.
type Client interface {
	// Run blocks until the user quits. Logging out does not end it.
	Run() error
}

var _ Client = (*App)(nil)
