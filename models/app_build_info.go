// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"io"
	"strings"
)

// NotAvailable stands in for build metadata the linker did not set.
const NotAvailable = "N/A"

// AppBuildInfo is the version, date and commit injected with -ldflags.
// The version is also stamped on audit events, vault rows and export files.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo replaces blank values with [NotAvailable].
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNotAvailable(buildVersion),
		date:    orNotAvailable(buildDate),
		commit:  orNotAvailable(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }
func (a AppBuildInfo) BuildDate() string    { return a.date }
func (a AppBuildInfo) BuildCommit() string  { return a.commit }

// Known reports whether the linker set a version.
func (a AppBuildInfo) Known() bool {
	return a.version != "" && a.version != NotAvailable
}

// Build is the short "date+commit" label written into export metadata.
// Unset parts are left out.
func (a AppBuildInfo) Build() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{a.date, a.commit} {
		if p != "" && p != NotAvailable {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "+")
}

// Print writes the startup banner both binaries show.
func (a AppBuildInfo) Print(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNotAvailable(a.version), orNotAvailable(a.date), orNotAvailable(a.commit))
}

func orNotAvailable(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return NotAvailable
	}
	return v
}
