// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildValueUnknown stands in for build metadata the linker did not set.
const BuildValueUnknown = "N/A"

// AppBuildInfo is the release metadata injected into cmd/server with -ldflags.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo replaces blank values with [BuildValueUnknown].
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	orUnknown := func(s string) string {
		if s == "" {
			return BuildValueUnknown
		}
		return s
	}

	return AppBuildInfo{Version: orUnknown(version), Date: orUnknown(date), Commit: orUnknown(commit)}
}

// HasVersion reports whether a real release version was injected.
func (a AppBuildInfo) HasVersion() bool {
	return a.Version != "" && a.Version != BuildValueUnknown
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version=%s date=%s commit=%s", a.Version, a.Date, a.Commit)
}
