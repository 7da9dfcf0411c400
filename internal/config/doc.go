// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the field node and the cloud store service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetNodeConfig] and [GetCloudConfig]. The
// operator-editable subset lives in a separate settings file managed by
// [SettingsStore] and reloaded by [SettingsWatcher].
package config
