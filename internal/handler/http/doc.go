// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the two HTTP surfaces of the system.
//
// The field node serves the operator API under /hybrid (status, manual sync,
// backups, runtime settings and record writes for out-of-process modules)
// together with /metrics. The cloud store serves the change feed under /api,
// authenticated with node tokens. Request tracing, access logging, gzip and
// body integrity checks are middleware shared by both routers.
package http
