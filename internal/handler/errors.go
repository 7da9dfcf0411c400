// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned when no listen address is configured,
// leaving the process without any transport. It is fatal at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
