// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "sync"

type storageHealth struct {
	mu    sync.RWMutex
	fault error
}

// NewStorageHealth returns a healthy tracker.
func NewStorageHealth() StorageHealth {
	return &storageHealth{}
}

func (h *storageHealth) ReportFault(err error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	h.fault = err
	h.mu.Unlock()
}

func (h *storageHealth) Fault() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fault
}

func (h *storageHealth) Clear() {
	h.mu.Lock()
	h.fault = nil
	h.mu.Unlock()
}
