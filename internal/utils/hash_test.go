// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"sync"
	"testing"
)

func TestChecksum_Deterministic(t *testing.T) {
	payload := []byte(`{"name":"Ana","age":7}`)

	sum1 := Checksum(payload, false)
	sum2 := Checksum(payload, false)

	if sum1 == "" {
		t.Fatal("checksum is empty")
	}
	if sum1 != sum2 {
		t.Fatal("checksum must be deterministic for the same input")
	}
	if len(sum1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(sum1))
	}
}

func TestChecksum_DistinguishesPayloads(t *testing.T) {
	if Checksum([]byte(`{"v":1}`), false) == Checksum([]byte(`{"v":2}`), false) {
		t.Error("different payloads must produce different checksums")
	}
}

func TestChecksum_DeleteIgnoresPayload(t *testing.T) {
	a := Checksum([]byte(`{"v":1}`), true)
	b := Checksum(nil, true)

	if a != b {
		t.Error("tombstones must share one checksum")
	}
	if a == Checksum(nil, false) {
		t.Error("a tombstone must differ from an empty live record")
	}
}

func TestChecksum_Concurrent(t *testing.T) {
	want := Checksum([]byte("data"), false)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Checksum([]byte("data"), false); got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		}()
	}
	wg.Wait()
}

func TestBodyChecksum(t *testing.T) {
	body := []byte(`{"base_revision":0}`)

	if got := BodyChecksum(body); len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if BodyChecksum(body) == BodyChecksum(body[:len(body)-1]) {
		t.Error("a truncated body must not match")
	}
	if BodyChecksum(body) == Checksum(body, false) {
		t.Error("body and record checksums use distinct encodings")
	}
}
