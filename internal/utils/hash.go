// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/hex"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// hasherPool holds reusable unkeyed BLAKE2b-256 instances.
var hasherPool = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		if err != nil {
			// only a key longer than 64 bytes can fail
			panic(err)
		}
		return h
	},
}

// Checksum returns the hex BLAKE2b-256 digest of a record state. Two states
// with equal checksums carry the same payload and the same deletion flag.
//
// Example usage:
//
//	sum := utils.Checksum([]byte(`{"name":"x"}`), false)
func Checksum(payload []byte, deleted bool) string {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	if deleted {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
		h.Write(payload)
	}
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return hex.EncodeToString(sum)
}

// BodyChecksumHeader carries the BodyChecksum of a request body so the
// receiver can detect truncation or tampering in transit.
const BodyChecksumHeader = "X-Body-Checksum"

// BodyChecksum returns the hex BLAKE2b-256 digest of a raw request body.
func BodyChecksum(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}
