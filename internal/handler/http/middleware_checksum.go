// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
)

// verifyBodyChecksum compares the [utils.BodyChecksumHeader] of a push with
// the BLAKE2b digest of the body it received. Requests without the header
// pass through; the per-entry checksums are still checked by the validator.
func (h *Handler) verifyBodyChecksum(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		expected := r.Header.Get(utils.BodyChecksumHeader)
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		// read bytes from body
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, utils.MaxRequestBodyBytes))
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyBodyChecksum").Msg("failed to read request body")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		actual := utils.BodyChecksum(body)
		if actual != expected {
			log.Error().Str("func", "*Handler.verifyBodyChecksum").
				Str("checksum from request", expected).
				Str("checksum of body", actual).
				Err(ErrBodyChecksumMismatch).
				Send()
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
