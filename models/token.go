// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// NodeToken is the bearer credential a field node presents to the cloud
// store. The "sub" claim carries the node identifier.
type NodeToken struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// NodeID is the parsed "sub" claim.
	NodeID string `json:"-"`
}

// GetNodeID returns the node identifier from the subject claim.
func (t *NodeToken) GetNodeID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty node id in token subject")
	}
	return sub, nil
}

// String implements [fmt.Stringer].
func (t *NodeToken) String() string {
	return t.SignedString
}
