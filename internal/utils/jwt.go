// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateNodeToken creates a signed HMAC-SHA256 JWT for a field node.
//
// The token carries iss, sub (the node ID), iat and exp. All parameters are
// required.
//
// Example usage:
//
//	token, err := utils.GenerateNodeToken("go-hybrid-sync", "clinic-07", 24*time.Hour, "secret")
func GenerateNodeToken(issuer, nodeID string, tokenDuration time.Duration, signKey string) (models.NodeToken, error) {
	if issuer == "" || nodeID == "" || tokenDuration == 0 || signKey == "" {
		return models.NodeToken{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   nodeID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.NodeToken{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.NodeToken{Token: token, SignedString: tokenString, NodeID: nodeID}, nil
}

// ValidateNodeToken verifies the signature, issuer and expiry of tokenString
// and extracts the node ID from its subject.
func ValidateNodeToken(tokenString, tokenSignKey, tokenIssuer string) (models.NodeToken, error) {
	parsed := &models.NodeToken{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.NodeToken{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	nodeID, err := parsed.GetNodeID()
	if err != nil {
		return models.NodeToken{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}

	return models.NodeToken{Token: token, SignedString: tokenString, NodeID: nodeID}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
