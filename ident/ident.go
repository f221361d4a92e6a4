// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/models"
)

// maxUserAgent bounds the stored user agent length
const maxUserAgent = 512

// NewID returns a random UUID (v4) for a new record
func NewID() string {
	return uuid.NewString()
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

// NewResponseMeta builds the metadata stored with a response.
// The IP is only kept (hashed) when a salt is configured.
func NewResponseMeta(ip, userAgent, salt string) models.ResponseMeta {
	var meta models.ResponseMeta
	if salt != "" && ip != "" {
		meta.IPHash = HashIP(ip, salt)
	}
	if len(userAgent) > maxUserAgent {
		userAgent = userAgent[:maxUserAgent]
	}
	meta.UserAgent = userAgent
	return meta
}
