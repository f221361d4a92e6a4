// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates record identifiers and response metadata.

# Identifiers

Responses get a random UUID:

	id := ident.NewID()

# Client Metadata

Responses optionally store a salted hash of the client IP and the user
agent. Neither is ever returned in JSON.

	meta := ident.NewResponseMeta(ip, r.UserAgent(), cfg.IPHashSalt)

Without a salt (IP_HASH_SALT unset) no IP information is stored.
HashIP uses HMAC-SHA256 and keeps the first 8 bytes (16 hex characters),
enough to spot repeated submissions without storing the address.
*/
package ident
