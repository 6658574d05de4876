// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interface for hashing passwords
// with the Salted Challenge Response Authentication Mechanism (SCRAM)
// as defined by RFC 5802 and RFC 7677. The implementation is kept in
// the adapter layer.
//
// The database initialization use case renews the passwords of the
// database roles and it only needs to compute their verifiers, so the
// plaintext passwords never appear in the CREATE/ALTER ROLE queries
// (which may be logged). The SCRAM conversations themselves are
// handled by PostgreSQL and its driver.
package scram

// Hasher computes the storedKey and serverKey of a SCRAM verifier for
// a specific hash function (such as SHA1 or SHA256).
type Hasher interface {
	// Hash returns the verifier of pass in the format which
	// PostgreSQL accepts in place of a plaintext password:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// The pass must be non-empty and is normalized by SASLprep. The salt
	// is base64 encoded, or empty for a random salt. The iters must be
	// at least 4096.
	Hash(pass, salt string, iters int) (string, error)
}
