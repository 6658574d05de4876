// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram implements the pkg/core/scram.Hasher interface with
// the xdg-go/scram package, so the database role passwords can be sent
// to PostgreSQL in their hashed form.
package scram

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/xdg-go/scram"
)

// Names of the supported database authentication methods.
const (
	MethodSHA1   = "scram-sha-1"
	MethodSHA256 = "scram-sha-256"
)

// Mechanism is a SCRAM hasher for one hash function.
type Mechanism struct {
	gen     scram.HashGeneratorFcn
	saltLen int // bytes
	prefix  string
}

// SHA1 returns the SCRAM-SHA-1 mechanism.
func SHA1() *Mechanism {
	return &Mechanism{gen: scram.SHA1, saltLen: 160 / 8, prefix: "SCRAM-SHA-1"}
}

// SHA256 returns the SCRAM-SHA-256 mechanism.
func SHA256() *Mechanism {
	return &Mechanism{gen: scram.SHA256, saltLen: 256 / 8, prefix: "SCRAM-SHA-256"}
}

// ForMethod returns the mechanism of a database authentication method
// name, as written in the database configuration section.
func ForMethod(method string) (*Mechanism, error) {
	switch method {
	case MethodSHA1:
		return SHA1(), nil
	case MethodSHA256:
		return SHA256(), nil
	}
	return nil, fmt.Errorf(
		"unsupported database authentication method: %q", method,
	)
}

// Hash computes the PostgreSQL representation of a SCRAM verifier:
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// An empty salt is replaced by a random one.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < 4096:
		return "", fmt.Errorf("iters (%d) is less than 4096", iters)
	}
	if salt == "" {
		b := make([]byte, m.saltLen)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		salt = base64.StdEncoding.EncodeToString(b)
	}
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding base64 salt: %w", err)
	}
	// SASLprep normalization of pass happens here
	c, err := m.gen.NewClient("rentweb", pass, "")
	if err != nil {
		return "", fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(rawSalt),
		Iters: iters,
	})
	enc := base64.StdEncoding
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s", m.prefix, iters, salt,
		enc.EncodeToString(sc.StoredKey), enc.EncodeToString(sc.ServerKey),
	), nil
}
