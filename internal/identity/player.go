// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package identity

import (
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/oklog/ulid/v2"
)

// MaxScreenNameLength is the maximum size of a screen name in bytes.
const MaxScreenNameLength = 30

// Player represents a player account. Players are created on first sign-in
// and never deleted by this subsystem.
type Player struct {
	ID         ulid.ULID
	ScreenName string
	JoinedAt   time.Time
}

// NewPlayer creates a Player with a fresh time-ordered ID, a generated
// screen name, and the current time as the join timestamp.
func NewPlayer() *Player {
	return &Player{
		ID:         ulid.Make(),
		ScreenName: GenerateScreenName(),
		JoinedAt:   time.Now().UTC(),
	}
}

// GenerateScreenName returns a random two-word dashed name such as
// "model-walrus". Names are not guaranteed unique; identity is carried
// by the player ID.
func GenerateScreenName() string {
	return petname.Generate(2, "-")
}

// ValidScreenName reports whether s is a usable screen name: non-blank
// after trimming and within MaxScreenNameLength bytes.
func ValidScreenName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= MaxScreenNameLength
}
