package recommend

import "errors"

// ErrNoUserTeam is returned when the draft has no identified user team.
var ErrNoUserTeam = errors.New("no user team identified")

// ErrUnknownTeam is returned when a requested team slot does not exist.
var ErrUnknownTeam = errors.New("unknown team")
