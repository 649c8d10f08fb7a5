package draft

import (
	"errors"
	"fmt"

	"github.com/okian/draftassist/internal/domain/model"
)

// Sentinel errors returned by Normalize. All of them wrap ErrNormalize.
var (
	ErrNormalize       = errors.New("draft normalization failed")
	ErrUnknownSource   = errors.New("unknown draft source")
	ErrMissingPayload  = errors.New("draft payload missing")
	ErrInvalidBoard    = errors.New(`invalid draft board data format: expected "Draft Board" array`)
	ErrNoRounds        = errors.New("no draft rounds found or invalid round format")
	ErrNoTeams         = errors.New("no teams found in first round")
	ErrNotEnhanced     = errors.New("board is not in the enhanced format")
	ErrNoEnhancedTeams = errors.New("enhanced board lists no teams")
	ErrDraftSize       = errors.New("draft size out of range")
)

// Shape names the payload layout a normalization attempt used.
type Shape string

const (
	ShapeSleeper  Shape = "sleeper"
	ShapeEnhanced Shape = "enhanced"
	ShapeSimple   Shape = "simple"
)

// NormalizeError reports which source and shape rejected the payload.
type NormalizeError struct {
	Source model.DataSource
	Shape  Shape
	Err    error
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("normalize %s draft (%s shape): %v", e.Source, e.Shape, e.Err)
}

func (e *NormalizeError) Unwrap() []error { return []error{ErrNormalize, e.Err} }
