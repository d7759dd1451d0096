package game

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/simon/pkg/game/constants"
	"github.com/cbodonnell/simon/pkg/game/types"
)

// SequenceMismatchError is returned when a press does not match the computer's sequence.
// The game has already been reset when it is returned.
type SequenceMismatchError struct {
	Index    int
	Expected types.Color
	Got      types.Color
}

func (e *SequenceMismatchError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("sequence mismatch at press %d: no press expected, got %s", e.Index+1, e.Got)
	}
	return fmt.Sprintf("sequence mismatch at press %d: expected %s, got %s", e.Index+1, e.Expected, e.Got)
}

func IsSequenceMismatch(err error) bool {
	var target *SequenceMismatchError
	return errors.As(err, &target)
}

// InvalidSkillLevelError is returned when a skill level outside the accepted range is selected.
type InvalidSkillLevelError struct {
	Value string
}

func (e *InvalidSkillLevelError) Error() string {
	return constants.SkillLevelErrorMsg
}

func IsInvalidSkillLevel(err error) bool {
	var target *InvalidSkillLevelError
	return errors.As(err, &target)
}
