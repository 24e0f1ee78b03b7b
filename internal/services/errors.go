package services

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/readsprout/learning-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")

	ErrChildNotFound      = errors.New("child not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrEmptySubmission rejects assessment submissions with no answers.
	ErrEmptySubmission = errors.New("assessment submission must contain at least one answer")

	// ErrActivityReference rejects a progress event that neither resolves
	// an existing activity nor carries a name to create one from.
	ErrActivityReference = errors.New("activity id or activity name required")
)

// Use shared validation errors from the errors package.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ConfigurationError reports a badge predicate referencing a key missing
// from the achievement catalog. This is a programming error in the
// catalog/predicate tables and must never be swallowed.
type ConfigurationError struct {
	BadgeKey string
}

func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("achievement catalog has no definition for badge key %q", ce.BadgeKey)
}

// BadgeFailure records one badge whose persistence failed during an
// evaluation pass.
type BadgeFailure struct {
	Key string
	Err error
}

// PartialFailureError carries the storage failures collected while the
// achievement engine kept evaluating the remaining predicates. The
// successfully awarded badges travel back on the normal return value.
type PartialFailureError struct {
	Failures []BadgeFailure
}

func (pe *PartialFailureError) Error() string {
	keys := make([]string, len(pe.Failures))
	for i, f := range pe.Failures {
		keys[i] = f.Key
	}
	return fmt.Sprintf("failed to persist %d badge(s): %s", len(pe.Failures), strings.Join(keys, ", "))
}

func (pe *PartialFailureError) Unwrap() []error {
	errs := make([]error, len(pe.Failures))
	for i, f := range pe.Failures {
		errs[i] = f.Err
	}
	return errs
}

// ===== ERROR HELPERS =====

func IsNotFound(err error) bool {
	return errors.Is(err, ErrChildNotFound) ||
		errors.Is(err, ErrActivityNotFound) ||
		errors.Is(err, ErrAssessmentNotFound)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrEmptySubmission) ||
		errors.Is(err, ErrActivityReference) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsPartialFailure(err error) bool {
	var pe *PartialFailureError
	return errors.As(err, &pe)
}
