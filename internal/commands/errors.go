package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodePrefix         = "L10N_"
	commandValidationCode  = "L10N_COMMAND_VALIDATION_FAILED"
	commandContextCanceled = "L10N_COMMAND_CONTEXT_CANCELED"
	commandContextTimeout  = "L10N_COMMAND_CONTEXT_TIMEOUT"
	commandExecuteFailed   = "L10N_COMMAND_EXECUTION_FAILED"
)

// kindCategories maps domain failures onto go-errors categories so callers
// can branch on either.
var kindCategories = map[domain.ErrorKind]goerrors.Category{
	domain.KindValidation:                goerrors.CategoryValidation,
	domain.KindConsistency:               goerrors.CategoryConflict,
	domain.KindMutualExclusion:           goerrors.CategoryConflict,
	domain.KindRuntimeSave:               goerrors.CategoryInternal,
	domain.KindMissingParentLocalization: goerrors.CategoryConflict,
	domain.KindNotFound:                  goerrors.CategoryNotFound,
}

// TextCode returns the text code reported for a domain kind, e.g.
// L10N_MISSING_PARENT_LOCALIZATION.
func TextCode(kind domain.ErrorKind) string {
	if kind == "" {
		return commandExecuteFailed
	}
	return textCodePrefix + strings.ToUpper(string(kind))
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
		WithTextCode(commandContextCanceled)
}

// wrapExecuteError tags err with the category and text code of its domain
// kind. Errors without a kind are reported as command failures.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err)
	}
	kind := domain.KindOf(err)
	category, ok := kindCategories[kind]
	if !ok {
		category = goerrors.CategoryCommand
	}
	return goerrors.Wrap(err, category, "command execution failed").WithTextCode(TextCode(kind))
}
