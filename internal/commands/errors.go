package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes surfaced on publishing command failures so callers and logs can
// tell a rejected message apart from a run that died mid-flight.
const (
	codeMessageRejected = "PRESS_MESSAGE_REJECTED"
	codeRunCanceled     = "PRESS_RUN_CANCELED"
	codeRunTimedOut     = "PRESS_RUN_TIMED_OUT"
	codeRunContext      = "PRESS_RUN_CONTEXT"
	codeRunFailed       = "PRESS_RUN_FAILED"
)

// wrapValidationError marks a message that never reached its handler.
// Already-wrapped errors keep their original category and code.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "publishing command rejected").
		WithTextCode(codeMessageRejected)
}

// wrapContextError classifies why the surrounding context ended a run.
func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "publishing run canceled").
			WithTextCode(codeRunCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "publishing run timed out").
			WithTextCode(codeRunTimedOut)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "publishing run context error").
			WithTextCode(codeRunContext)
	}
}

// wrapExecuteError covers failures raised by the handler itself.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "publishing run failed").
		WithTextCode(codeRunFailed)
}
