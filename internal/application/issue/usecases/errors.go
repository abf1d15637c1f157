package usecases

import (
	stderrors "errors"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/errors"
)

// toAppError maps domain and repository failures to application errors. Unknown errors
// become a generic internal error so storage details never reach callers.
func toAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, issue.ErrNotFound):
		return errors.NewNotFoundError("issue not found")
	case stderrors.Is(err, issue.ErrInvalidTransition):
		return errors.NewInvalidStateError(err.Error())
	case stderrors.Is(err, issue.ErrInvalidTechLevel):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, issue.ErrReportCodeExhausted):
		return errors.NewInternalError("could not allocate a report code")
	default:
		return errors.NewInternalError("failed to persist issue")
	}
}
