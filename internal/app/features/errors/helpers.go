// internal/app/features/errors/helpers.go
package errors

import (
	stderrors "errors"

	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

func asPartial(err error, target **submission.PartialSubmissionError) bool {
	return stderrors.As(err, target)
}

func isBusy(err error) bool {
	return stderrors.Is(err, submission.ErrResumeBusy)
}

func idStrings(ids []models.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
