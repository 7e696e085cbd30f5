// internal/application/usecase/submission_errors.go
package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// Step is one stage of a review submission, in execution order.
type Step int

const (
	StepGenerateIDs Step = iota + 1
	StepUploadImage
	StepWriteReview
	StepUpdateUser
	StepWritePlace
)

func (s Step) String() string {
	switch s {
	case StepGenerateIDs:
		return "generate-ids"
	case StepUploadImage:
		return "upload-image"
	case StepWriteReview:
		return "write-review"
	case StepUpdateUser:
		return "update-user"
	case StepWritePlace:
		return "write-place"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	// ErrInvalidSubmission is matched by *ValidationError.
	ErrInvalidSubmission = errors.New("submission: invalid input")
	// ErrUpload is matched by *UploadError.
	ErrUpload = errors.New("submission: image upload failed")
	// ErrPartialSubmission is matched by *PartialSubmissionError.
	ErrPartialSubmission = errors.New("submission: partially applied")
)

// ValidationError rejects a submission before any id is generated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidSubmission }

// UploadError reports a failed blob write.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upload %s failed", e.Path)
	}
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool { return target == ErrUpload }

// PartialSubmissionError reports a submission that stopped at Failed.
// Writes made by the Completed steps are left in place; RID and PID identify
// them for repair or retry.
type PartialSubmissionError struct {
	RID       string
	PID       string
	Completed []Step
	Failed    Step
	Err       error
}

func (e *PartialSubmissionError) Error() string {
	done := make([]string, 0, len(e.Completed))
	for _, s := range e.Completed {
		done = append(done, s.String())
	}
	return fmt.Sprintf("submission rid=%s pid=%s: %s failed after [%s]: %v",
		e.RID, e.PID, e.Failed, strings.Join(done, ","), e.Err)
}

func (e *PartialSubmissionError) Unwrap() error { return e.Err }

func (e *PartialSubmissionError) Is(target error) bool { return target == ErrPartialSubmission }

// Wrote reports whether s completed before the failure.
func (e *PartialSubmissionError) Wrote(s Step) bool {
	for _, c := range e.Completed {
		if c == s {
			return true
		}
	}
	return false
}
