// internal/application/usecase/review_submission_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Madman-dev/ZZin/internal/domain/document"
	placedom "github.com/Madman-dev/ZZin/internal/domain/place"
	reviewdom "github.com/Madman-dev/ZZin/internal/domain/review"
	userdom "github.com/Madman-dev/ZZin/internal/domain/user"
)

// PlaceDefaults fills place fields the caller left out.
type PlaceDefaults struct {
	City string
	Town string
}

// SubmissionResult describes a fully applied submission.
type SubmissionResult struct {
	RID      string          `json:"rid"`
	PID      string          `json:"pid"`
	ImageRef string          `json:"imageRef"`
	Review   reviewdom.Review `json:"review"`
}

// ReviewSubmissionUsecase fans one review out into the reviews, users and
// places collections plus the blob store.
type ReviewSubmissionUsecase struct {
	docs     DocumentWriter
	blobs    BlobStore
	defaults PlaceDefaults
	timeout  time.Duration
	log      zerolog.Logger

	newID func() string
	now   func() time.Time
}

func NewReviewSubmissionUsecase(
	docs DocumentWriter,
	blobs BlobStore,
	defaults PlaceDefaults,
	logger zerolog.Logger,
) *ReviewSubmissionUsecase {
	return &ReviewSubmissionUsecase{
		docs:     docs,
		blobs:    blobs,
		defaults: defaults,
		timeout:  DefaultCallTimeout,
		log:      logger.With().Str("component", "submit").Logger(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (u *ReviewSubmissionUsecase) WithNow(now func() time.Time) *ReviewSubmissionUsecase {
	u.now = now
	return u
}

func (u *ReviewSubmissionUsecase) WithIDGenerator(gen func() string) *ReviewSubmissionUsecase {
	u.newID = gen
	return u
}

// WithUploadTimeout bounds the blob upload. Document writes are bounded by
// the writer.
func (u *ReviewSubmissionUsecase) WithUploadTimeout(d time.Duration) *ReviewSubmissionUsecase {
	if d > 0 {
		u.timeout = d
	}
	return u
}

// =======================
// Submit
// =======================

// Submit runs the five steps in order and stops at the first failure.
//
// Errors: *ValidationError before any work is done; otherwise
// *PartialSubmissionError whose Err is the step's cause (*UploadError for
// the upload, document errors for the writes). Nothing is rolled back.
func (u *ReviewSubmissionUsecase) Submit(ctx context.Context, in SubmitReviewInput) (SubmissionResult, error) {
	if u.docs == nil || u.blobs == nil {
		return SubmissionResult{}, errors.New("submission: stores not configured")
	}
	if err := in.Validate(); err != nil {
		return SubmissionResult{}, err
	}
	uid := strings.TrimSpace(in.UID)

	// 1. ids
	rid := u.newID()
	pid := strings.TrimSpace(in.PID)
	if pid == "" {
		pid = u.newID()
	}
	done := []Step{StepGenerateIDs}
	fail := func(step Step, err error) (SubmissionResult, error) {
		u.log.Error().Err(err).
			Str("uid", uid).Str("rid", rid).Str("pid", pid).
			Str("step", step.String()).
			Msg("[submit] step failed; earlier writes kept")
		return SubmissionResult{}, &PartialSubmissionError{
			RID:       rid,
			PID:       pid,
			Completed: append([]Step(nil), done...),
			Failed:    step,
			Err:       err,
		}
	}

	// 2. image
	path := reviewdom.ImagePath(rid)
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		contentType = DefaultImageContentType
	}
	uctx, cancel := withCallTimeout(ctx, u.timeout)
	ref, err := u.blobs.Put(uctx, path, contentType, in.ImgData)
	cancel()
	if err != nil {
		return fail(StepUploadImage, &UploadError{Path: path, Err: err})
	}
	done = append(done, StepUploadImage)

	// 3. review
	rev := buildReview(in, uid, rid, pid, ref, u.now())
	if err := u.docs.Write(ctx, reviewdom.Collection, rid, rev.Fields()); err != nil {
		return fail(StepWriteReview, err)
	}
	done = append(done, StepWriteReview)

	// 4. user back-references
	userFields := document.Fields{}.
		Append(userdom.FieldRID, rid).
		Append(userdom.FieldPID, pid)
	if err := u.docs.Update(ctx, userdom.Collection, uid, userFields); err != nil {
		return fail(StepUpdateUser, err)
	}
	done = append(done, StepUpdateUser)

	// 5. place
	if err := u.docs.Write(ctx, placedom.Collection, pid, u.placeFields(in, uid, rid, pid, ref)); err != nil {
		return fail(StepWritePlace, err)
	}

	u.log.Info().Str("uid", uid).Str("rid", rid).Str("pid", pid).Msg("[submit] review stored")
	return SubmissionResult{RID: rid, PID: pid, ImageRef: ref, Review: rev}, nil
}

func buildReview(in SubmitReviewInput, uid, rid, pid, ref string, now time.Time) reviewdom.Review {
	r := reviewdom.Review{
		RID:        rid,
		UID:        uid,
		PID:        pid,
		ReviewImg:  &ref,
		Title:      orDefault(in.Title, reviewdom.DefaultTitle),
		Like:       0,
		Dislike:    0,
		Content:    orDefault(in.Content, reviewdom.DefaultContent),
		Rate:       reviewdom.DefaultRate,
		CreatedAt:  now.UTC(),
		Companion:  reviewdom.TagOrUnspecified(in.Companion),
		Condition:  reviewdom.TagOrUnspecified(in.Condition),
		KindOfFood: reviewdom.TagOrUnspecified(in.KindOfFood),
	}
	if in.Rate != nil {
		r.Rate = *in.Rate
	}
	return r
}

// placeFields unions rid and the image into the place lists and overwrites
// the descriptive fields with the latest submission.
func (u *ReviewSubmissionUsecase) placeFields(in SubmitReviewInput, uid, rid, pid, ref string) document.Fields {
	fs := document.Fields{}.
		Set(placedom.FieldPID, document.String(pid)).
		Set(placedom.FieldUID, document.String(uid)).
		Append(placedom.FieldRID, rid).
		Append(placedom.FieldPlaceImg, ref).
		Set(placedom.FieldPlaceName, document.String(strings.TrimSpace(in.PlaceName))).
		Set(placedom.FieldPlaceTelNum, document.String(strings.TrimSpace(in.PlaceTelNum))).
		Set(placedom.FieldCity, document.String(orDefault(in.City, u.defaults.City))).
		Set(placedom.FieldTown, document.String(orDefault(in.Town, u.defaults.Town))).
		Set(placedom.FieldAddress, document.String(strings.TrimSpace(in.Address)))
	if in.Lat != nil && in.Long != nil {
		fs = fs.
			Set(placedom.FieldLat, document.Float(*in.Lat)).
			Set(placedom.FieldLong, document.Float(*in.Long))
	}
	return fs.
		Set(placedom.FieldCompanion, document.String(reviewdom.TagOrUnspecified(in.Companion))).
		Set(placedom.FieldCondition, document.String(reviewdom.TagOrUnspecified(in.Condition))).
		Set(placedom.FieldKindOfFood, document.String(reviewdom.TagOrUnspecified(in.KindOfFood)))
}

func orDefault(s, def string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return def
}
