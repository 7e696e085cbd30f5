package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Madman-dev/ZZin/internal/adapters/out/memory"
	"github.com/Madman-dev/ZZin/internal/application/usecase"
	"github.com/Madman-dev/ZZin/internal/domain/document"
	placedom "github.com/Madman-dev/ZZin/internal/domain/place"
	reviewdom "github.com/Madman-dev/ZZin/internal/domain/review"
	userdom "github.com/Madman-dev/ZZin/internal/domain/user"
)

var testDefaults = usecase.PlaceDefaults{City: "인천광역시", Town: "부평구"}

type submitFixture struct {
	store   *memory.DocumentStore
	blobs   *memory.BlobStore
	fetch   *usecase.FetchService
	catalog *usecase.CatalogUsecase
}

func newSubmitFixture(t *testing.T) submitFixture {
	t.Helper()
	store := memory.NewDocumentStore()
	store.Put(userdom.Collection, "u1", map[string]any{
		"uid": "u1", "nickname": "nick", "phoneNum": "010",
		"rid": []string{}, "pid": []string{},
	})
	blobs := memory.NewBlobStore("http://blobs.test")
	fetch := newFetch(store)
	return submitFixture{
		store:   store,
		blobs:   blobs,
		fetch:   fetch,
		catalog: usecase.NewCatalogUsecase(fetch, blobs),
	}
}

func (f submitFixture) usecase(ids ...string) *usecase.ReviewSubmissionUsecase {
	return usecase.NewReviewSubmissionUsecase(f.fetch, f.blobs, testDefaults, zerolog.Nop()).
		WithNow(func() time.Time { return fixedNow }).
		WithIDGenerator(sequence(ids...))
}

func validInput() usecase.SubmitReviewInput {
	return usecase.SubmitReviewInput{
		UID:         "u1",
		ImgData:     []byte{0xff, 0xd8, 0xff},
		Title:       "맛집",
		Content:     "좋아요",
		Companion:   "friend",
		PlaceName:   "김밥천국",
		PlaceTelNum: "032-000-0000",
		Address:     "부평대로 1",
	}
}

func TestSubmit_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture(t)

	res, err := f.usecase("r1", "p1").Submit(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "r1", res.RID)
	assert.Equal(t, "p1", res.PID)
	assert.Equal(t, "reviews/r1.jpeg", res.ImageRef)

	obj, ok := f.blobs.Object("reviews/r1.jpeg")
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, obj.Data)
	assert.Equal(t, usecase.DefaultImageContentType, obj.ContentType)

	r, err := f.catalog.GetReview(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "u1", r.UID)
	assert.Equal(t, "p1", r.PID)
	assert.Equal(t, "맛집", r.Title)
	assert.Equal(t, 0, r.Like)
	assert.Equal(t, 0, r.Dislike)
	assert.Equal(t, reviewdom.DefaultRate, r.Rate)
	assert.True(t, fixedNow.Equal(r.CreatedAt))
	assert.Equal(t, "friend", r.Companion)
	assert.Equal(t, reviewdom.Unspecified, r.Condition)
	assert.Equal(t, reviewdom.Unspecified, r.KindOfFood)
	require.NotNil(t, r.ReviewImg)
	assert.Equal(t, "reviews/r1.jpeg", *r.ReviewImg)

	u, err := f.catalog.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, u.RID)
	assert.Equal(t, []string{"p1"}, u.PID)
	assert.Equal(t, "nick", u.Nickname)

	p, err := f.catalog.GetPlace(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, p.RID)
	assert.Equal(t, []string{"reviews/r1.jpeg"}, p.PlaceImg)
	assert.Equal(t, "김밥천국", p.PlaceName)
	assert.Equal(t, "인천광역시", p.City)
	assert.Equal(t, "부평구", p.Town)
	assert.Nil(t, p.Lat)
	assert.Equal(t, "friend", p.Companion)

	url, err := f.catalog.ReviewImageURL(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "http://blobs.test/reviews/r1.jpeg", url)
}

func TestSubmit_DefaultsAndCoordinates(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture(t)
	in := validInput()
	in.Title, in.Content, in.Companion = "", "", ""
	rate := 4.5
	lat, long := 126.72, 37.49
	in.Rate, in.Lat, in.Long = &rate, &lat, &long
	in.City, in.Town = "서울특별시", "마포구"
	in.ContentType = "image/png"

	res, err := f.usecase("r1", "p1").Submit(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, reviewdom.DefaultTitle, res.Review.Title)
	assert.Equal(t, reviewdom.DefaultContent, res.Review.Content)
	assert.Equal(t, 4.5, res.Review.Rate)
	assert.Equal(t, reviewdom.Unspecified, res.Review.Companion)

	obj, ok := f.blobs.Object("reviews/r1.jpeg")
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)

	p, err := f.catalog.GetPlace(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "서울특별시", p.City)
	assert.Equal(t, "마포구", p.Town)
	require.NotNil(t, p.Lat)
	require.NotNil(t, p.Long)
	assert.Equal(t, 126.72, *p.Lat)
	assert.Equal(t, 37.49, *p.Long)
}

func TestSubmit_ExistingPlaceAccumulates(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture(t)

	_, err := f.usecase("r1", "p1").Submit(ctx, validInput())
	require.NoError(t, err)

	second := validInput()
	second.PID = "p1"
	second.Condition = "rainy"
	res, err := f.usecase("r2").Submit(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "p1", res.PID)

	p, err := f.catalog.GetPlace(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, p.RID)
	assert.Equal(t, []string{"reviews/r1.jpeg", "reviews/r2.jpeg"}, p.PlaceImg)
	assert.Equal(t, "rainy", p.Condition)

	u, err := f.catalog.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, u.RID)
	assert.Equal(t, []string{"p1"}, u.PID)
}

func TestSubmit_UploadFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	blobs := new(MockBlobStore)
	cause := errors.New("bucket unavailable")
	blobs.On("Put", mock.Anything, "reviews/r1.jpeg", usecase.DefaultImageContentType, mock.Anything).Return("", cause)

	uc := usecase.NewReviewSubmissionUsecase(newFetch(store), blobs, testDefaults, zerolog.Nop()).
		WithIDGenerator(sequence("r1", "p1"))

	_, err := uc.Submit(ctx, validInput())
	var pe *usecase.PartialSubmissionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "r1", pe.RID)
	assert.Equal(t, "p1", pe.PID)
	assert.Equal(t, usecase.StepUploadImage, pe.Failed)
	assert.Equal(t, []usecase.Step{usecase.StepGenerateIDs}, pe.Completed)
	assert.ErrorIs(t, err, usecase.ErrUpload)
	assert.ErrorIs(t, err, cause)

	var ue *usecase.UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "reviews/r1.jpeg", ue.Path)

	assert.Zero(t, store.Len(reviewdom.Collection))
	assert.Zero(t, store.Len(userdom.Collection))
	assert.Zero(t, store.Len(placedom.Collection))
	blobs.AssertExpectations(t)
}

func TestSubmit_MissingUserStopsAfterReview(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture(t)
	in := validInput()
	in.UID = "ghost"

	_, err := f.usecase("r1", "p1").Submit(ctx, in)
	var pe *usecase.PartialSubmissionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, usecase.StepUpdateUser, pe.Failed)
	assert.Equal(t, []usecase.Step{usecase.StepGenerateIDs, usecase.StepUploadImage, usecase.StepWriteReview}, pe.Completed)
	assert.True(t, pe.Wrote(usecase.StepWriteReview))
	assert.False(t, pe.Wrote(usecase.StepWritePlace))
	assert.ErrorIs(t, err, document.ErrNotFound)
	assert.ErrorIs(t, err, usecase.ErrPartialSubmission)

	// earlier writes are kept
	assert.Equal(t, 1, f.blobs.Len())
	assert.Equal(t, 1, f.store.Len(reviewdom.Collection))
	assert.Zero(t, f.store.Len(placedom.Collection))
}

func TestSubmit_PlaceWriteFailure(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture(t)
	cause := errors.New("deadline")
	store := &failingStore{DocumentStore: f.store, failCollection: placedom.Collection, err: cause}
	uc := usecase.NewReviewSubmissionUsecase(newFetch(store), f.blobs, testDefaults, zerolog.Nop()).
		WithIDGenerator(sequence("r1", "p1"))

	_, err := uc.Submit(ctx, validInput())
	var pe *usecase.PartialSubmissionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, usecase.StepWritePlace, pe.Failed)
	assert.Len(t, pe.Completed, 4)
	assert.ErrorIs(t, err, document.ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "write-place failed")

	u, err := f.catalog.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, u.PID)
}

func TestSubmit_ValidationRejectsBeforeAnyWork(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*usecase.SubmitReviewInput)
		field  string
	}{
		{"no uid", func(in *usecase.SubmitReviewInput) { in.UID = " " }, "uid"},
		{"no image", func(in *usecase.SubmitReviewInput) { in.ImgData = nil }, usecase.InputImgData},
		{"image too large", func(in *usecase.SubmitReviewInput) { in.ImgData = make([]byte, usecase.MaxImageBytes+1) }, usecase.InputImgData},
		{"no place name", func(in *usecase.SubmitReviewInput) { in.PlaceName = "" }, usecase.InputPlaceName},
		{"no tel", func(in *usecase.SubmitReviewInput) { in.PlaceTelNum = "" }, usecase.InputPlaceTelNum},
		{"no address", func(in *usecase.SubmitReviewInput) { in.Address = "" }, usecase.InputAddress},
		{"half coordinates", func(in *usecase.SubmitReviewInput) { x := 1.0; in.Lat = &x }, usecase.InputMapX},
		{"negative rate", func(in *usecase.SubmitReviewInput) { r := -1.0; in.Rate = &r }, usecase.InputRate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blobs := new(MockBlobStore)
			store := new(MockDocumentStore)
			uc := usecase.NewReviewSubmissionUsecase(newFetch(store), blobs, testDefaults, zerolog.Nop())

			in := validInput()
			tc.mutate(&in)
			_, err := uc.Submit(context.Background(), in)

			var ve *usecase.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.ErrorIs(t, err, usecase.ErrInvalidSubmission)
			assert.NotErrorIs(t, err, usecase.ErrPartialSubmission)
			blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "generate-ids", usecase.StepGenerateIDs.String())
	assert.Equal(t, "write-place", usecase.StepWritePlace.String())
	assert.Equal(t, "step(9)", usecase.Step(9).String())
}
