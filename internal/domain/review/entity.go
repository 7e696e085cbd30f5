// internal/domain/review/entity.go
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// Collection is the store collection for reviews. DocID == RID.
const Collection = "reviews"

// Wire field names.
const (
	FieldRID        = "rid"
	FieldUID        = "uid"
	FieldPID        = "pid"
	FieldReviewImg  = "reviewImg"
	FieldTitle      = "title"
	FieldLike       = "like"
	FieldDislike    = "dislike"
	FieldContent    = "content"
	FieldRate       = "rate"
	FieldCreatedAt  = "createdAt"
	FieldCompanion  = "companion"
	FieldCondition  = "condition"
	FieldKindOfFood = "kindOfFood"
)

// Defaults applied when a submission leaves a field out.
const (
	DefaultTitle   = "나의 리뷰"
	DefaultContent = "내용 없음"
	// DefaultRate is provisional until a rating algorithm exists.
	DefaultRate = 100.0
	// Unspecified marks a categorical tag the author did not choose.
	Unspecified = "unspecified"
)

// Review is one user's review of one place. It is written once and never
// modified afterwards.
type Review struct {
	RID        string    `json:"rid"`
	UID        string    `json:"uid"`
	PID        string    `json:"pid"`
	ReviewImg  *string   `json:"reviewImg,omitempty"`
	Title      string    `json:"title"`
	Like       int       `json:"like"`
	Dislike    int       `json:"dislike"`
	Content    string    `json:"content"`
	Rate       float64   `json:"rate"`
	CreatedAt  time.Time `json:"createdAt"`
	Companion  string    `json:"companion"`
	Condition  string    `json:"condition"`
	KindOfFood string    `json:"kindOfFood"`
}

// Schema is the explicit wire layout of Review.
var Schema = document.Schema{
	Name: "review",
	Fields: []document.FieldSpec{
		{Wire: FieldRID, Kind: document.KindString, Required: true},
		{Wire: FieldUID, Kind: document.KindString, Required: true},
		{Wire: FieldPID, Kind: document.KindString, Required: true},
		{Wire: FieldReviewImg, Kind: document.KindString},
		{Wire: FieldTitle, Kind: document.KindString, Required: true},
		{Wire: FieldLike, Kind: document.KindInt, Required: true, NonNegative: true},
		{Wire: FieldDislike, Kind: document.KindInt, Required: true, NonNegative: true},
		{Wire: FieldContent, Kind: document.KindString, Required: true},
		{Wire: FieldRate, Kind: document.KindFloat, Required: true},
		{Wire: FieldCreatedAt, Kind: document.KindTimestamp, Required: true},
		{Wire: FieldCompanion, Kind: document.KindString, Required: true},
		{Wire: FieldCondition, Kind: document.KindString, Required: true},
		{Wire: FieldKindOfFood, Kind: document.KindString, Required: true},
	},
}

// ImagePath is the blob path of a review's photo.
func ImagePath(rid string) string {
	return fmt.Sprintf("reviews/%s.jpeg", strings.TrimSpace(rid))
}

// TagOrUnspecified trims s and substitutes Unspecified when empty.
func TagOrUnspecified(s string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return Unspecified
}

// Fields renders r as a full Replace-mode write.
func (r Review) Fields() document.Fields {
	fs := document.Fields{}.
		Set(FieldRID, document.String(r.RID)).
		Set(FieldUID, document.String(r.UID)).
		Set(FieldPID, document.String(r.PID))
	if r.ReviewImg != nil {
		fs = fs.Set(FieldReviewImg, document.String(*r.ReviewImg))
	}
	return fs.
		Set(FieldTitle, document.String(r.Title)).
		Set(FieldLike, document.Int(int64(r.Like))).
		Set(FieldDislike, document.Int(int64(r.Dislike))).
		Set(FieldContent, document.String(r.Content)).
		Set(FieldRate, document.Float(r.Rate)).
		Set(FieldCreatedAt, document.Timestamp(r.CreatedAt)).
		Set(FieldCompanion, document.String(r.Companion)).
		Set(FieldCondition, document.String(r.Condition)).
		Set(FieldKindOfFood, document.String(r.KindOfFood))
}
