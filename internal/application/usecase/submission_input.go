// internal/application/usecase/submission_input.go
package usecase

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxImageBytes caps the review photo payload.
const MaxImageBytes = 10 << 20

// DefaultImageContentType is used when the caller does not name one.
const DefaultImageContentType = "image/jpeg"

// Caller field names accepted by ParseSubmissionFields.
const (
	InputImgData     = "imgData"
	InputContentType = "contentType"
	InputPID         = "pid"
	InputTitle       = "title"
	InputContent     = "content"
	InputRate        = "rate"
	InputCompanion   = "companion"
	InputCondition   = "condition"
	InputKindOfFood  = "kindOfFood"
	InputPlaceName   = "placeName"
	InputPlaceTelNum = "placeTelNum"
	InputAddress     = "address"
	InputCity        = "city"
	InputTown        = "town"
	InputMapX        = "mapx"
	InputMapY        = "mapy"
)

// SubmitReviewInput is everything a caller supplies for one review.
// Empty strings and nil pointers mean "not provided".
type SubmitReviewInput struct {
	UID string
	// PID attaches the review to an existing place; empty creates a new one.
	PID string

	ImgData     []byte
	ContentType string

	Title      string
	Content    string
	Rate       *float64
	Companion  string
	Condition  string
	KindOfFood string

	PlaceName   string
	PlaceTelNum string
	Address     string
	City        string
	Town        string
	// Lat/Long come from the map pin (mapx/mapy) and are set together.
	Lat  *float64
	Long *float64
}

// Validate checks the fields the pipeline cannot default.
func (in SubmitReviewInput) Validate() error {
	if strings.TrimSpace(in.UID) == "" {
		return &ValidationError{Field: "uid", Reason: "required"}
	}
	if len(in.ImgData) == 0 {
		return &ValidationError{Field: InputImgData, Reason: "required"}
	}
	if len(in.ImgData) > MaxImageBytes {
		return &ValidationError{Field: InputImgData, Reason: fmt.Sprintf("exceeds %d bytes", MaxImageBytes)}
	}
	for _, f := range []struct{ name, v string }{
		{InputPlaceName, in.PlaceName},
		{InputPlaceTelNum, in.PlaceTelNum},
		{InputAddress, in.Address},
	} {
		if strings.TrimSpace(f.v) == "" {
			return &ValidationError{Field: f.name, Reason: "required"}
		}
	}
	if (in.Lat == nil) != (in.Long == nil) {
		return &ValidationError{Field: InputMapX, Reason: "mapx and mapy must be given together"}
	}
	if in.Lat != nil && (!finite(*in.Lat) || !finite(*in.Long)) {
		return &ValidationError{Field: InputMapX, Reason: "coordinates must be finite numbers"}
	}
	if in.Rate != nil && (!finite(*in.Rate) || *in.Rate < 0) {
		return &ValidationError{Field: InputRate, Reason: "must be a non-negative number"}
	}
	return nil
}

// ParseSubmissionFields reads a loosely typed caller field map. Numbers may
// arrive as numbers or numeric strings; imgData as bytes or base64 text.
// Type mismatches are reported as *ValidationError; the result is not
// validated for required fields (see Validate).
func ParseSubmissionFields(uid string, raw map[string]any) (SubmitReviewInput, error) {
	in := SubmitReviewInput{UID: strings.TrimSpace(uid)}

	var err error
	if in.ImgData, err = bytesField(raw, InputImgData); err != nil {
		return SubmitReviewInput{}, err
	}

	strs := []struct {
		key string
		dst *string
	}{
		{InputContentType, &in.ContentType},
		{InputPID, &in.PID},
		{InputTitle, &in.Title},
		{InputContent, &in.Content},
		{InputCompanion, &in.Companion},
		{InputCondition, &in.Condition},
		{InputKindOfFood, &in.KindOfFood},
		{InputPlaceName, &in.PlaceName},
		{InputPlaceTelNum, &in.PlaceTelNum},
		{InputAddress, &in.Address},
		{InputCity, &in.City},
		{InputTown, &in.Town},
	}
	for _, s := range strs {
		if *s.dst, err = stringField(raw, s.key); err != nil {
			return SubmitReviewInput{}, err
		}
	}

	if in.Rate, err = numberField(raw, InputRate); err != nil {
		return SubmitReviewInput{}, err
	}
	if in.Lat, err = numberField(raw, InputMapX); err != nil {
		return SubmitReviewInput{}, err
	}
	if in.Long, err = numberField(raw, InputMapY); err != nil {
		return SubmitReviewInput{}, err
	}
	return in, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), nil
	case *string:
		if t == nil {
			return "", nil
		}
		return strings.TrimSpace(*t), nil
	default:
		return "", &ValidationError{Field: key, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
}

func numberField(raw map[string]any, key string) (*float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return nil, &ValidationError{Field: key, Reason: "not a number"}
		}
		f = n
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ValidationError{Field: key, Reason: fmt.Sprintf("not a number: %q", s)}
		}
		f = n
	default:
		return nil, &ValidationError{Field: key, Reason: fmt.Sprintf("expected number, got %T", v)}
	}
	return &f, nil
}

func bytesField(raw map[string]any, key string) ([]byte, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case []byte:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
			s = s[i+len(";base64,"):]
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, &ValidationError{Field: key, Reason: "invalid base64 payload"}
		}
		return b, nil
	default:
		return nil, &ValidationError{Field: key, Reason: fmt.Sprintf("expected bytes, got %T", v)}
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
