// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// Collection is the store collection for users. DocID == UID.
const Collection = "users"

// Wire field names.
const (
	FieldUID        = "uid"
	FieldNickname   = "nickname"
	FieldPhoneNum   = "phoneNum"
	FieldProfileImg = "profileImg"
	FieldRID        = "rid"
	FieldPID        = "pid"
	FieldPassword   = "password"
)

// User is the identity record of an account.
//
// RID/PID are back-references to the reviews and places the user wrote
// about. They only grow (set-union) and may briefly point at ids whose
// documents are not written yet.
type User struct {
	UID        string   `json:"uid"`
	Nickname   string   `json:"nickname"`
	PhoneNum   string   `json:"phoneNum"`
	ProfileImg *string  `json:"profileImg,omitempty"`
	RID        []string `json:"rid"`
	PID        []string `json:"pid"`
	Password   *string  `json:"password,omitempty"`
}

// Schema is the explicit wire layout of User.
var Schema = document.Schema{
	Name: "user",
	Fields: []document.FieldSpec{
		{Wire: FieldUID, Kind: document.KindString, Required: true},
		{Wire: FieldNickname, Kind: document.KindString, Required: true},
		{Wire: FieldPhoneNum, Kind: document.KindString, Required: true},
		{Wire: FieldProfileImg, Kind: document.KindString},
		{Wire: FieldRID, Kind: document.KindStringList},
		{Wire: FieldPID, Kind: document.KindStringList},
		{Wire: FieldPassword, Kind: document.KindString},
	},
}

var (
	ErrInvalidID       = errors.New("user: invalid uid")
	ErrInvalidNickname = errors.New("user: invalid nickname")
	ErrInvalidPhoneNum = errors.New("user: invalid phoneNum")
)

// Policy
var (
	MaxNicknameLength = 30
)

// New builds a freshly registered user (no reviews, no places yet).
func New(uid, nickname, phoneNum string) (User, error) {
	u := User{
		UID:      strings.TrimSpace(uid),
		Nickname: strings.TrimSpace(nickname),
		PhoneNum: strings.TrimSpace(phoneNum),
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.UID) == "" {
		return ErrInvalidID
	}
	n := strings.TrimSpace(u.Nickname)
	if n == "" || len([]rune(n)) > MaxNicknameLength {
		return ErrInvalidNickname
	}
	if strings.TrimSpace(u.PhoneNum) == "" {
		return ErrInvalidPhoneNum
	}
	return nil
}
