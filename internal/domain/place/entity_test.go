package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	p := Place{
		PID: "p1", City: "서울", Town: "마포구",
		Companion: "친구", Condition: "조용한", KindOfFood: "한식",
	}

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"zero filter", Filter{}, true},
		{"all tags", Filter{Companion: "친구", Condition: "조용한", KindOfFood: "한식"}, true},
		{"tag mismatch", Filter{Companion: "가족"}, false},
		{"city and town", Filter{City: "서울", Town: "마포구"}, true},
		{"any town", Filter{City: "서울", Town: AnyTown}, true},
		{"other town", Filter{City: "서울", Town: "강남구"}, false},
		{"other city", Filter{City: "부산", Town: AnyTown}, false},
		{"trimmed", Filter{KindOfFood: " 한식 "}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Matches(tc.f))
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.True(t, Filter{Town: AnyTown, City: "  "}.IsZero())
	assert.False(t, Filter{City: "서울"}.IsZero())
}
