package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day, hour, minute int) int64 {
	return time.Date(2030, time.March, day, hour, minute, 0, 0, time.UTC).UnixMilli()
}

func TestConflicts(t *testing.T) {
	existing := New(at(2, 9, 0), at(2, 10, 0))

	tests := []struct {
		name      string
		candidate Range
		want      bool
	}{
		{"contained", New(at(2, 9, 15), at(2, 9, 45)), true},
		{"identical", New(at(2, 9, 0), at(2, 10, 0)), true},
		{"covers existing", New(at(2, 8, 0), at(2, 11, 0)), true},
		{"overlaps end", New(at(2, 9, 15), at(2, 11, 0)), true},
		{"overlaps beginning", New(at(2, 8, 45), at(2, 9, 15)), true},
		{"touches end", New(at(2, 10, 0), at(2, 11, 0)), true},
		{"touches beginning", New(at(2, 8, 0), at(2, 9, 0)), true},
		{"strict gap after", New(at(2, 11, 0), at(2, 12, 0)), false},
		{"strict gap before", New(at(2, 7, 0), at(2, 8, 59)), false},
		{"one millisecond after", New(at(2, 10, 0)+1, at(2, 11, 0)), false},
		{"other day", New(at(3, 9, 0), at(3, 10, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(existing, tt.candidate))
		})
	}
}

func TestConflicts_IsSymmetric(t *testing.T) {
	ranges := []Range{
		New(at(2, 9, 0), at(2, 10, 0)),
		New(at(2, 9, 30), at(2, 9, 40)),
		New(at(2, 10, 0), at(2, 10, 30)),
		New(at(2, 11, 0), at(2, 12, 0)),
		New(at(2, 8, 0), at(2, 13, 0)),
	}

	for _, a := range ranges {
		for _, b := range ranges {
			assert.Equal(t, Conflicts(a, b), Conflicts(b, a), "a=%v b=%v", a, b)
		}
	}
}

func TestConflictsAny(t *testing.T) {
	existing := []Range{
		New(at(2, 9, 0), at(2, 10, 0)),
		New(at(2, 14, 0), at(2, 15, 0)),
	}

	assert.True(t, ConflictsAny(existing, New(at(2, 14, 30), at(2, 16, 0))))
	assert.False(t, ConflictsAny(existing, New(at(2, 11, 0), at(2, 12, 0))))
	assert.False(t, ConflictsAny(nil, New(at(2, 11, 0), at(2, 12, 0))))
}
