package hasard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		count int
		size  int
		want  int
	}{
		{"empty log still has one page", 0, 100, 1},
		{"exact fit", 200, 100, 2},
		{"partial last page", 250, 100, 3},
		{"single entry", 1, 100, 1},
		{"negative count", -5, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.count, tt.size))
		})
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-3))
	assert.Equal(t, 1, ClampPage(1))
	assert.Equal(t, 7, ClampPage(7))
}

func TestLogEntryValidate(t *testing.T) {
	tests := []struct {
		name     string
		entry    LogEntry
		wantCode string
	}{
		{"valid", LogEntry{StudentID: 1, Response: ResponseVeryGood}, ""},
		{"absent is valid", LogEntry{StudentID: 1, Response: ResponseAbsent}, ""},
		{"missing student", LogEntry{Response: ResponseGood}, EINVALID},
		{"response too high", LogEntry{StudentID: 1, Response: 4}, EINVALID},
		{"negative response", LogEntry{StudentID: 1, Response: -1}, EINVALID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, ErrorCode(err))
			}
		})
	}
}
