package deadline

import (
	"testing"

	"github.com/campusdesk/campusdesk/internal/domain"
)

func TestClassify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name string
		item domain.ActionItem
		want domain.DeadlineClass
	}{
		{
			name: "no date",
			item: domain.ActionItem{ID: "a1", Text: "read notes"},
			want: domain.DeadlineNone,
		},
		{
			name: "date without time",
			item: domain.ActionItem{ID: "a2", Text: "submit form", Date: "2026-02-10"},
			want: domain.DeadlineDateOnly,
		},
		{
			name: "date and time",
			item: domain.ActionItem{ID: "a3", Text: "exam", Date: "2026-02-10", Time: "09:30"},
			want: domain.DeadlineTimeCritical,
		},
		{
			name: "orphan time classifies as date-less",
			item: domain.ActionItem{ID: "a4", Text: "broken row", Time: "09:30"},
			want: domain.DeadlineNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.item); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}
