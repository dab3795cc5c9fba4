package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallConfidence(t *testing.T) {
	tests := []struct {
		name   string
		resume Resume
		want   float64
	}{
		{
			name: "mean of the four counted fields",
			resume: Resume{
				Name:      Field[string]{Confidence: 0.9},
				Emails:    Field[[]string]{Confidence: 0.8},
				Locations: Field[[]string]{Confidence: 0.7},
				Skills:    Field[[]string]{Confidence: 0.6},
			},
			want: 0.75,
		},
		{
			name:   "all fields absent",
			resume: Resume{},
			want:   0,
		},
		{
			name: "absent fields contribute zero",
			resume: Resume{
				Name:   Field[string]{Confidence: 1.0},
				Skills: Field[[]string]{Confidence: 0.5},
			},
			want: 0.38,
		},
		{
			name: "education, work and projects are excluded",
			resume: Resume{
				Name:              Field[string]{Confidence: 0.9},
				Emails:            Field[[]string]{Confidence: 0.8},
				Locations:         Field[[]string]{Confidence: 0.7},
				Skills:            Field[[]string]{Confidence: 0.6},
				Education:         Field[[]string]{Confidence: 1.0},
				WorkExperience:    Field[[]string]{Confidence: 1.0},
				ProjectExperience: Field[[]string]{Confidence: 1.0},
			},
			want: 0.75,
		},
		{
			name: "rounded to two decimals",
			resume: Resume{
				Name:      Field[string]{Confidence: 0.85},
				Emails:    Field[[]string]{Confidence: 0.95},
				Locations: Field[[]string]{Confidence: 0.8},
				Skills:    Field[[]string]{Confidence: 0.85},
			},
			want: 0.86,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverallConfidence(tt.resume), 1e-9)
		})
	}
}
