package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Austin, TX
jane.doe@example.com

Skills
Go, Python, SQL

Education
BS Computer Science from a state school

Work Experience
Software Engineer at Acme Corp

Projects
Side project building a resume parser`

func TestParseResumeSample(t *testing.T) {
	r := ParseResume(sampleResume)

	assert.Equal(t, "Jane Doe", r.Name.Value)
	assert.InDelta(t, 0.85, r.Name.Confidence, 1e-9)

	assert.Equal(t, []string{"jane.doe@example.com"}, r.Emails.Value)
	assert.InDelta(t, 0.95, r.Emails.Confidence, 1e-9)

	assert.Equal(t, []string{"Austin, TX"}, r.Locations.Value)

	assert.Equal(t, []string{"Go", "Python", "SQL"}, r.Skills.Value)
	assert.InDelta(t, 0.85, r.Skills.Confidence, 1e-9)

	assert.Equal(t, []string{"BS Computer Science from a state school"}, r.Education.Value)
	assert.Equal(t, []string{"Software Engineer at Acme Corp"}, r.WorkExperience.Value)
	assert.Equal(t, []string{"Side project building a resume parser"}, r.ProjectExperience.Value)
}

func TestParseResumeDeterministic(t *testing.T) {
	first := ParseResume(sampleResume)
	second := ParseResume(sampleResume)
	assert.Equal(t, first, second)
}

func TestParseResumeEdgeCases(t *testing.T) {
	t.Run("empty text yields zero confidences", func(t *testing.T) {
		r := ParseResume("")
		assert.Zero(t, r.Name.Confidence)
		assert.Zero(t, r.Emails.Confidence)
		assert.Empty(t, r.Emails.Value)
		assert.Zero(t, OverallConfidence(r))
	})

	t.Run("duplicate emails are collapsed", func(t *testing.T) {
		r := ParseResume("a@b.co contact A@B.co again a@b.co")
		assert.Equal(t, []string{"a@b.co"}, r.Emails.Value)
	})

	t.Run("name fallback when top lines are not name-like", func(t *testing.T) {
		r := ParseResume("curriculum vitae 2024\nmore text")
		assert.Equal(t, "curriculum vitae 2024", r.Name.Value)
		assert.InDelta(t, 0.3, r.Name.Confidence, 1e-9)
	})

	t.Run("skills fall back to vocabulary scan", func(t *testing.T) {
		r := ParseResume("Jane Doe\nWrote services in Go with Docker and Kubernetes")
		assert.Contains(t, r.Skills.Value, "go")
		assert.Contains(t, r.Skills.Value, "docker")
		assert.InDelta(t, 0.6, r.Skills.Confidence, 1e-9)
	})
}

func TestValidateResume(t *testing.T) {
	r := ParseResume(sampleResume)
	require.NoError(t, ValidateResume(r))

	t.Run("rejects out-of-range confidence", func(t *testing.T) {
		bad := r
		bad.Name.Confidence = 1.5
		assert.Error(t, ValidateResume(bad))
	})
}
