package tabular

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/libelle-hq/volunteer-intake/constants"
	"github.com/libelle-hq/volunteer-intake/internal/parser"
)

// Column offsets of the applicants sheet, 0-indexed within a fixed-width
// row. This table is the single source of truth for the sheet layout;
// nothing else may hardcode positions.
const (
	ColTimestamp    = 0
	ColFullName     = 1
	ColEmail        = 2
	ColLocation     = 3
	ColInterests    = 4
	ColAvailability = 5
	ColExperience   = 6
	ColLinkedin     = 7
	ColGithub       = 8
	ColFileID       = 9 // blob handle, the row's foreign key
	ColFileURL      = 10
	ColMotivation   = 11

	// Enrichment block, written only by the background path.
	ColParseStatus         = 12
	ColOverallConfidence   = 13
	ColParsedName          = 14
	ColParsedNameConf      = 15
	ColParsedEmails        = 16
	ColParsedEmailsConf    = 17
	ColParsedLocations     = 18
	ColParsedLocationsConf = 19
	ColParsedEducation     = 20
	ColParsedEducationConf = 21
	ColParsedSkills        = 22
	ColParsedSkillsConf    = 23
	ColParsedWork          = 24
	ColParsedWorkConf      = 25
	ColParsedProjects      = 26
	ColParsedProjectsConf  = 27
	ColFullText            = 28 // reserved placeholder

	// RowWidth is the fixed width of every appended row.
	RowWidth = 60
)

// TimestampFormat renders sheet timestamps, always in UTC.
const TimestampFormat = "01-02-2006 15:04:05 MST"

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// SubmissionRow is the named-field form of a base row. Cells maps it
// onto the positional layout above.
type SubmissionRow struct {
	FullName     string
	Email        string
	Location     string
	Interests    string
	Availability string
	Experience   string
	LinkedinURL  string
	GithubURL    string
	Motivation   string
	FileID       string
	FileURL      string
	SubmittedAt  time.Time
}

// Cells renders the base row: intake columns filled, the enrichment
// block left empty until the background path completes.
func (s SubmissionRow) Cells() []any {
	row := make([]any, RowWidth)
	for i := range row {
		row[i] = ""
	}
	row[ColTimestamp] = Timestamp(s.SubmittedAt)
	row[ColFullName] = s.FullName
	row[ColEmail] = s.Email
	row[ColLocation] = s.Location
	row[ColInterests] = s.Interests
	row[ColAvailability] = s.Availability
	row[ColExperience] = s.Experience
	row[ColLinkedin] = s.LinkedinURL
	row[ColGithub] = s.GithubURL
	row[ColFileID] = s.FileID
	row[ColFileURL] = s.FileURL
	row[ColMotivation] = s.Motivation
	return row
}

// EnrichmentCells renders the enrichment block, positionally aligned to
// start at ColParseStatus.
func EnrichmentCells(r parser.Resume, overall float64) []any {
	return []any{
		string(constants.ParseStatusParsed),
		overall,
		r.Name.Value,
		r.Name.Confidence,
		strings.Join(r.Emails.Value, ", "),
		r.Emails.Confidence,
		strings.Join(r.Locations.Value, ", "),
		r.Locations.Confidence,
		jsonCell(r.Education.Value),
		r.Education.Confidence,
		jsonCell(r.Skills.Value),
		r.Skills.Confidence,
		jsonCell(r.WorkExperience.Value),
		r.WorkExperience.Confidence,
		jsonCell(r.ProjectExperience.Value),
		r.ProjectExperience.Confidence,
		"", // full extracted text placeholder
	}
}

func jsonCell(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
