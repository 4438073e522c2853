package survey

import (
	"errors"
	"fmt"
	"strings"

	"healthcheck/pkg/compute"
)

var ErrTemplate = errors.New("survey template check failed")

// Prefix names survey forms and their response sheets.
const Prefix = "Squad Health Check"

const Description = `The Squad Health Check is a way for teams to gauge their perception of productivity, performance, and purpose. Originally developed at Spotify, the check enables teams to identify ways to improve their processes, individual skills, and overall work quality-of-life across eleven dimensions of team sentiment.

Original blog post: https://engineering.atspotify.com/2014/09/squad-health-check-model
Follow-up post: https://engineering.atspotify.com/2023/03/getting-more-from-your-team-health-checks
TeamRetro Squad Health Check: https://www.teamretro.com/health-checks/squad-health-check`

// Header is the dimension table header on the template sheet.
var Header = []string{"Dimension", "Good", "Bad", "Icon URL"}

// Template sheet geometry.
const (
	TemplateDescriptionRow = 1
	TemplateHeaderRow      = 2
	TemplateDimensionsRow  = 3
)

// Dimension is one surveyed topic.
type Dimension struct {
	Name    string `toml:"name" yaml:"name" json:"name"`
	Good    string `toml:"good" yaml:"good" json:"good"`
	Bad     string `toml:"bad" yaml:"bad" json:"bad"`
	IconURL string `toml:"icon_url" yaml:"icon_url" json:"iconUrl"`
}

// Row is the dimension as a template sheet row.
func (d Dimension) Row() []interface{} {
	return []interface{}{d.Name, d.Good, d.Bad, d.IconURL}
}

func DefaultDimensions() []Dimension {
	return []Dimension{
		{"Delivering value", "We deliver great stuff! We’re proud of it and our stakeholders are really happy.", "We deliver crap. We feel ashamed to deliver it. Our stakeholders hate us.", "https://www.teamretro.com/wp-content/uploads/2024/02/diamond.png"},
		{"Ease of release", "Releasing is simple, safe, painless and mostly automated.", "Releasing is risky, painful, lots of manual work and takes forever.", "https://www.teamretro.com/wp-content/uploads/2019/08/image11.png"},
		{"Fun", "We love going to work and have great fun working together!", "Boooooooring…", "https://www.teamretro.com/wp-content/uploads/2019/08/image2-150x150.png"},
		{"Health of repository", "We’re proud of the quality of our repository of reusable artifacts: code, documentation, handbooks, etc. Code is easy to read and properly tested, documentation is up to date, etc.", "Our artifacts are a pile of dung and technical/documentation debt is raging out of control.", "https://www.teamretro.com/wp-content/uploads/2019/08/image13-150x150.png"},
		{"Learning", "We’re learning lots of interesting stuff all the time!", "We never have time to learn anything.", "https://www.teamretro.com/wp-content/uploads/2019/08/image10-150x150.png"},
		{"Mission", "We know why we are here and we’re really excited about it!", "We have no idea why we are here. There’s no high level picture or focus. Our so-called mission is completely unclear and uninspiring.", "https://www.teamretro.com/wp-content/uploads/2019/08/image15-150x150.png"},
		{"Pawns or players", "We are in control of our own destiny! We decide what to build and how to build it.", "We are just pawns in a game of chess with no influence over what we build or how we build it.", "https://www.teamretro.com/wp-content/uploads/2019/08/image7-150x150.png"},
		{"Speed", "We get stuff done really quickly! No waiting and no delays.", "We never seem to get anything done. We keep getting stuck or interrupted. Tasks keep getting stuck on dependencies.", "https://www.teamretro.com/wp-content/uploads/2019/08/image9-150x150.png"},
		{"Suitable process", "Our way of working fits us perfectly!", "Our way of working sucks!", "https://www.teamretro.com/wp-content/uploads/2019/08/image1-150x150.png"},
		{"Support", "We always get great support and help when we ask for it!", "We keep getting stuck because we can’t get the support and help that we ask for.", "https://www.teamretro.com/wp-content/uploads/2019/08/image8-150x150.png"},
		{"Teamwork", "We are a totally gelled super-team with awesome collaboration!", "We are a bunch of individuals that neither know nor care about what the other people in the squad are doing.", "https://www.teamretro.com/wp-content/uploads/2019/08/image14-150x150.png"},
	}
}

// DefaultSentiments are Perception (where a dimension stands) and Trend
// (where it is headed).
func DefaultSentiments() []compute.Sentiment {
	return []compute.Sentiment{
		{Name: "Perception", Labels: []string{"Good 🙂", "Neutral 😐", "Bad 🙁"}},
		{Name: "Trend", Labels: []string{"Improving ↗️", "Stable ➡️", "Deteriorating ↘️"}},
	}
}

// Template is the survey template: a description and its dimensions.
type Template struct {
	Description string      `toml:"description" yaml:"description" json:"description"`
	Dimensions  []Dimension `toml:"dimensions" yaml:"dimensions" json:"dimensions"`
}

func DefaultTemplate() Template {
	return Template{Description: Description, Dimensions: DefaultDimensions()}
}

// Count returns the number of dimensions.
func (t Template) Count() int {
	return len(t.Dimensions)
}

func (t Template) DimensionNames() []string {
	names := make([]string, len(t.Dimensions))
	for i, d := range t.Dimensions {
		names[i] = d.Name
	}
	return names
}

// FromRows reads a template from the rows of a template sheet's dimension
// table, starting with its header row.
func FromRows(description string, rows [][]string) (Template, error) {
	if err := Check(rows); err != nil {
		return Template{}, err
	}
	t := Template{Description: description}
	for _, r := range rows[1:] {
		t.Dimensions = append(t.Dimensions, Dimension{Name: r[0], Good: r[1], Bad: r[2], IconURL: r[3]})
	}
	return t, nil
}

// Check verifies that rows (header first) form a well-shaped dimension table:
// the expected header, at least one dimension, and no blank fields.
func Check(rows [][]string) error {
	var problems []error
	if len(rows) == 0 || !headerMatches(rows[0]) {
		problems = append(problems, fmt.Errorf("dimension table header is not %q", strings.Join(Header, ", ")))
	}
	if len(rows) < 2 {
		problems = append(problems, errors.New("dimension table has no dimensions"))
	}
	for i := 1; i < len(rows); i++ {
		r := rows[i]
		if len(r) < len(Header) {
			problems = append(problems, fmt.Errorf("row %d has %d of %d fields", TemplateHeaderRow+i, len(r), len(Header)))
			continue
		}
		for j := range Header {
			if strings.TrimSpace(r[j]) == "" {
				problems = append(problems, fmt.Errorf("row %d has a blank %q", TemplateHeaderRow+i, Header[j]))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrTemplate, errors.Join(problems...))
	}
	return nil
}

func headerMatches(row []string) bool {
	if len(row) < len(Header) {
		return false
	}
	for i, h := range Header {
		if row[i] != h {
			return false
		}
	}
	return true
}
