package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"healthcheck/pkg/compute"
	"healthcheck/pkg/survey"
)

// Settings is everything the health check tools need to know.
type Settings struct {
	SpreadsheetID   string `toml:"spreadsheet_id" yaml:"spreadsheet_id"`
	CredentialsFile string `toml:"credentials_file" yaml:"credentials_file"`
	ListenAddress   string `toml:"listen_address" yaml:"listen_address"`

	SurveyPrefix    string `toml:"survey_prefix" yaml:"survey_prefix"`
	ComputeSheet    string `toml:"compute_sheet" yaml:"compute_sheet"`
	TemplateSheet   string `toml:"template_sheet" yaml:"template_sheet"`
	CrosscheckSheet string `toml:"crosscheck_sheet" yaml:"crosscheck_sheet"`
	// ReferenceSurvey is the response sheet the crosscheck compares against.
	ReferenceSurvey string `toml:"reference_survey" yaml:"reference_survey"`

	// DimensionCount, when set, must agree with the template.
	DimensionCount *int `toml:"dimension_count,omitempty" yaml:"dimension_count,omitempty"`

	Layout     compute.LayoutConfig `toml:"layout" yaml:"layout"`
	Sentiments []compute.Sentiment  `toml:"sentiments" yaml:"sentiments"`
	Template   survey.Template      `toml:"template" yaml:"template"`
}

type config struct {
	Filename string
	Store    Settings
}

func defaults() Settings {
	return Settings{
		ListenAddress:   ":80",
		SurveyPrefix:    survey.Prefix,
		ComputeSheet:    "Compute",
		TemplateSheet:   "Survey template",
		CrosscheckSheet: "Crosscheck sheet",
		Layout:          compute.DefaultLayoutConfig(),
	}
}

func isYAML(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

// Write the current config out to a toml (or yaml) file.
func (c *config) Save() error {
	var (
		b   []byte
		err error
	)
	if isYAML(c.Filename) {
		b, err = yaml.Marshal(c.Store)
	} else {
		b, err = toml.Marshal(c.Store)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(c.Filename, b, 0644)
}

// Load the current config from a toml (or yaml) file.
func (c *config) Load() error {
	b, err := os.ReadFile(c.Filename)
	if err != nil {
		return err
	}
	if isYAML(c.Filename) {
		return yaml.Unmarshal(b, &c.Store)
	}
	return toml.Unmarshal(b, &c.Store)
}

// Load reads filename, writing a default file first if it does not exist.
// Environment variables override the spreadsheet and credentials settings.
func Load(filename string) (Settings, error) {
	c := &config{
		Filename: filename,
		Store:    defaults(),
	}
	if err := c.Load(); err != nil {
		if !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("loading %s: %w", filename, err)
		}
		c.Store.Sentiments = survey.DefaultSentiments()
		c.Store.Template = survey.DefaultTemplate()
		if err := c.Save(); err != nil {
			return Settings{}, fmt.Errorf("writing default %s: %w", filename, err)
		}
	}
	c.Store.applyDefaults()
	c.Store.applyEnv()
	return c.Store, nil
}

// Default returns the built-in settings without touching the filesystem.
func Default() Settings {
	s := defaults()
	s.applyDefaults()
	s.applyEnv()
	return s
}

func (s *Settings) applyDefaults() {
	if len(s.Sentiments) == 0 {
		s.Sentiments = survey.DefaultSentiments()
	}
	if len(s.Template.Dimensions) == 0 {
		s.Template.Dimensions = survey.DefaultDimensions()
	}
	if s.Template.Description == "" {
		s.Template.Description = survey.Description
	}
}

func (s *Settings) applyEnv() {
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		s.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		s.CredentialsFile = v
	}
}

// NewLayout builds the compute layout for dimensionCount dimensions, checking
// it against the configured count when there is one.
func (s Settings) NewLayout(dimensionCount *int) (*compute.Layout, error) {
	if s.DimensionCount != nil && dimensionCount != nil && *s.DimensionCount != *dimensionCount {
		return nil, fmt.Errorf("%w: configured %d dimensions, template has %d", compute.ErrLayoutMismatch, *s.DimensionCount, *dimensionCount)
	}
	if dimensionCount == nil {
		dimensionCount = s.DimensionCount
	}
	return compute.NewLayout(s.Layout, dimensionCount, s.Sentiments)
}
