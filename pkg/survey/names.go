package survey

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var dateSuffix = regexp.MustCompile(`\d{4}-[0-1][0-9]-[0-3][0-9]$`)

// NameAndDate is a survey response sheet name and the date it ends with.
type NameAndDate struct {
	Name string
	Date string
}

// Row is the pair as compute sheet cells.
func (n NameAndDate) Row() []interface{} {
	return []interface{}{n.Name, n.Date}
}

// ValidateDate reports whether s is a real YYYY-MM-DD date.
func ValidateDate(s string) bool {
	if len(s) != len("2006-01-02") || !dateSuffix.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ParseNameAndDate splits the date off a survey response sheet name.
func ParseNameAndDate(name string) (NameAndDate, error) {
	date := dateSuffix.FindString(name)
	if date == "" {
		return NameAndDate{}, fmt.Errorf("invalid survey result sheet name: expected a name with a YYYY-MM-DD date, got %q", name)
	}
	return NameAndDate{Name: name, Date: date}, nil
}

// NamesAndDates picks the survey response sheets out of sheetNames by a
// case-insensitive prefix match, newest name first. With no surveys it
// returns a single blank pair so the compute sheet still clears.
func NamesAndDates(prefix string, sheetNames []string) ([]NameAndDate, error) {
	var out []NameAndDate
	for _, name := range sheetNames {
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			continue
		}
		nd, err := ParseNameAndDate(name)
		if err != nil {
			return nil, err
		}
		out = append(out, nd)
	}
	if len(out) == 0 {
		return []NameAndDate{{}}, nil
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name > out[j].Name
		}
		return out[i].Date > out[j].Date
	})
	return out, nil
}

// MakeName builds a survey name for date, refusing invalid dates and names
// already in use.
func MakeName(prefix, date string, existing []string) (string, error) {
	if !ValidateDate(date) {
		return "", fmt.Errorf("invalid date %q; expected YYYY-MM-DD", date)
	}
	name := prefix + " " + date
	for _, e := range existing {
		if e == name {
			return "", fmt.Errorf("date %q already in use", date)
		}
	}
	return name, nil
}
