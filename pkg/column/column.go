package column

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidIndex = errors.New("invalid column index")

// ToLabel converts a 1-based column index to its spreadsheet letter label
// (1 -> A, 26 -> Z, 27 -> AA, 52 -> AZ).
func ToLabel(index int) (string, error) {
	if index < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	var b []byte
	for n := index; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b), nil
}

// MustLabel is ToLabel for indices that come from a validated layout.
func MustLabel(index int) string {
	label, err := ToLabel(index)
	if err != nil {
		panic(err)
	}
	return label
}

// ToIndex converts a letter label back to its 1-based column index.
func ToIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty label", ErrInvalidIndex)
	}
	index := 0
	for _, r := range strings.ToUpper(label) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, label)
		}
		index = index*26 + int(r-'A') + 1
	}
	return index, nil
}

// Span returns a whole-column selector such as "C:C".
func Span(index int) string {
	label := MustLabel(index)
	return label + ":" + label
}

// From returns an open-ended range starting at row, such as "B1:B".
func From(index, row int) string {
	label := MustLabel(index)
	return fmt.Sprintf("%s%d:%s", label, row, label)
}

// Cell returns an A1 reference such as "D3".
func Cell(index, row int) string {
	return fmt.Sprintf("%s%d", MustLabel(index), row)
}
