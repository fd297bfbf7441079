package sexp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp/kicadsexp"
)

// GetString returns the atom at index. Index 0 is the record name.
func GetString(l *kicadsexp.List, index int) (string, error) {
	if index < 0 || index >= l.Len() {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, l.Len())
	}
	atom, ok := l.Get(index).(kicadsexp.Atom)
	if !ok {
		return "", fmt.Errorf("expected atom at index %d, got list", index)
	}
	return atom.Value, nil
}

// GetFloat extracts a float64 value at the given index
func GetFloat(l *kicadsexp.List, index int) (float64, error) {
	str, err := GetString(l, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(l *kicadsexp.List, index int) (int, error) {
	str, err := GetString(l, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetXY reads the two coordinates of (start X Y), (end X Y), (xy X Y), ...
func GetXY(l *kicadsexp.List) (x, y float64, err error) {
	if x, err = GetFloat(l, 1); err != nil {
		return 0, 0, fmt.Errorf("failed to parse X: %w", err)
	}
	if y, err = GetFloat(l, 2); err != nil {
		return 0, 0, fmt.Errorf("failed to parse Y: %w", err)
	}
	return x, y, nil
}

// GetXYAngle reads (at X Y [angle]); a missing angle is 0 degrees.
func GetXYAngle(l *kicadsexp.List) (x, y, angle float64, err error) {
	if x, y, err = GetXY(l); err != nil {
		return 0, 0, 0, err
	}
	if l.Len() > 3 {
		if angle, err = GetFloat(l, 3); err != nil {
			return 0, 0, 0, fmt.Errorf("failed to parse angle: %w", err)
		}
	}
	return x, y, angle, nil
}

// FindList returns the first nested list called name.
func FindList(l *kicadsexp.List, name string) (*kicadsexp.List, bool) {
	lists := l.Lists(name)
	if len(lists) == 0 {
		return nil, false
	}
	return lists[0], true
}

// HasAtom reports whether any direct atom of l equals value.
func HasAtom(l *kicadsexp.List, value string) bool {
	for _, a := range l.Atoms() {
		if a == value {
			return true
		}
	}
	return false
}

// ContainsAtom reports whether any direct atom of l contains substr.
func ContainsAtom(l *kicadsexp.List, substr string) bool {
	for _, a := range l.Atoms() {
		if strings.Contains(a, substr) {
			return true
		}
	}
	return false
}
