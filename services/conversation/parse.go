package conversation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var errInvalidNumber = errors.New("invalid number")

const (
	trackWeight = "weight"
	trackSteps  = "steps"
)

// number is a plain decimal with "." or "," as the separator; no signs, exponents or NaN.
const number = `\d+(?:[.,]\d+)?`

var numberPattern = regexp.MustCompile(`^` + number + `$`)

// trackPattern is the free text grammar: "вес <number> [вчера]" or "шаги <number> [вчера]".
var trackPattern = regexp.MustCompile(`(?i)^\s*(вес|шаги)\s*:?\s*(` + number + `)\s*(вчера)?\s*$`)

type trackCommand struct {
	kind      string
	value     float64
	yesterday bool
}

// parseTrack recognizes the free text grammar for weight and steps entries.
func parseTrack(text string) (trackCommand, bool) {
	match := trackPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return trackCommand{}, false
	}

	cmd := trackCommand{yesterday: match[3] != ""}
	switch strings.ToLower(match[1]) {
	case "вес":
		cmd.kind = trackWeight
		weight, err := parsePositiveFloat(match[2])
		if err != nil {
			return trackCommand{}, false
		}
		cmd.value = weight
	default:
		cmd.kind = trackSteps
		steps, err := parseNonNegativeInt(match[2])
		if err != nil {
			return trackCommand{}, false
		}
		cmd.value = float64(steps)
	}
	return cmd, true
}

// parsePositiveFloat accepts both "80.5" and "80,5".
func parsePositiveFloat(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if !numberPattern.MatchString(text) {
		return 0, errInvalidNumber
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || value <= 0 || math.IsInf(value, 0) {
		return 0, errInvalidNumber
	}
	return value, nil
}

func parsePositiveInt(text string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value <= 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}

func parseNonNegativeInt(text string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}

func formatWeight(weight float64) string {
	return strconv.FormatFloat(weight, 'f', -1, 64)
}
