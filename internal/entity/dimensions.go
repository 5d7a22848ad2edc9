package entity

import (
	"strconv"
	"strings"
)

// DefaultMaxDimension caps each axis so a tiny upload cannot allocate a huge
// canvas. app.max_dimension overrides it, 0 there lifts the cap.
const DefaultMaxDimension = 10000

// ParseDimension turns a raw form value into a positive integer.
// An empty value is ErrMissingDimensions, anything else that is not an
// integer in [1, maxDimension] is ErrInvalidDimensions. maxDimension <= 0
// means no upper bound.
func ParseDimension(raw string, maxDimension int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingDimensions
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidDimensions
	}
	if value < 1 || (maxDimension > 0 && value > maxDimension) {
		return 0, ErrInvalidDimensions
	}
	return value, nil
}

// ParseDimensions checks presence of both values before checking their content.
func ParseDimensions(rawWidth, rawHeight string, maxDimension int) (int, int, error) {
	if strings.TrimSpace(rawWidth) == "" || strings.TrimSpace(rawHeight) == "" {
		return 0, 0, ErrMissingDimensions
	}

	width, err := ParseDimension(rawWidth, maxDimension)
	if err != nil {
		return 0, 0, err
	}
	height, err := ParseDimension(rawHeight, maxDimension)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
