package ui

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
)

// numberValidator flags entries that do not hold a finite number. It only
// drives the entry's error hint; Calculate still parses every field itself.
func numberValidator(field string) fyne.StringValidator {
	return func(s string) error {
		return checkNumber(field, s)
	}
}

// optionalNumberValidator is numberValidator but accepts a blank entry.
func optionalNumberValidator(field string) fyne.StringValidator {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return checkNumber(field, s)
	}
}

func checkNumber(field, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New(field + " cannot be empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New(field + " must be a number")
	}
	return nil
}
