// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupportedMediaType is returned when no source can be built for a locator.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ErrInvalidLocator is returned for empty or malformed locators.
var ErrInvalidLocator = errors.New("invalid media locator")

// DefaultSupported is the set of types the bundled engine adapter can play.
var DefaultSupported = []Type{TypeHLS, TypeProgressive}

// Source is what the engine is asked to prepare.
type Source struct {
	Locator   string
	URL       *url.URL
	Type      Type
	UserAgent string
}

// BuildSource classifies the locator and fails fast when the adapter
// cannot play the resulting type. No engine state is touched.
func BuildSource(locator, userAgent string, supported []Type) (Source, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return Source{}, ErrInvalidLocator
	}
	u, err := url.Parse(locator)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}

	t := Classify(locator)
	if len(supported) == 0 {
		supported = DefaultSupported
	}
	if !contains(supported, t) {
		return Source{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedMediaType, t, locator)
	}

	return Source{
		Locator:   locator,
		URL:       u,
		Type:      t,
		UserAgent: userAgent,
	}, nil
}

func contains(types []Type, t Type) bool {
	for _, s := range types {
		if s == t {
			return true
		}
	}
	return false
}
