// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package media maps resource locators to stream formats and builds engine sources.
package media

import (
	"net/url"
	"regexp"
	"strings"
)

// Type is the stream format tag used to pick an engine source builder.
type Type string

const (
	TypeDASH        Type = "dash"
	TypeHLS         Type = "hls"
	TypeSmooth      Type = "smooth_streaming"
	TypeProgressive Type = "progressive"
)

// ParseType accepts the config spelling of a type.
func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeDASH:
		return TypeDASH, true
	case TypeHLS:
		return TypeHLS, true
	case TypeSmooth, "ss", "smooth":
		return TypeSmooth, true
	case TypeProgressive, "other":
		return TypeProgressive, true
	default:
		return "", false
	}
}

var smoothPattern = regexp.MustCompile(`^.*\.ism(l)?(/manifest(\(.+\))?)?$`)

// Classify derives the stream format from the locator path.
// Matching is case-insensitive and never touches the network.
func Classify(locator string) Type {
	return classifyPath(strings.ToLower(pathOf(locator)))
}

func classifyPath(p string) Type {
	switch {
	// Bare "mpd"/"m3u8" suffixes cover extension-less manifest endpoints.
	case strings.HasSuffix(p, "mpd"):
		return TypeDASH
	case strings.HasSuffix(p, "m3u8"):
		return TypeHLS
	case smoothPattern.MatchString(p):
		return TypeSmooth
	default:
		return TypeProgressive
	}
}

func pathOf(locator string) string {
	u, err := url.Parse(locator)
	if err != nil {
		// Unparseable locators are still classified on their raw form, minus query.
		if i := strings.IndexAny(locator, "?#"); i >= 0 {
			return locator[:i]
		}
		return locator
	}
	if u.Path == "" && u.Opaque != "" {
		return u.Opaque
	}
	return u.Path
}
