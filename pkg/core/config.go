package core

import (
	"regexp"
	"strings"
)

// PatternDelimiters are the characters that separate entries of the raw
// ignored-file-types field.
const PatternDelimiters = ",;:"

// Policy is the raw, user-editable form of a Config.
type Policy struct {
	IgnoredFileTypes    string
	UseRegex            bool
	SaveOnAppDeactivate bool
	// TimeDelaySeconds is reserved. It is carried through but never enforced.
	TimeDelaySeconds int
}

// Config is an immutable configuration snapshot consumed by one decision.
// The zero value has no ignored patterns and the sweep disabled.
type Config struct {
	patterns            []pattern
	useRegex            bool
	saveOnAppDeactivate bool
	timeDelaySeconds    int
}

type pattern struct {
	raw string
	re  *regexp.Regexp
	err error
}

// ParsePatterns splits a raw ignored-file-types field on any of
// PatternDelimiters. Empty entries are dropped, so an empty field yields no
// patterns at all.
func ParsePatterns(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(PatternDelimiters, r)
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Compile builds the snapshot for p. Invalid regular expressions are kept and
// reported when a decision reaches them.
func (p Policy) Compile() Config {
	return NewConfig(ParsePatterns(p.IgnoredFileTypes), p.UseRegex, p.SaveOnAppDeactivate, p.TimeDelaySeconds)
}

// NewConfig builds a snapshot from already split patterns. Empty patterns are
// skipped.
func NewConfig(patterns []string, useRegex, saveOnAppDeactivate bool, timeDelaySeconds int) Config {
	cfg := Config{
		useRegex:            useRegex,
		saveOnAppDeactivate: saveOnAppDeactivate,
		timeDelaySeconds:    timeDelaySeconds,
	}
	for _, raw := range patterns {
		if raw == "" {
			continue
		}
		p := pattern{raw: raw}
		if useRegex {
			p.re, p.err = regexp.Compile(raw)
		}
		cfg.patterns = append(cfg.patterns, p)
	}
	return cfg
}

// Patterns returns a copy of the ignored patterns, in order.
func (c Config) Patterns() []string {
	out := make([]string, 0, len(c.patterns))
	for _, p := range c.patterns {
		out = append(out, p.raw)
	}
	return out
}

func (c Config) UseRegex() bool            { return c.useRegex }
func (c Config) SaveOnAppDeactivate() bool { return c.saveOnAppDeactivate }
func (c Config) TimeDelaySeconds() int     { return c.timeDelaySeconds }

// Policy returns the raw form of the snapshot, joining patterns with ",".
func (c Config) Policy() Policy {
	return Policy{
		IgnoredFileTypes:    strings.Join(c.Patterns(), ","),
		UseRegex:            c.useRegex,
		SaveOnAppDeactivate: c.saveOnAppDeactivate,
		TimeDelaySeconds:    c.timeDelaySeconds,
	}
}

// Invalid lists the patterns that failed to compile.
func (c Config) Invalid() []*ConfigurationError {
	var errs []*ConfigurationError
	for _, p := range c.patterns {
		if p.err != nil {
			errs = append(errs, &ConfigurationError{Pattern: p.raw, Err: p.err})
		}
	}
	return errs
}

// match returns the first pattern that excludes path. Invalid patterns are
// passed to report and skipped.
func (c Config) match(path string, report func(*ConfigurationError)) (string, bool) {
	for _, p := range c.patterns {
		if !c.useRegex {
			if strings.HasSuffix(path, p.raw) {
				return p.raw, true
			}
			continue
		}
		if p.err != nil {
			if report != nil {
				report(&ConfigurationError{Pattern: p.raw, Err: p.err})
			}
			continue
		}
		if p.re.MatchString(path) {
			return p.raw, true
		}
	}
	return "", false
}

// Excludes reports whether path is excluded by any ignored pattern.
func (c Config) Excludes(path string) bool {
	_, ok := c.match(path, nil)
	return ok
}
