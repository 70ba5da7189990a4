package filter

import (
	"errors"
	"log/slog"
	"regexp"

	"github.com/rickb777/srcsetlint/logger"
)

// Filter is a list of regular expressions matched against file paths.
type Filter []*regexp.Regexp

// New compiles the expressions. All compilation errors are returned together.
func New(regexps []string) (Filter, error) {
	var errs []error
	var compiled Filter

	for _, exp := range regexps {
		re, err := regexp.Compile(exp)
		if err == nil {
			compiled = append(compiled, re)
		} else {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return compiled, nil
}

// Matches is true if any expression matches the path. The intent is logged when it does.
func (filter Filter) Matches(path string, intent string) bool {
	for _, re := range filter {
		if re.MatchString(path) {
			logger.Info(intent,
				slog.String("path", path),
				slog.String("expression", re.String()))
			return true
		}
	}
	return false
}
