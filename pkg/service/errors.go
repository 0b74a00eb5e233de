package service

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/validation"
)

// ValidationError is an authoritative rejection of a submission: the
// document failed evaluation against the original schema. Recoverable; the
// caller corrects the data and resubmits.
type ValidationError struct {
	Issues []validation.Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "service: document validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
			continue
		}
		parts = append(parts, issue.Message)
	}
	return "service: document validation failed: " + strings.Join(parts, "; ")
}
