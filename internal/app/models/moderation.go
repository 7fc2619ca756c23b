package models

import (
	"fmt"

	"github.com/colloq/colloq/internal/pkg/apperrors"
)

// ModeratedKind enumerates the entity kinds that pass through the approval
// workflow. It is a closed set: route parameters are parsed through
// ParseModeratedKind before any storage code runs, so an unrecognized string
// can never reach a repository.
type ModeratedKind string

const (
	KindUniversity   ModeratedKind = "university"
	KindFaculty      ModeratedKind = "faculty"
	KindFieldOfStudy ModeratedKind = "field_of_study"
	KindSubject      ModeratedKind = "subject"
	KindNote         ModeratedKind = "note"
)

// ModeratedKinds lists every kind in a stable order.
var ModeratedKinds = []ModeratedKind{
	KindUniversity,
	KindFaculty,
	KindFieldOfStudy,
	KindSubject,
	KindNote,
}

// ParseModeratedKind validates a raw string against the closed kind set.
func ParseModeratedKind(raw string) (ModeratedKind, error) {
	kind := ModeratedKind(raw)
	for _, k := range ModeratedKinds {
		if kind == k {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownModeratedKind, raw)
}
