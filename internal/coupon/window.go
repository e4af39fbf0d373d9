package coupon

import (
	"strings"
	"time"

	"storefront-api/internal/model"
)

// dateLayouts are tried in order when parsing a start or end date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 timestamp or date. Values without a zone are UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, model.Errorf(model.KindInvalidDate, "invalid date format: %q", value)
}

// ResolveWindow resolves the effective window of a coupon.
//
// existing is nil on create. A proposed value that is nil or blank falls back
// to the existing bound; on create both bounds are required. On update a newly
// supplied start must be strictly after now. The resolved start must be
// strictly before the resolved end.
func ResolveWindow(existing *Window, proposedStart, proposedEnd *string, now time.Time) (Window, error) {
	startSupplied := supplied(proposedStart)
	endSupplied := supplied(proposedEnd)

	if existing == nil {
		if !startSupplied {
			return Window{}, model.NewDomainError(model.KindBadRequest, "startDate is required")
		}
		if !endSupplied {
			return Window{}, model.NewDomainError(model.KindBadRequest, "endDate is required")
		}
	}

	var w Window
	if existing != nil {
		w = *existing
	}

	if startSupplied {
		start, err := ParseDate(*proposedStart)
		if err != nil {
			return Window{}, err
		}
		w.Start = start
	}

	if endSupplied {
		end, err := ParseDate(*proposedEnd)
		if err != nil {
			return Window{}, err
		}
		w.End = end
	}

	if existing != nil && startSupplied && !w.Start.After(now) {
		return Window{}, model.NewDomainError(model.KindInvalidWindow, "startDate must be in the future")
	}

	if !w.Start.Before(w.End) {
		return Window{}, model.NewDomainError(model.KindInvalidWindow, "startDate must be earlier than endDate")
	}

	return w, nil
}

func supplied(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}
