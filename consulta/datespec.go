/*
datespec.go - Granular date-range matching

PURPOSE:
  Resolves a pair of partially-specified date descriptors ("from" and "to",
  each independently holding optional year/month/day/hour/minute) against a
  candidate timestamp.

TWO MODES:
  Exact mode (no "to" component set):
    Every set "from" component is an independent equality constraint.
    {month: 11} matches any November, in any year, at any hour.

  Range mode (any "to" component set):
    "from" components become lower bounds with carry semantics: a
    component's >= check only applies while every more-significant set
    component is exactly equal to the candidate's; once a more-significant
    component is strictly greater than its bound, the candidate already
    exceeds the threshold and the less-significant checks are vacuous.
    "to" components are the symmetric upper bounds.

  The mode switch on "any to component present" reinterprets the same "from"
  fields, which is surprising but load-bearing: screens rely on "type only a
  month number" meaning "exactly that month". Flagged for product review, do
  not change silently.

SEE ALSO:
  - predicate.go: The scalar operator vocabulary
  - engine.go: Where specs are validated and applied
*/
package consulta

import "time"

// DateSpec is one side of a granular date constraint. All components are
// optional; nil means unconstrained at that level.
type DateSpec struct {
	Year   *int `json:"year,omitempty"`
	Month  *int `json:"month,omitempty"`
	Day    *int `json:"day,omitempty"`
	Hour   *int `json:"hour,omitempty"`
	Minute *int `json:"minute,omitempty"`
}

// Int is a pointer-literal helper for building specs.
func Int(n int) *int { return &n }

// IsZero reports whether no component is set.
func (s DateSpec) IsZero() bool {
	return s.Year == nil && s.Month == nil && s.Day == nil && s.Hour == nil && s.Minute == nil
}

// MatchesDate resolves the spec pair against a candidate timestamp.
// An absent candidate never matches; callers pass ok=false from ParseAnyDate.
func MatchesDate(candidate time.Time, ok bool, from, to DateSpec) bool {
	if !ok {
		return false
	}
	if from.IsZero() && to.IsZero() {
		return true
	}

	year, month, day := candidate.Year(), int(candidate.Month()), candidate.Day()
	hour, minute := candidate.Hour(), candidate.Minute()
	hasRange := !to.IsZero()
	matches := true

	if from.Year != nil && matches {
		if hasRange {
			matches = year >= *from.Year
		} else {
			matches = year == *from.Year
		}
	}

	if from.Month != nil && matches {
		if hasRange {
			if from.Year != nil {
				// Carry: a later year satisfies the month bound outright.
				matches = year > *from.Year || (year == *from.Year && month >= *from.Month)
			} else {
				matches = month >= *from.Month
			}
		} else {
			yearMatches := from.Year == nil || year == *from.Year
			matches = yearMatches && month == *from.Month
		}
	}

	if from.Day != nil && matches {
		if hasRange {
			if from.Year != nil && from.Month != nil {
				exactYearMonth := year == *from.Year && month == *from.Month
				matches = !exactYearMonth || day >= *from.Day
			} else {
				yearMatch := from.Year == nil || year >= *from.Year
				monthMatch := from.Month == nil || month >= *from.Month
				matches = yearMatch && monthMatch && day >= *from.Day
			}
		} else {
			yearMatches := from.Year == nil || year == *from.Year
			monthMatches := from.Month == nil || month == *from.Month
			matches = yearMatches && monthMatches && day == *from.Day
		}
	}

	if from.Hour != nil && matches {
		yearMatches := from.Year == nil || year == *from.Year
		monthMatches := from.Month == nil || month == *from.Month
		dayMatches := from.Day == nil || day == *from.Day
		if hasRange {
			if yearMatches && monthMatches && dayMatches {
				matches = hour >= *from.Hour
			}
		} else {
			matches = yearMatches && monthMatches && dayMatches && hour == *from.Hour
		}
	}

	if from.Minute != nil && matches {
		yearMatches := from.Year == nil || year == *from.Year
		monthMatches := from.Month == nil || month == *from.Month
		dayMatches := from.Day == nil || day == *from.Day
		hourMatches := from.Hour == nil || hour == *from.Hour
		if hasRange {
			if yearMatches && monthMatches && dayMatches && hourMatches {
				matches = minute >= *from.Minute
			}
		} else {
			matches = yearMatches && monthMatches && dayMatches && hourMatches && minute == *from.Minute
		}
	}

	if hasRange {
		if to.Year != nil && matches {
			matches = year <= *to.Year
		}
		if to.Month != nil && matches {
			if to.Year != nil {
				matches = year < *to.Year || (year == *to.Year && month <= *to.Month)
			} else {
				matches = month <= *to.Month
			}
		}
		if to.Day != nil && matches {
			exactYearMonth := (to.Year == nil || year == *to.Year) &&
				(to.Month == nil || month == *to.Month)
			if exactYearMonth {
				matches = day <= *to.Day
			}
		}
		if to.Hour != nil && matches {
			exactDate := (to.Year == nil || year == *to.Year) &&
				(to.Month == nil || month == *to.Month) &&
				(to.Day == nil || day == *to.Day)
			if exactDate {
				matches = hour <= *to.Hour
			}
		}
		if to.Minute != nil && matches {
			exactDateTime := (to.Year == nil || year == *to.Year) &&
				(to.Month == nil || month == *to.Month) &&
				(to.Day == nil || day == *to.Day) &&
				(to.Hour == nil || hour == *to.Hour)
			if exactDateTime {
				matches = minute <= *to.Minute
			}
		}
	}

	return matches
}
