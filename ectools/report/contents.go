package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// occurrenceLayout formats the estimated time of an issue
const occurrenceLayout = "Jan 2, 2006 3:04:05 PM"

// ParseMinutesAgo parses how many minutes ago the issue happened. An empty text means now.
func ParseMinutesAgo(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	minutes, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid number of minutes '%s'", text)
	}
	if minutes < 0 {
		return 0, fmt.Errorf("number of minutes must be positive, got %d", minutes)
	}

	return minutes, nil
}

// EstimatedOccurrence returns the estimated time of the issue
func EstimatedOccurrence(now time.Time, minutesAgo int) time.Time {
	return now.Add(-time.Duration(minutesAgo) * time.Minute)
}

// EmailContents builds the body of a report email
func EmailContents(now time.Time, minutesAgo int, comments string) string {
	var sb strings.Builder
	sb.WriteString("A new Issue Report has been created:\n\n")
	sb.WriteString("Estimated system time of occurrence: ")
	sb.WriteString(EstimatedOccurrence(now, minutesAgo).Format(occurrenceLayout))
	sb.WriteString("\n\n")
	sb.WriteString("Additional comments:\n")
	sb.WriteString(comments)
	return sb.String()
}
