// Package terms holds the enviroCar terms of use and their JSON representation.
package terms

import (
	"encoding/json"
	"errors"
	"fmt"
)

// JSON keys of a terms of use document
const (
	KeyTermsOfUse = "termsOfUse"
	KeyID         = "id"
	KeyIssuedDate = "issuedDate"
	KeyContents   = "contents"
)

// ErrMissingField is returned when a required member is absent from a document
var ErrMissingField = errors.New("missing field")

// TermsOfUse represents a version of the enviroCar terms of use
type TermsOfUse struct {
	ID         string
	IssuedDate string

	// Contents is only sent when a single version is requested
	Contents *string
}

type termsOfUseJSON struct {
	ID         string `json:"id"`
	IssuedDate string `json:"issuedDate"`
}

// MarshalJSON writes the id and issued date. Contents are never sent back.
func (t TermsOfUse) MarshalJSON() ([]byte, error) {
	return json.Marshal(termsOfUseJSON{
		ID:         t.ID,
		IssuedDate: t.IssuedDate,
	})
}

// UnmarshalJSON reads a terms of use document
func (t *TermsOfUse) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var id, issuedDate string
	if err := requiredString(doc, KeyID, &id); err != nil {
		return err
	}
	if err := requiredString(doc, KeyIssuedDate, &issuedDate); err != nil {
		return err
	}

	var contents *string
	if raw, ok := doc[KeyContents]; ok {
		if err := json.Unmarshal(raw, &contents); err != nil {
			return fmt.Errorf("invalid '%s': %w", KeyContents, err)
		}
	}

	t.ID = id
	t.IssuedDate = issuedDate
	t.Contents = contents

	return nil
}

// List is the response of the terms of use collection
type List struct {
	TermsOfUse []TermsOfUse `json:"termsOfUse"`
}

// Latest returns the most recently issued terms of use, false if the list is empty.
// Issued dates are ISO 8601 and compare lexically.
func (l List) Latest() (TermsOfUse, bool) {
	if len(l.TermsOfUse) == 0 {
		return TermsOfUse{}, false
	}

	latest := l.TermsOfUse[0]
	for _, t := range l.TermsOfUse[1:] {
		if t.IssuedDate > latest.IssuedDate {
			latest = t
		}
	}
	return latest, true
}

func requiredString(doc map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := doc[key]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("%w '%s'", ErrMissingField, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid '%s': %w", key, err)
	}
	return nil
}
