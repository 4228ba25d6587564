package grading

import (
	"errors"
	"fmt"
)

// Result is the structured verdict parsed from the model's response.
type Result struct {
	Grade   string  `json:"grade"`
	Reason  string  `json:"reason"`
	Details Details `json:"details"`
}

type Details struct {
	Condition   string   `json:"condition"`
	Defects     []string `json:"defects"`
	Wearability string   `json:"wearability"`
}

// ImagePart is one photo handed to the model alongside the rubric.
type ImagePart struct {
	MIMEType string
	Data     []byte
}

var ErrNoPhotos = errors.New("product has no fetchable photos")

// InvalidResponseError is returned when the model's output cannot be
// parsed into a valid grade. The raw text is kept for debugging.
type InvalidResponseError struct {
	Raw string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid AI response: %s", e.Raw)
}
