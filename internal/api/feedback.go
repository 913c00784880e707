package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoRating is returned when a feedback submission has every rating at
// zero. It is caught before any network call.
var ErrNoRating = errors.New("at least one rating is required")

// Ratings holds the four feedback criteria, each on a 0-5 scale where 0
// means "not rated".
type Ratings struct {
	Relevance   int
	Angles      int
	Sources     int
	Reusability int
}

// Validate checks the ratings are in range and that at least one was given.
func (r Ratings) Validate() error {
	for _, v := range []int{r.Relevance, r.Angles, r.Sources, r.Reusability} {
		if v < 0 || v > 5 {
			return fmt.Errorf("rating %d out of range [0,5]", v)
		}
	}
	if r.Relevance == 0 && r.Angles == 0 && r.Sources == 0 && r.Reusability == 0 {
		return ErrNoRating
	}
	return nil
}

// SubmitFeedback sends a one-shot feedback entry for an analysis. Invalid
// ratings never reach the network; a 401 surfaces ErrSessionExpired.
// Nothing is cached locally: a resubmission always starts blank.
func (c *Client) SubmitFeedback(analysisID int64, ratings Ratings, message string) error {
	if err := ratings.Validate(); err != nil {
		return err
	}

	payload := map[string]any{
		"analysis":    analysisID,
		"relevance":   ratings.Relevance,
		"angles":      ratings.Angles,
		"sources":     ratings.Sources,
		"reusability": ratings.Reusability,
		"message":     message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/feedbacks/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doProtected(req)
	if err != nil {
		return err
	}
	respBody, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, respBody)
	}
	return nil
}
