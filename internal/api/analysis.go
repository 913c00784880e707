package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/datascope/datascope-cli/internal/result"
)

// Submission is an article sent for analysis: pasted text, an uploaded
// file, or both. Language is the user-selected article language.
type Submission struct {
	Language string
	Text     string
	Filename string
	File     io.Reader
}

// SubmitAnalysis posts an article for analysis and returns the id of the
// created analysis. The endpoint takes a multipart form because of the
// optional file upload.
func (c *Client) SubmitAnalysis(sub Submission) (int64, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("language", sub.Language); err != nil {
		return 0, fmt.Errorf("failed to build form: %w", err)
	}
	if sub.Text != "" {
		if err := w.WriteField("text", sub.Text); err != nil {
			return 0, fmt.Errorf("failed to build form: %w", err)
		}
	}
	if sub.File != nil {
		part, err := w.CreateFormFile("file", sub.Filename)
		if err != nil {
			return 0, fmt.Errorf("failed to build form: %w", err)
		}
		if _, err := io.Copy(part, sub.File); err != nil {
			return 0, fmt.Errorf("failed to read upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/analysis/", &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.doProtected(req)
	if err != nil {
		return 0, err
	}
	respBody, err := readBody(resp)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, apiError(resp.StatusCode, respBody)
	}

	var created struct {
		AnalysisID int64 `json:"analysis_id"`
		ID         int64 `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return 0, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	if created.AnalysisID != 0 {
		return created.AnalysisID, nil
	}
	return created.ID, nil
}

// GetAnalysis fetches one analysis and normalizes it into the canonical
// view model.
func (c *Client) GetAnalysis(id int64) (result.Analysis, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/analysis/%d/", c.baseURL, id), nil)
	if err != nil {
		return result.Analysis{}, err
	}

	resp, err := c.doProtected(req)
	if err != nil {
		return result.Analysis{}, err
	}
	respBody, err := readBody(resp)
	if err != nil {
		return result.Analysis{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return result.Analysis{}, apiError(resp.StatusCode, respBody)
	}

	analysis, err := result.ParseAnalysis(respBody)
	if err != nil {
		return result.Analysis{}, err
	}
	if analysis.ID == 0 {
		analysis.ID = id
	}
	return analysis, nil
}

// GetHistory fetches the current user's past analyses.
func (c *Client) GetHistory() ([]result.HistoryEntry, error) {
	req, err := http.NewRequest("GET", c.baseURL+"/api/history/", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doProtected(req)
	if err != nil {
		return nil, err
	}
	respBody, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, respBody)
	}

	return result.ParseHistory(respBody)
}
