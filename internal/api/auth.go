package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// TokenPair is the response from a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register creates a new user account. On success the caller still has to
// log in to obtain tokens.
func (c *Client) Register(username, email, password string) error {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal registration: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/users/register/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
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

// Login exchanges credentials for an access/refresh token pair and arms
// the client with the access token.
func (c *Client) Login(username, password string) (TokenPair, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/token/", bytes.NewReader(body))
	if err != nil {
		return TokenPair{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TokenPair{}, fmt.Errorf("request failed: %w", err)
	}
	respBody, err := readBody(resp)
	if err != nil {
		return TokenPair{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return TokenPair{}, apiError(resp.StatusCode, respBody)
	}

	var tokens TokenPair
	if err := json.Unmarshal(respBody, &tokens); err != nil {
		return TokenPair{}, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokens.Access == "" {
		return TokenPair{}, fmt.Errorf("login response carried no access token")
	}

	c.token = tokens.Access
	return tokens, nil
}
