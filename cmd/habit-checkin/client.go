package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type habit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type habitLog struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type summary struct {
	TotalHabits      int     `json:"total_habits"`
	TotalCompletions int     `json:"total_completions"`
	AvgMood          float64 `json:"avg_mood"`
}

// apiClient talks to the habit tracker HTTP API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *apiClient) do(method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) login(email, password string) error {
	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &res); err != nil {
		return err
	}
	c.token = res.Token
	return nil
}

// today returns the user's habits and which of them are done on date.
func (c *apiClient) today(date string) ([]habit, map[string]bool, error) {
	var habits []habit
	if err := c.do(http.MethodGet, "/habits", nil, &habits); err != nil {
		return nil, nil, err
	}
	var logs []habitLog
	if err := c.do(http.MethodGet, "/habit-logs", nil, &logs); err != nil {
		return nil, nil, err
	}
	done := make(map[string]bool)
	for _, l := range logs {
		if l.Date == date {
			done[l.HabitID] = l.Completed
		}
	}
	return habits, done, nil
}

func (c *apiClient) setCompleted(habitID, date string, completed bool) (*habitLog, error) {
	var out habitLog
	err := c.do(http.MethodPost, "/habit-logs", habitLog{HabitID: habitID, Date: date, Completed: completed}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) summary() (*summary, error) {
	var out summary
	if err := c.do(http.MethodGet, "/analytics/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
