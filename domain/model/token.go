package model

import "time"

const secondsPerDay = 86400

// TokenRecord is the stored LinkedIn connection.
type TokenRecord struct {
	AccessToken string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
	MemberID    string    `json:"member_id,omitempty"`
}

func (t TokenRecord) IsConnected(now time.Time) bool {
	return t.AccessToken != "" && t.ExpiresAt.After(now)
}

// DaysLeft is floor((expires_at-now)/86400), never below zero.
func (t TokenRecord) DaysLeft(now time.Time) int {
	if t.ExpiresAt.IsZero() {
		return 0
	}
	secs := t.ExpiresAt.Unix() - now.Unix()
	if secs <= 0 {
		return 0
	}
	return int(secs / secondsPerDay)
}

type OrganizationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func (c Credentials) Complete() bool { return c.ClientID != "" && c.ClientSecret != "" }

// ConnectionStatus is what operators see on the settings screen.
type ConnectionStatus struct {
	Connected     bool              `json:"connected"`
	DaysLeft      int               `json:"days_left"`
	ExpiresAt     *time.Time        `json:"expires_at,omitempty"`
	MemberID      string            `json:"member_id,omitempty"`
	Organizations []OrganizationRef `json:"organizations"`
	Notices       []string          `json:"notices"`
}
