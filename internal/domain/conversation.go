package domain

import (
	"fmt"
	"strings"
)

// Status represents where a user's conversation currently is
type Status string

const (
	// StatusIdle is the default state: nothing pending, also post-publish
	StatusIdle Status = "idle"
	// StatusAwaitingDate means a media file is stored and the bot waits for a recording date
	StatusAwaitingDate Status = "awaiting_date"
)

// Conversation is the durable per-user record driving the workflow
type Conversation struct {
	Credentials     string `json:"credentials,omitempty"`
	PendingFilePath string `json:"pending_file_path,omitempty"`
	PendingDate     string `json:"pending_date,omitempty"`
	Status          Status `json:"status,omitempty"`
}

// NewConversation returns an empty record in the default state
func NewConversation() *Conversation {
	return &Conversation{Status: StatusIdle}
}

// HasCredentials reports whether the user has logged in
func (c *Conversation) HasCredentials() bool {
	return c.Credentials != ""
}

// SplitCredentials splits the stored credentials into an API key and secret
func (c *Conversation) SplitCredentials() (string, string, error) {
	key, secret, found := strings.Cut(c.Credentials, ":")
	if !found {
		return "", "", fmt.Errorf("credentials must be in key:secret form")
	}
	return key, secret, nil
}

// Normalize fills in the default status on records loaded from older storage
func (c *Conversation) Normalize() {
	if c.Status == "" {
		c.Status = StatusIdle
	}
}

// ClearPending resets the record after a successful publish
func (c *Conversation) ClearPending() {
	c.PendingFilePath = ""
	c.PendingDate = ""
	c.Status = StatusIdle
}
