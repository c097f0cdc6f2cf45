package service

import (
	"homilybot/internal/domain"
	"homilybot/internal/telegram"
)

// DecisionKind identifies which conversation branch matched
type DecisionKind string

const (
	DecideSaveCredentials DecisionKind = "save_credentials"
	DecideRequireLogin    DecisionKind = "require_login"
	DecideArchiveDocument DecisionKind = "archive_document"
	DecidePublish         DecisionKind = "publish"
	DecideIgnore          DecisionKind = "ignore"
)

// Decision describes the single transition chosen for one inbound message
type Decision struct {
	Kind        DecisionKind
	Credentials string             // DecideSaveCredentials
	Document    *telegram.Document // DecideArchiveDocument
	Date        string             // DecidePublish
}

// Decide picks the transition for one inbound message given the user's stored
// conversation. Branches are mutually exclusive and tried in order: login
// command, missing credentials, document attachment, awaited date; anything
// else is ignored. Any bot command counts as a login.
func Decide(conv *domain.Conversation, msg *telegram.Message) Decision {
	if arg, ok := msg.CommandArgument(); ok {
		return Decision{Kind: DecideSaveCredentials, Credentials: arg}
	}
	if !conv.HasCredentials() {
		return Decision{Kind: DecideRequireLogin}
	}
	if msg.Document != nil {
		return Decision{Kind: DecideArchiveDocument, Document: msg.Document}
	}
	if conv.Status == domain.StatusAwaitingDate {
		return Decision{Kind: DecidePublish, Date: msg.Text}
	}
	return Decision{Kind: DecideIgnore}
}
