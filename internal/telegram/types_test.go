package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_CommandArgument(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		entities    []Entity
		expectedArg string
		expectedOK  bool
	}{
		{
			name:        "command with argument",
			text:        "/login abc123:secretxyz",
			entities:    []Entity{{Type: "bot_command", Offset: 0, Length: 6}},
			expectedArg: "abc123:secretxyz",
			expectedOK:  true,
		},
		{
			name:        "command without argument",
			text:        "/login",
			entities:    []Entity{{Type: "bot_command", Offset: 0, Length: 6}},
			expectedArg: "",
			expectedOK:  true,
		},
		{
			name:        "argument surrounded by whitespace",
			text:        "/login   abc:def  ",
			entities:    []Entity{{Type: "bot_command", Offset: 0, Length: 6}},
			expectedArg: "abc:def",
			expectedOK:  true,
		},
		{
			name:       "no entities",
			text:       "just text",
			expectedOK: false,
		},
		{
			name:       "non-command entity",
			text:       "see https://example.com",
			entities:   []Entity{{Type: "url", Offset: 4, Length: 19}},
			expectedOK: false,
		},
		{
			name:        "entity length past end of text",
			text:        "/login",
			entities:    []Entity{{Type: "bot_command", Offset: 0, Length: 64}},
			expectedArg: "",
			expectedOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &Message{Text: tt.text, Entities: tt.entities}

			arg, ok := msg.CommandArgument()

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedArg, arg)
		})
	}
}
