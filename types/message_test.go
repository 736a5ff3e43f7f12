package types

import (
	"strings"
	"testing"

	"github.com/morsafarhq/morsafar/id"
)

func TestSendMessage_Validate(t *testing.T) {
	conversationID := id.Generate()

	tt := []struct {
		name    string
		in      SendMessage
		wantErr bool
	}{
		{
			name: "ok",
			in:   SendMessage{ConversationID: conversationID, Body: "Ciao!"},
		},
		{
			name: "ok_at_max_length",
			in:   SendMessage{ConversationID: conversationID, Body: strings.Repeat("a", 2000)},
		},
		{
			name:    "missing_conversation_id",
			in:      SendMessage{Body: "Ciao!"},
			wantErr: true,
		},
		{
			name:    "malformed_conversation_id",
			in:      SendMessage{ConversationID: "not-an-id", Body: "Ciao!"},
			wantErr: true,
		},
		{
			name:    "empty_body",
			in:      SendMessage{ConversationID: conversationID, Body: ""},
			wantErr: true,
		},
		{
			name:    "whitespace_only_body",
			in:      SendMessage{ConversationID: conversationID, Body: "  \n\t "},
			wantErr: true,
		},
		{
			name:    "body_too_long",
			in:      SendMessage{ConversationID: conversationID, Body: strings.Repeat("a", 2001)},
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSendMessage_ValidateTrimsBody(t *testing.T) {
	in := SendMessage{ConversationID: id.Generate(), Body: "  Ciao!  "}
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if in.Body != "Ciao!" {
		t.Errorf("Body = %q, want %q", in.Body, "Ciao!")
	}
}

func TestSendMessage_ValidateCountsRunes(t *testing.T) {
	// 2000 multi-byte runes exceed 2000 bytes but stay within the limit.
	in := SendMessage{ConversationID: id.Generate(), Body: strings.Repeat("é", 2000)}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
