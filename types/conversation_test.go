package types

import (
	"strings"
	"testing"
)

func TestGetOrCreateConversation_Validate(t *testing.T) {
	roster := []RosterEntry{
		{UserID: "u1", DisplayName: "Aïcha"},
		{UserID: "u2", DisplayName: "Youssef"},
	}

	tt := []struct {
		name    string
		in      GetOrCreateConversation
		wantErr bool
	}{
		{
			name: "ok",
			in:   GetOrCreateConversation{GroupID: "trip-42", BookingID: "bk-1", Roster: roster},
		},
		{
			name:    "missing_group_id",
			in:      GetOrCreateConversation{BookingID: "bk-1", Roster: roster},
			wantErr: true,
		},
		{
			name:    "group_id_too_long",
			in:      GetOrCreateConversation{GroupID: strings.Repeat("g", 129), BookingID: "bk-1", Roster: roster},
			wantErr: true,
		},
		{
			name:    "missing_booking_id",
			in:      GetOrCreateConversation{GroupID: "trip-42", Roster: roster},
			wantErr: true,
		},
		{
			name:    "empty_roster",
			in:      GetOrCreateConversation{GroupID: "trip-42", BookingID: "bk-1"},
			wantErr: true,
		},
		{
			name: "roster_entry_without_user_id",
			in: GetOrCreateConversation{GroupID: "trip-42", BookingID: "bk-1", Roster: []RosterEntry{
				{DisplayName: "Aïcha"},
			}},
			wantErr: true,
		},
		{
			name: "duplicate_roster_user",
			in: GetOrCreateConversation{GroupID: "trip-42", BookingID: "bk-1", Roster: []RosterEntry{
				{UserID: "u1", DisplayName: "Aïcha"},
				{UserID: "u1", DisplayName: "Aïcha again"},
			}},
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
