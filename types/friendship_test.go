package types

import "testing"

func TestSendFriendRequest_Validate(t *testing.T) {
	tt := []struct {
		name     string
		code     string
		wantErr  bool
		wantCode string
	}{
		{name: "ok", code: "MOR-X7K2PL", wantCode: "MOR-X7K2PL"},
		{name: "normalizes_lowercase", code: "mor-x7k2pl", wantCode: "MOR-X7K2PL"},
		{name: "normalizes_whitespace", code: " MOR-X7K2PL ", wantCode: "MOR-X7K2PL"},
		{name: "empty", code: "", wantErr: true},
		{name: "malformed", code: "MOR_X7K2PL", wantErr: true},
		{name: "suffix_too_short", code: "MOR-X7K", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			in := SendFriendRequest{Code: tc.code}
			err := in.Validate()
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && in.Code != tc.wantCode {
				t.Errorf("Code = %q, want %q", in.Code, tc.wantCode)
			}
		})
	}
}

func TestReviewFriendRequest_Validate(t *testing.T) {
	valid := &ReviewFriendRequest{FriendshipID: "9m4e2mr0ui3e8a215n4g"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	missing := &ReviewFriendRequest{}
	if err := missing.Validate(); err == nil {
		t.Error("Validate() error = nil, want error for missing friendship ID")
	}

	malformed := &ReviewFriendRequest{FriendshipID: "nope"}
	if err := malformed.Validate(); err == nil {
		t.Error("Validate() error = nil, want error for malformed friendship ID")
	}
}
