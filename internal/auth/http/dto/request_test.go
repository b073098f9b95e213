package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueTokenRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     IssueTokenRequest
		wantErr bool
	}{
		{name: "valid", req: IssueTokenRequest{ClientID: "0190a0c5-7b1e-7000-8000-000000000001", ClientSecret: "s"}},
		{name: "missing client id", req: IssueTokenRequest{ClientSecret: "s"}, wantErr: true},
		{name: "blank client id", req: IssueTokenRequest{ClientID: "   ", ClientSecret: "s"}, wantErr: true},
		{name: "missing secret", req: IssueTokenRequest{ClientID: "id"}, wantErr: true},
		{name: "blank secret", req: IssueTokenRequest{ClientID: "id", ClientSecret: "\t"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
