package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	ID   string `validate:"required"`
	Size int    `validate:"min=1"`
}

func TestGenericEchoValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   sampleRequest
		wantErr bool
	}{
		{name: "valid", input: sampleRequest{ID: "abc", Size: 10}, wantErr: false},
		{name: "missing id", input: sampleRequest{Size: 10}, wantErr: true},
		{name: "zero size", input: sampleRequest{ID: "abc"}, wantErr: true},
	}

	v := &GenericEchoValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if err == nil {
				return
			}
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 HTTPError, got %v", err)
			}
		})
	}
}
