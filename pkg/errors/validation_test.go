package errors

import (
	"testing"
)

func TestValidateDomainSizes(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		wantErr bool
	}{
		{"empty task", nil, false},
		{"binary variables", []int{2, 2}, false},
		{"mixed domains", []int{1, 3, 7}, false},

		{"zero domain", []int{2, 0}, true},
		{"negative domain", []int{-1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDomainSizes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDomainSizes(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateState(t *testing.T) {
	sizes := []int{2, 3}
	tests := []struct {
		name    string
		state   []int
		wantErr bool
	}{
		{"valid", []int{1, 2}, false},
		{"all zero", []int{0, 0}, false},

		{"too short", []int{1}, true},
		{"too long", []int{1, 1, 1}, true},
		{"value too large", []int{2, 0}, true},
		{"negative value", []int{0, -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateState(sizes, tt.state)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateState(%v) error = %v, wantErr %v", tt.state, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidState) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidState)
			}
		})
	}
}
