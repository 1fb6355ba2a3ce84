package errors

import (
	"math"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "pupitre", false},
		{"with underscore", "vehiculo_discapacitado", false},
		{"with digit", "mesa2", false},

		{"empty", "", true},
		{"too long", "a" + string(make([]byte, 70)), true},
		{"upper case", "Pupitre", true},
		{"leading digit", "2mesa", true},
		{"dash", "mesa-trabajo", true},
		{"space", "mesa trabajo", true},
		{"path traversal", "../etc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier("item type", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCatalog) {
				t.Errorf("expected INVALID_CATALOG, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 8, false},
		{"tiny", 0.001, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("length", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRoomSpec) {
				t.Errorf("expected INVALID_ROOM_SPEC, got %v", GetCode(err))
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "plans/room.svg", false},
		{"absolute", "/tmp/room.png", false},
		{"empty", "", true},
		{"null byte", "room\x00.svg", true},
		{"newline", "room\n.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"http://localhost:8000", false},
		{"https://api.example.edu", false},
		{"", true},
		{"ftp://example.com", true},
		{"localhost:8000", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
