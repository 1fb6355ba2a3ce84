package catalog

import (
	"encoding/json"
	"testing"
)

func TestParseSpaceType(t *testing.T) {
	tests := []struct {
		label  string
		want   SpaceType
		wantOK bool
	}{
		{"classroom", Classroom, true},
		{"aula", Classroom, true},
		{"  Aula  ", Classroom, true},
		{"laboratorio", ComputerLab, true},
		{"computer-lab", ComputerLab, true},
		{"Computer Lab", ComputerLab, true},
		{"parqueadero", Parking, true},
		{"auditorio", Auditorium, true},
		{"oficina", Office, true},
		{"sala_conferencias", ConferenceRoom, true},
		{"Sala de Reuniones", ConferenceRoom, true},
		{"sala", ConferenceRoom, true},

		// No substring matching: unknown labels fall back to Classroom.
		{"laboratorio de química avanzada", Classroom, false},
		{"gimnasio", Classroom, false},
		{"", Classroom, false},
	}

	for _, tt := range tests {
		got, ok := ParseSpaceType(tt.label)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSpaceType(%q) = (%v, %v), want (%v, %v)", tt.label, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSpaceTypeString(t *testing.T) {
	for _, s := range AllSpaceTypes() {
		back, ok := ParseSpaceType(s.String())
		if !ok || back != s {
			t.Errorf("ParseSpaceType(%q) = %v, %v", s.String(), back, ok)
		}
	}
	if got := SpaceType(42).String(); got != "space_type(42)" {
		t.Errorf("out of range String() = %q", got)
	}
	if SpaceType(-1).Valid() {
		t.Error("SpaceType(-1) should not be valid")
	}
}

func TestSpaceTypeJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		S SpaceType `json:"s"`
	}{ConferenceRoom})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"s":"conference_room"}` {
		t.Errorf("Marshal = %s", data)
	}

	var v struct {
		S SpaceType `json:"s"`
	}
	if err := json.Unmarshal([]byte(`{"s":"parqueadero"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.S != Parking {
		t.Errorf("Unmarshal = %v, want parking", v.S)
	}
	if err := json.Unmarshal([]byte(`{"s":"spaceship"}`), &v); err == nil {
		t.Error("expected error for unknown space type")
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		label   string
		want    Shape
		wantErr bool
	}{
		{"", ShapeRectangular, false},
		{"rectangular", ShapeRectangular, false},
		{"cuadrado", ShapeSquare, false},
		{"L", ShapeLShaped, false},
		{"l-shaped", ShapeLShaped, false},
		{"irregular", ShapeIrregular, false},
		{"hexagon", "", true},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.label)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseShape(%q) = %q, %v", tt.label, got, err)
		}
	}

	if ShapeRectangular.IsApproximated() || ShapeSquare.IsApproximated() {
		t.Error("rectangular shapes are exact")
	}
	if !ShapeLShaped.IsApproximated() || !ShapeIrregular.IsApproximated() {
		t.Error("L-shaped and irregular rooms are approximated")
	}
}
