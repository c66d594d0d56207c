package domain

import (
	"errors"
	"testing"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"canonical", "9366b7dc-2d71-4799-b91c-c64adb205104", "9366b7dc-2d71-4799-b91c-c64adb205104", false},
		{"upper case", "9366B7DC-2D71-4799-B91C-C64ADB205104", "9366b7dc-2d71-4799-b91c-c64adb205104", false},
		{"empty", "", "", true},
		{"garbage", "fake id", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrMalformedIdentifier) {
					t.Fatalf("error = %v, want ErrMalformedIdentifier", err)
				}
				var malformed *MalformedIdentifierError
				if !errors.As(err, &malformed) || malformed.Value != tt.input {
					t.Errorf("error does not carry the input: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestIdentifierEquality(t *testing.T) {
	a := NewCategoryID()
	b, err := ParseCategoryID(a.String())
	if err != nil {
		t.Fatalf("ParseCategoryID() error = %v", err)
	}

	if !a.Equals(b) {
		t.Error("identifiers with the same value are not equal")
	}
	if a.Equals(NewCategoryID()) {
		t.Error("two new identifiers are equal")
	}

	if a.UUID().String() != a.String() {
		t.Errorf("UUID() = %s, want %s", a.UUID(), a)
	}

	var zero GenreID
	if !zero.IsZero() || zero.UUID().String() != "00000000-0000-0000-0000-000000000000" {
		t.Error("zero identifier is not reported as zero")
	}
}
