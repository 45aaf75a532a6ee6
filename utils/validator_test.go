package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	t.Setenv("EMAIL_DOMAIN", "")

	if ok, _ := ValidateEmail("meera@college.edu"); !ok {
		t.Fatal("expected valid email to pass")
	}
	if ok, _ := ValidateEmail("not-an-email"); ok {
		t.Fatal("expected malformed email to fail")
	}

	t.Setenv("EMAIL_DOMAIN", "college.edu")
	if ok, _ := ValidateEmail("meera@college.edu"); !ok {
		t.Fatal("expected college email to pass with domain restriction")
	}
	if ok, msg := ValidateEmail("meera@gmail.com"); ok || msg != "Only college emails allowed" {
		t.Fatalf("expected domain rejection, got ok=%v msg=%q", ok, msg)
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Str0ng!pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial123", false},
	}
	for _, tc := range cases {
		if ok, _ := ValidatePassword(tc.password); ok != tc.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, ok, tc.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Fatalf("SanitizeInput = %q", got)
	}
}
