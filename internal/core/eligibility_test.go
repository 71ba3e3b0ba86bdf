package core

import "testing"

func TestParseEligibilityRules(t *testing.T) {
	rules, err := ParseEligibilityRules("Familia SO~Windows,Capacidad Primaria~Servidor")
	if err != nil {
		t.Fatalf("ParseEligibilityRules() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Column != "Familia SO" || rules[0].Contains != "Windows" {
		t.Errorf("rules[0] = %+v, want {Familia SO Windows}", rules[0])
	}
}

func TestParseEligibilityRules_Empty(t *testing.T) {
	rules, err := ParseEligibilityRules("")
	if err != nil {
		t.Fatalf("ParseEligibilityRules(\"\") error = %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("got %d rules, want 0", len(rules))
	}
}

func TestParseEligibilityRules_Invalid(t *testing.T) {
	for _, in := range []string{"NoSeparator", "~Windows", "Familia SO~"} {
		if _, err := ParseEligibilityRules(in); err == nil {
			t.Errorf("ParseEligibilityRules(%q) succeeded, want error", in)
		}
	}
}

func TestEligible(t *testing.T) {
	rules := []EligibilityRule{
		{Column: "Familia SO", Contains: "Windows"},
		{Column: "Capacidad Primaria", Contains: "Servidor"},
	}

	tests := []struct {
		name   string
		fields map[string]string
		want   bool
	}{
		{
			"all rules match",
			map[string]string{"Familia SO": "Windows Server 2019", "Capacidad Primaria": "Servidor físico"},
			true,
		},
		{
			"matching is case-insensitive",
			map[string]string{"Familia SO": "WINDOWS", "Capacidad Primaria": "servidor"},
			true,
		},
		{
			"one rule fails",
			map[string]string{"Familia SO": "Linux", "Capacidad Primaria": "Servidor"},
			false,
		},
		{
			"missing column fails",
			map[string]string{"Familia SO": "Windows"},
			false,
		},
		{
			"blank value fails",
			map[string]string{"Familia SO": "Windows", "Capacidad Primaria": "  "},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.fields, rules); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligible_NoRulesMeansEligible(t *testing.T) {
	if !Eligible(map[string]string{}, nil) {
		t.Error("Eligible() with no rules = false, want true")
	}
}
