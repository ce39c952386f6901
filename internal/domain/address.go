package domain

import "strings"

// Address is a value type identifying a pickup or drop-off location.
// CEP is the Brazilian postal code, stored digits-only.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Complement   string `json:"complement,omitempty"`
}

// Complete reports whether the address carries enough data to navigate to.
// Route settings may only be saved with two complete addresses.
func (a Address) Complete() bool {
	return a.CEP != "" && a.Street != "" && a.City != "" && a.State != ""
}

// IsZero reports whether every field is empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// NormalizeCEP strips every non-digit character from a postal code.
func NormalizeCEP(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCEP renders a postal code in the 12345-678 display form.
// Inputs shorter than six digits are returned as-is.
func FormatCEP(cep string) string {
	digits := NormalizeCEP(cep)
	if len(digits) <= 5 {
		return digits
	}
	if len(digits) > 8 {
		digits = digits[:8]
	}
	return digits[:5] + "-" + digits[5:]
}
