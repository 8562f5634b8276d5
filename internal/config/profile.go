package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultApplicant is the data the tool was built for; a profile file or
// APPLICANT_* vars replace it.
var defaultApplicant = Applicant{
	Name:     "Paola Fabiana",
	Surname:  "Veron",
	Document: "24470091",
	Unit:     "Unidad 16, PEREZ",
	Minors:   "0",
}

func loadApplicant(profilePath string) (Applicant, error) {
	a := defaultApplicant

	if profilePath != "" {
		b, err := os.ReadFile(profilePath)
		if err != nil {
			return Applicant{}, fmt.Errorf("read profile %s: %w", profilePath, err)
		}
		if err := yaml.Unmarshal(b, &a); err != nil {
			return Applicant{}, fmt.Errorf("parse profile %s: %w", profilePath, err)
		}
	}

	override(&a.Name, "APPLICANT_NAME")
	override(&a.Surname, "APPLICANT_SURNAME")
	override(&a.Document, "APPLICANT_DOCUMENT")
	override(&a.Unit, "APPLICANT_UNIT")
	override(&a.Minors, "APPLICANT_MINORS")

	if a.Name == "" || a.Surname == "" || a.Document == "" || a.Unit == "" {
		return Applicant{}, fmt.Errorf("applicant name, surname, document and unit are required")
	}
	if a.Minors == "" {
		a.Minors = "0"
	}
	return a, nil
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
