package catalogue

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Canonical section ids. Section headers found in a document are mapped onto
// these fixed names regardless of which variant the document used.
const (
	SectionName         = "name"
	SectionContact      = "contact"
	SectionAddress      = "address"
	SectionObjective    = "objective"
	SectionEducation    = "education"
	SectionExperience   = "experience"
	SectionSkills       = "skills"
	SectionProjects     = "projects"
	SectionAchievements = "achievements"
	SectionLanguages    = "languages"
	SectionCoCurricular = "co_curricular"
	SectionPersonal     = "personal"
)

// Singleton field keys extracted by pattern matching, independent of section
// structure.
const (
	FieldName        = "name"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldDateOfBirth = "date_of_birth"
	FieldAddress     = "address"
)

// Section is one catalogue entry: a canonical id, the header strings that
// identify it, and its rendering policy (scalar text vs delimited list).
type Section struct {
	ID       string   `yaml:"id"`
	Variants []string `yaml:"variants"`
	List     bool     `yaml:"list,omitempty"`
}

// Catalogue is the ordered set of known sections. The slice order is a
// declared property: when one line matches variants of two sections, the
// section that appears first in the slice claims the line.
type Catalogue struct {
	Sections []Section `yaml:"sections"`
}

// Default returns the built-in catalogue. Variant sets mirror the header
// vocabulary seen in real résumés; all variants are upper-case because lines
// are upper-cased before the containment test.
func Default() Catalogue {
	return Catalogue{Sections: []Section{
		{ID: SectionName, Variants: []string{"NAME", "FULL NAME", "CANDIDATE NAME"}},
		{ID: SectionContact, Variants: []string{"CONTACT", "CONTACT INFORMATION", "CONTACT DETAILS", "PHONE", "MOBILE", "EMAIL"}},
		{ID: SectionAddress, Variants: []string{"ADDRESS", "LOCATION", "CURRENT ADDRESS", "PERMANENT ADDRESS"}},
		{ID: SectionObjective, Variants: []string{"OBJECTIVE", "CAREER OBJECTIVE", "PROFESSIONAL OBJECTIVE", "SUMMARY", "PROFILE"}},
		{ID: SectionEducation, Variants: []string{"EDUCATION", "ACADEMIC BACKGROUND", "QUALIFICATIONS", "ACADEMIC QUALIFICATIONS"}},
		{ID: SectionExperience, Variants: []string{"EXPERIENCE", "WORK EXPERIENCE", "EMPLOYMENT HISTORY", "PROFESSIONAL EXPERIENCE"}},
		{ID: SectionSkills, Variants: []string{"SKILLS", "TECHNICAL SKILLS", "COMPETENCIES", "EXPERTISE", "TECHNOLOGIES"}, List: true},
		{ID: SectionProjects, Variants: []string{"PROJECTS", "PROJECT WORK", "ACADEMIC PROJECTS", "PERSONAL PROJECTS"}},
		{ID: SectionAchievements, Variants: []string{"ACHIEVEMENTS", "AWARDS", "CERTIFICATIONS", "HONORS", "RECOGNITIONS"}},
		{ID: SectionLanguages, Variants: []string{"LANGUAGES", "LANGUAGE SKILLS", "LINGUISTIC COMPETENCIES"}, List: true},
		{ID: SectionCoCurricular, Variants: []string{"CO CURRICULAR", "CO-CURRICULAR", "COCURRICULAR", "EXTRA CURRICULAR", "EXTRA-CURRICULAR", "EXTRACURRICULAR", "ACTIVITIES", "HOBBIES", "INTERESTS", "PERSONAL INTERESTS"}, List: true},
		{ID: SectionPersonal, Variants: []string{"PERSONAL DETAILS", "PERSONAL INFORMATION", "BIOGRAPHICAL DATA"}},
	}}
}

// Load reads an alternate catalogue from a YAML file. Variants are
// upper-cased on load so files may use any casing.
func Load(path string) (Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalogue{}, fmt.Errorf("read catalogue: %w", err)
	}
	var cat Catalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalogue{}, fmt.Errorf("parse catalogue: %w", err)
	}
	for i := range cat.Sections {
		for j, v := range cat.Sections[i].Variants {
			cat.Sections[i].Variants[j] = strings.ToUpper(strings.TrimSpace(v))
		}
	}
	if err := cat.Validate(); err != nil {
		return Catalogue{}, err
	}
	return cat, nil
}

// Validate checks the catalogue invariants: at least one section, every
// section has a non-empty id and a non-empty variant set.
func (c Catalogue) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("catalogue has no sections")
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, sec := range c.Sections {
		if sec.ID == "" {
			return fmt.Errorf("catalogue section with empty id")
		}
		if seen[sec.ID] {
			return fmt.Errorf("catalogue section %q declared twice", sec.ID)
		}
		seen[sec.ID] = true
		if len(sec.Variants) == 0 {
			return fmt.Errorf("catalogue section %q has no header variants", sec.ID)
		}
		for _, v := range sec.Variants {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("catalogue section %q has an empty header variant", sec.ID)
			}
		}
	}
	return nil
}
