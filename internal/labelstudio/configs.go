package labelstudio

import (
	"fmt"
	"strings"
)

// Labeling configuration XML for the three specialised project types.
// The section choices mirror the keys the extraction engine produces.

const ResumeLabelingConfig = `<View>
  <Text name="resume_text" value="$resume_text"/>
  <Choices name="section_type" toName="resume_text" showInLine="true">
    <Choice value="name"/>
    <Choice value="contact"/>
    <Choice value="address"/>
    <Choice value="objective"/>
    <Choice value="education"/>
    <Choice value="experience"/>
    <Choice value="skills"/>
    <Choice value="projects"/>
    <Choice value="achievements"/>
    <Choice value="languages"/>
    <Choice value="co_curricular"/>
    <Choice value="personal"/>
  </Choices>
  <TextArea name="corrections" toName="resume_text" placeholder="Enter any corrections or additional information"/>
  <Rating name="parsing_accuracy" toName="resume_text" hotkey="r" maxRating="5"/>
</View>`

const SkillsLabelingConfig = `<View>
  <Text name="resume_text" value="$resume_text"/>
  <Labels name="skill_labels" toName="resume_text">
    <Label value="Programming Language" background="red"/>
    <Label value="Framework" background="blue"/>
    <Label value="Database" background="green"/>
    <Label value="Tool" background="orange"/>
    <Label value="Platform" background="purple"/>
    <Label value="Methodology" background="yellow"/>
  </Labels>
  <Choices name="skill_level" toName="resume_text" showInLine="true">
    <Choice value="Beginner"/>
    <Choice value="Intermediate"/>
    <Choice value="Advanced"/>
    <Choice value="Expert"/>
  </Choices>
  <TextArea name="skill_notes" toName="resume_text" placeholder="Additional notes about the skill"/>
</View>`

const EducationLabelingConfig = `<View>
  <Text name="education_text" value="$education_text"/>
  <Choices name="degree_type" toName="education_text" showInLine="true">
    <Choice value="Bachelor"/>
    <Choice value="Master"/>
    <Choice value="PhD"/>
    <Choice value="Diploma"/>
    <Choice value="Certificate"/>
    <Choice value="Other"/>
  </Choices>
  <TextArea name="institution" toName="education_text" placeholder="Institution name"/>
  <TextArea name="field_of_study" toName="education_text" placeholder="Field of study"/>
  <TextArea name="graduation_year" toName="education_text" placeholder="Graduation year"/>
  <Rating name="data_quality" toName="education_text" hotkey="r" maxRating="5"/>
</View>`

// GenericLabelingConfig builds a section-type config from an arbitrary
// field list, for catalogues that differ from the built-in one.
func GenericLabelingConfig(fields []string) string {
	var b strings.Builder
	b.WriteString("<View>\n")
	b.WriteString("  <Text name=\"resume_text\" value=\"$resume_text\"/>\n")
	b.WriteString("  <Choices name=\"section_type\" toName=\"resume_text\" showInLine=\"true\">\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "    <Choice value=%q/>\n", sanitizeChoice(field))
	}
	b.WriteString("  </Choices>\n")
	b.WriteString("  <TextArea name=\"corrections\" toName=\"resume_text\" placeholder=\"Enter any corrections or additional information\"/>\n")
	b.WriteString("  <Rating name=\"parsing_accuracy\" toName=\"resume_text\" hotkey=\"r\" maxRating=\"5\"/>\n")
	b.WriteString("</View>")
	return b.String()
}

// sanitizeChoice strips characters that would break the config XML.
func sanitizeChoice(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer("<", "", ">", "", "&", "and", "\"", "", "'", "")
	return replacer.Replace(s)
}

// ConfigForProjectType maps a project type name to its labeling config.
// Unknown types with a field list get a generic config.
func ConfigForProjectType(projectType string, fields []string) (string, error) {
	switch projectType {
	case "resume":
		return ResumeLabelingConfig, nil
	case "skills":
		return SkillsLabelingConfig, nil
	case "education":
		return EducationLabelingConfig, nil
	case "generic":
		if len(fields) == 0 {
			return "", fmt.Errorf("generic project type requires a field list")
		}
		return GenericLabelingConfig(fields), nil
	default:
		return "", fmt.Errorf("unknown project type: %s", projectType)
	}
}
