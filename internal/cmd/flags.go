package cmd

import (
	"fmt"
	"strings"

	"github.com/jimezsa/opptrack/internal/models"
)

// RecordFlags are the editable opportunity fields. Empty flags are left
// out of the resulting patch.
type RecordFlags struct {
	Title          string `help:"Opportunity title."`
	Organization   string `help:"Organization offering the opportunity."`
	Type           string `name:"type" help:"Opportunity type, e.g. Internship or Fellowship."`
	Tags           string `help:"Comma-separated tags."`
	Location       string `help:"Location."`
	Remote         string `help:"Remote option: Yes, No or Hybrid."`
	ProgramDates   string `help:"Program dates."`
	Duration       string `help:"Program duration."`
	Compensation   string `help:"Pay or stipend."`
	Eligibility    string `help:"Eligibility requirements text."`
	Materials      string `help:"Required application materials."`
	ContactEmail   string `help:"Contact email."`
	Source         string `help:"Where the opportunity was found."`
	Notes          string `help:"Free-form notes."`
	Link           string `help:"Opportunity page URL."`
	ApplyLink      string `help:"Application URL."`
	Deadline       string `help:"Application deadline."`
	NextAction     string `help:"Next step to take."`
	NextActionDate string `help:"Date for the next step."`
	Status         string `help:"Status: Not Started, In Progress, Submitted, Interview, Offer."`
	Priority       string `help:"Priority: High, Medium or Low."`
}

func (f RecordFlags) fields() models.Fields {
	values := map[string]string{
		models.FieldTitle:           f.Title,
		models.FieldOrganization:    f.Organization,
		models.FieldOpportunityType: f.Type,
		models.FieldTags:            f.Tags,
		models.FieldLocation:        f.Location,
		models.FieldRemote:          f.Remote,
		models.FieldProgramDates:    f.ProgramDates,
		models.FieldDuration:        f.Duration,
		models.FieldCompensation:    f.Compensation,
		models.FieldEligibility:     f.Eligibility,
		models.FieldMaterials:       f.Materials,
		models.FieldContactEmail:    f.ContactEmail,
		models.FieldSource:          f.Source,
		models.FieldNotes:           f.Notes,
		models.FieldLink:            f.Link,
		models.FieldApplyLink:       f.ApplyLink,
		models.FieldDeadline:        f.Deadline,
		models.FieldNextAction:      f.NextAction,
		models.FieldNextActionDate:  f.NextActionDate,
		models.FieldStatus:          f.Status,
		models.FieldPriority:        f.Priority,
	}
	out := models.Fields{}
	for name, value := range values {
		if strings.TrimSpace(value) != "" {
			out[name] = value
		}
	}
	return out
}

// ProfileFlags are the editable applicant profile fields.
type ProfileFlags struct {
	Name             string `help:"Full name."`
	Email            string `help:"Email address."`
	Phone            string `help:"Phone number."`
	Location         string `help:"Home location."`
	Links            string `help:"Portfolio or social links."`
	EducationLevel   string `help:"Education level, e.g. High school, Undergraduate, Graduate."`
	GradYear         string `help:"Expected graduation year."`
	GPA              string `name:"gpa" help:"Grade point average."`
	Citizenship      string `help:"Citizenship or residency."`
	Majors           string `help:"Comma-separated majors."`
	Skills           string `help:"Comma-separated skills."`
	Courses          string `help:"Comma-separated courses."`
	ResumeHighlights string `help:"Resume highlights, comma or newline separated."`
}

// profileFieldNames lists profile fields in display order.
var profileFieldNames = []string{
	"name", "email", "phone", "location", "links", "educationLevel", "gradYear",
	"gpa", "citizenship", "majors", "skills", "courses", "resumeHighlights",
}

// profileFields maps profile field names to the fields of p.
func profileFields(p *models.Profile) map[string]*string {
	return map[string]*string{
		"name":             &p.Name,
		"email":            &p.Email,
		"phone":            &p.Phone,
		"location":         &p.Location,
		"links":            &p.Links,
		"educationLevel":   &p.EducationLevel,
		"gradYear":         &p.GradYear,
		"gpa":              &p.GPA,
		"citizenship":      &p.Citizenship,
		"majors":           &p.Majors,
		"skills":           &p.Skills,
		"courses":          &p.Courses,
		"resumeHighlights": &p.ResumeHighlights,
	}
}

func (f ProfileFlags) values() map[string]string {
	values := map[string]string{
		"name":             f.Name,
		"email":            f.Email,
		"phone":            f.Phone,
		"location":         f.Location,
		"links":            f.Links,
		"educationLevel":   f.EducationLevel,
		"gradYear":         f.GradYear,
		"gpa":              f.GPA,
		"citizenship":      f.Citizenship,
		"majors":           f.Majors,
		"skills":           f.Skills,
		"courses":          f.Courses,
		"resumeHighlights": f.ResumeHighlights,
	}
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			delete(values, name)
		}
	}
	return values
}

// checkFieldNames rejects names that are not in known. Matching ignores
// case, dashes and underscores, so "next-action-date" names nextActionDate.
func checkFieldNames(names []string, known []string) error {
	for _, name := range names {
		if canonicalField(name, known) == "" {
			return fmt.Errorf("unknown field: %s", name)
		}
	}
	return nil
}

// canonicalField returns the entry of known matching name, or "".
func canonicalField(name string, known []string) string {
	key := fieldKey(name)
	for _, candidate := range known {
		if fieldKey(candidate) == key {
			return candidate
		}
	}
	return ""
}

func fieldKey(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(name)))
}
