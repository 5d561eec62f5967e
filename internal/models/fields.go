package models

import "strings"

// Field names shared by the extractor, the CLI flags and record patches.
const (
	FieldTitle                = "title"
	FieldOrganization         = "organization"
	FieldOrganizationVerified = "organizationVerified"
	FieldOpportunityType      = "opportunityType"
	FieldTags                 = "tags"
	FieldLocation             = "location"
	FieldRemote               = "remote"
	FieldProgramDates         = "programDates"
	FieldDuration             = "duration"
	FieldCompensation         = "compensation"
	FieldEligibility          = "eligibility"
	FieldMaterials            = "materials"
	FieldContactEmail         = "contactEmail"
	FieldSource               = "source"
	FieldNotes                = "notes"
	FieldLink                 = "link"
	FieldApplyLink            = "applyLink"
	FieldAddedOn              = "addedOn"
	FieldDeadline             = "deadline"
	FieldNextAction           = "nextAction"
	FieldNextActionDate       = "nextActionDate"
	FieldStatus               = "status"
	FieldPriority             = "priority"
)

// FieldNames lists every editable field in form order.
var FieldNames = []string{
	FieldTitle, FieldOrganization, FieldOrganizationVerified, FieldOpportunityType,
	FieldTags, FieldLocation, FieldRemote, FieldProgramDates, FieldDuration,
	FieldCompensation, FieldEligibility, FieldMaterials, FieldContactEmail,
	FieldSource, FieldNotes, FieldLink, FieldApplyLink, FieldAddedOn,
	FieldDeadline, FieldNextAction, FieldNextActionDate, FieldStatus, FieldPriority,
}

// Fields is the form view of an opportunity: field name to raw text.
// Missing and empty entries are equivalent.
type Fields map[string]string

// Get returns the trimmed value of name.
func (f Fields) Get(name string) string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f[name])
}

// Fields returns the record as form fields.
func (o Opportunity) Fields() Fields {
	verified := ""
	if o.OrganizationVerified {
		verified = "true"
	}
	return Fields{
		FieldTitle:                o.Title,
		FieldOrganization:         o.Organization,
		FieldOrganizationVerified: verified,
		FieldOpportunityType:      o.OpportunityType,
		FieldTags:                 o.Tags,
		FieldLocation:             o.Location,
		FieldRemote:               o.Remote,
		FieldProgramDates:         o.ProgramDates,
		FieldDuration:             o.Duration,
		FieldCompensation:         o.Compensation,
		FieldEligibility:          o.Eligibility,
		FieldMaterials:            o.Materials,
		FieldContactEmail:         o.ContactEmail,
		FieldSource:               o.Source,
		FieldNotes:                o.Notes,
		FieldLink:                 o.Link,
		FieldApplyLink:            o.ApplyLink,
		FieldAddedOn:              o.AddedOn,
		FieldDeadline:             o.Deadline,
		FieldNextAction:           o.NextAction,
		FieldNextActionDate:       o.NextActionDate,
		FieldStatus:               string(o.Status),
		FieldPriority:             o.Priority,
	}
}

// ApplyFields overwrites every field present in f. Links are normalized and
// the status is parsed; an unparseable status is returned as an error and
// leaves the record unchanged.
func (o Opportunity) ApplyFields(f Fields) (Opportunity, error) {
	out := o
	for name, raw := range f {
		value := strings.TrimSpace(raw)
		switch name {
		case FieldTitle:
			out.Title = value
		case FieldOrganization:
			out.Organization = value
		case FieldOrganizationVerified:
			out.OrganizationVerified = parseBool(value)
		case FieldOpportunityType:
			out.OpportunityType = value
		case FieldTags:
			out.Tags = value
		case FieldLocation:
			out.Location = value
		case FieldRemote:
			out.Remote = value
		case FieldProgramDates:
			out.ProgramDates = value
		case FieldDuration:
			out.Duration = value
		case FieldCompensation:
			out.Compensation = value
		case FieldEligibility:
			out.Eligibility = value
		case FieldMaterials:
			out.Materials = value
		case FieldContactEmail:
			out.ContactEmail = value
		case FieldSource:
			out.Source = value
		case FieldNotes:
			out.Notes = value
		case FieldLink:
			out.Link = NormalizeURL(value)
		case FieldApplyLink:
			out.ApplyLink = NormalizeURL(value)
		case FieldAddedOn:
			out.AddedOn = value
		case FieldDeadline:
			out.Deadline = value
		case FieldNextAction:
			out.NextAction = value
		case FieldNextActionDate:
			out.NextActionDate = value
		case FieldStatus:
			status, err := ParseStatus(value)
			if err != nil {
				return o, err
			}
			out.Status = status
		case FieldPriority:
			out.Priority = value
		}
	}
	return out, nil
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on", "y":
		return true
	default:
		return false
	}
}
