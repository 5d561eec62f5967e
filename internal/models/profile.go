package models

import (
	"strings"
	"time"
)

// Profile is the signed-in user's free-text academic and skills description.
type Profile struct {
	Name             string    `json:"name,omitempty"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Location         string    `json:"location,omitempty"`
	Links            string    `json:"links,omitempty"`
	EducationLevel   string    `json:"educationLevel,omitempty"`
	GradYear         string    `json:"gradYear,omitempty"`
	GPA              string    `json:"gpa,omitempty"`
	Citizenship      string    `json:"citizenship,omitempty"`
	Majors           string    `json:"majors,omitempty"`
	Skills           string    `json:"skills,omitempty"`
	Courses          string    `json:"courses,omitempty"`
	ResumeHighlights string    `json:"resumeHighlights,omitempty"`
	LastUpdated      time.Time `json:"lastUpdated,omitempty"`
}

// IsEmpty reports whether no descriptive field is populated.
func (p Profile) IsEmpty() bool {
	for _, value := range []string{
		p.Name, p.Email, p.Phone, p.Location, p.Links,
		p.EducationLevel, p.GradYear, p.GPA, p.Citizenship,
		p.Majors, p.Skills, p.Courses, p.ResumeHighlights,
	} {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// User is the identity handed over by a sign-in provider. The core only
// uses ID to namespace storage.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Valid reports whether the identity can own data.
func (u User) Valid() bool {
	return strings.TrimSpace(u.ID) != ""
}
