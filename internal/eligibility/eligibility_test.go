package eligibility

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jimezsa/opptrack/internal/models"
)

var studentProfile = models.Profile{
	Name:           "Ada",
	EducationLevel: "Undergraduate",
	GPA:            "3.8",
	Citizenship:    "U.S.",
	Skills:         "Python, excel\nNode.js",
	Majors:         "Computer Science",
}

func TestEvaluateEmptyProfileIsUnknown(t *testing.T) {
	records := []models.Opportunity{
		{Eligibility: "Requires GPA 3.5"},
		{Eligibility: ""},
		{Eligibility: "U.S. citizens only", Tags: "python"},
	}
	for _, record := range records {
		got := Evaluate(record, models.Profile{})
		if got.Status != models.EligibilityUnknown {
			t.Fatalf("Evaluate(%q) status = %q, want unknown", record.Eligibility, got.Status)
		}
		if got.Summary != SummaryNoProfile {
			t.Fatalf("summary = %q", got.Summary)
		}
		if len(got.Matches) != 0 || len(got.Gaps) != 0 {
			t.Fatalf("unknown assessment carries matches %v gaps %v", got.Matches, got.Gaps)
		}
	}
}

func TestEvaluateEmptyEligibilityIsUnknown(t *testing.T) {
	got := Evaluate(models.Opportunity{Eligibility: "   ", Tags: "python"}, studentProfile)
	if got.Status != models.EligibilityUnknown || got.Summary != SummaryNoRequirements {
		t.Fatalf("Evaluate() = %+v", got)
	}
}

func TestEvaluateGPAGap(t *testing.T) {
	profile := studentProfile
	profile.GPA = "3.2"
	got := Evaluate(models.Opportunity{Eligibility: "Requires GPA 3.5 or higher"}, profile)

	if got.Status != models.EligibilityGap {
		t.Fatalf("status = %q, want gap", got.Status)
	}
	if got.Summary != SummaryGaps {
		t.Fatalf("summary = %q", got.Summary)
	}
	if len(got.Gaps) != 1 || !strings.Contains(got.Gaps[0], "3.20 < 3.50") {
		t.Fatalf("gaps = %#v, want one entry citing 3.20 < 3.50", got.Gaps)
	}
}

func TestEvaluateGPAMatchIsStrong(t *testing.T) {
	got := Evaluate(models.Opportunity{Eligibility: "Minimum GPA: 3.5"}, studentProfile)
	if got.Status != models.EligibilityStrong || got.Summary != SummaryStrong {
		t.Fatalf("Evaluate() = %+v", got)
	}
	if !reflect.DeepEqual(got.Matches, []string{"GPA 3.80 >= 3.50"}) {
		t.Fatalf("matches = %#v", got.Matches)
	}
	if got.Detail == "" {
		t.Fatalf("strong assessment has no detail")
	}
}

func TestEvaluateKeywordPartialMatchForcesReview(t *testing.T) {
	profile := models.Profile{Skills: "python, excel"}
	got := Evaluate(models.Opportunity{Eligibility: "must know Python and SQL"}, profile)

	if got.Status != models.EligibilityReview {
		t.Fatalf("status = %q, want review", got.Status)
	}
	if got.Summary != SummaryPartial {
		t.Fatalf("summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.Matches, []string{"Has python"}) {
		t.Fatalf("matches = %#v", got.Matches)
	}
	if !reflect.DeepEqual(got.Gaps, []string{"Add experience or coursework in sql"}) {
		t.Fatalf("gaps = %#v", got.Gaps)
	}
}

func TestEvaluateNoSignalsNeedsReview(t *testing.T) {
	got := Evaluate(models.Opportunity{Eligibility: "Open to curious people"}, studentProfile)
	if got.Status != models.EligibilityReview || got.Summary != SummaryReview {
		t.Fatalf("Evaluate() = %+v", got)
	}
}

func TestEvaluateDeduplicatesMatches(t *testing.T) {
	opp := models.Opportunity{
		Eligibility: "Python experience required. Python is used daily.",
		Tags:        "python, Python",
	}
	got := Evaluate(opp, studentProfile)
	if !reflect.DeepEqual(got.Matches, []string{"Has python"}) {
		t.Fatalf("matches = %#v, want a single Has python", got.Matches)
	}
	if got.Status != models.EligibilityStrong {
		t.Fatalf("status = %q, want strong", got.Status)
	}
}

func TestEvaluateTagBonus(t *testing.T) {
	opp := models.Opportunity{Eligibility: "Undergraduates welcome", Tags: "robotics, node.js"}
	got := Evaluate(opp, studentProfile)
	want := []string{"Meets undergraduate requirement", "Has node.js"}
	if !reflect.DeepEqual(got.Matches, want) {
		t.Fatalf("matches = %#v, want %#v", got.Matches, want)
	}
}

func TestEvaluateEducationLevels(t *testing.T) {
	cases := []struct {
		name        string
		eligibility string
		level       string
		status      models.EligibilityStatus
	}{
		{"high school met", "Open to high school juniors", "High School", models.EligibilityStrong},
		{"graduate missing", "Open to graduate students", "Undergraduate", models.EligibilityGap},
		{"professional covers graduate", "Master's or PhD candidates", "Professional", models.EligibilityStrong},
		{"professional covers bachelor", "Bachelor's degree required", "professional", models.EligibilityStrong},
		{"level unspecified", "Undergraduate students only", "", models.EligibilityGap},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := models.Profile{Name: "Ada", EducationLevel: tc.level}
			got := Evaluate(models.Opportunity{Eligibility: tc.eligibility}, profile)
			if got.Status != tc.status {
				t.Fatalf("status = %q, want %q (%+v)", got.Status, tc.status, got)
			}
		})
	}
}

func TestEvaluateCitizenship(t *testing.T) {
	cases := []struct {
		name        string
		citizenship string
		eligibility string
		want        models.EligibilityStatus
	}{
		{"generic us pattern", "U.S.", "Must be a U.S. citizen", models.EligibilityStrong},
		{"verbatim", "Canada", "Canada citizens or permanent residents", models.EligibilityStrong},
		{"mismatch", "India", "Must be a U.S. citizen", models.EligibilityGap},
		{"unspecified", "", "Must be a U.S. citizen", models.EligibilityGap},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := models.Profile{Name: "Ada", Citizenship: tc.citizenship}
			got := Evaluate(models.Opportunity{Eligibility: tc.eligibility}, profile)
			if got.Status != tc.want {
				t.Fatalf("status = %q, want %q (%+v)", got.Status, tc.want, got)
			}
		})
	}

	got := Evaluate(models.Opportunity{Eligibility: "U.S. citizens only"}, models.Profile{Name: "Ada"})
	if len(got.Gaps) != 1 || !strings.Contains(got.Gaps[0], "unspecified") {
		t.Fatalf("gaps = %#v, want a gap naming unspecified", got.Gaps)
	}
}

func TestDetectKeywordsMatchesSubstrings(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"JavaScript and C++ developers; mysql a plus; machine learning", []string{"javascript", "c++", "sql", "machine learning"}},
		{"experience with python3 required", []string{"python"}},
		{"Java or JavaScript", []string{"java", "javascript"}},
		{"Open to curious people", nil},
	}
	for _, tc := range cases {
		if got := DetectKeywords(tc.text); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("DetectKeywords(%q) = %#v, want %#v", tc.text, got, tc.want)
		}
	}
}

func TestEvaluateKeywordInsideLongerToken(t *testing.T) {
	got := Evaluate(models.Opportunity{Eligibility: "experience with python3 required"}, studentProfile)
	if got.Status != models.EligibilityStrong || !reflect.DeepEqual(got.Matches, []string{"Has python"}) {
		t.Fatalf("Evaluate() = %+v", got)
	}
}

func TestEvaluateUndergraduateTextAlsoFiresGraduateRule(t *testing.T) {
	got := Evaluate(models.Opportunity{Eligibility: "Open to undergraduate students"}, studentProfile)
	if got.Status != models.EligibilityReview || got.Summary != SummaryPartial {
		t.Fatalf("Evaluate() = %+v", got)
	}
	if !reflect.DeepEqual(got.Matches, []string{"Meets undergraduate requirement"}) {
		t.Fatalf("matches = %#v", got.Matches)
	}
	if !reflect.DeepEqual(got.Gaps, []string{"Requires graduate standing (profile: Undergraduate)"}) {
		t.Fatalf("gaps = %#v", got.Gaps)
	}
}

func TestCitizenshipValueMustStandAlone(t *testing.T) {
	profile := models.Profile{Name: "Ada", Citizenship: "US"}
	got := Evaluate(models.Opportunity{Eligibility: "Must be a permanent resident"}, profile)
	if got.Status != models.EligibilityGap {
		t.Fatalf("Evaluate() = %+v, want gap", got)
	}
	if !reflect.DeepEqual(got.Gaps, []string{"Citizenship requirement may not be met (profile: US)"}) {
		t.Fatalf("gaps = %#v", got.Gaps)
	}

	got = Evaluate(models.Opportunity{Eligibility: "Open to US or Canada permanent residents"}, profile)
	if got.Status != models.EligibilityStrong {
		t.Fatalf("Evaluate() = %+v, want strong", got)
	}
}

func TestProfileKeywordsAddsCompactVariant(t *testing.T) {
	set := ProfileKeywords(models.Profile{Skills: "Node.js, C++\nData Analysis", Courses: "Intro to SQL"})
	for _, key := range []string{"node.js", "nodejs", "c++", "c", "data analysis", "dataanalysis", "intro to sql"} {
		if _, ok := set[key]; !ok {
			t.Fatalf("ProfileKeywords() missing %q in %v", key, set)
		}
	}
	if _, ok := set["sql"]; ok {
		t.Fatalf("ProfileKeywords() should keep whole tokens, found sql")
	}
}

func TestAssessIsRecomputable(t *testing.T) {
	records := []models.Opportunity{
		{ID: "a", Eligibility: "must know Python and SQL"},
		{ID: "b"},
	}
	first := Assess(records, studentProfile)
	second := Assess(first, studentProfile)
	for i := range first {
		if !reflect.DeepEqual(first[i].Assessment, second[i].Assessment) {
			t.Fatalf("assessment %d drifted: %+v vs %+v", i, first[i].Assessment, second[i].Assessment)
		}
	}
	if records[0].Assessment != nil {
		t.Fatalf("Assess mutated its input")
	}
}
