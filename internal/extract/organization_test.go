package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestOrganizationScoringPrefersVerbatimCorporateName(t *testing.T) {
	html := `
<html>
<head>
  <meta property="og:site_name" content="Acme Careers">
  <meta name="author" content="Acme Corp">
</head>
<body><p>Acme Corp builds rockets.</p></body>
</html>`

	p := NewPage(html, "https://acme.org/jobs/1")
	winner, ok := bestOrganization(p)
	if !ok {
		t.Fatalf("expected a winner")
	}
	if winner.Name != "Acme Corp" {
		t.Fatalf("winner = %q, want Acme Corp", winner.Name)
	}

	core := domainCore(p.Host())
	careers := scoreCandidate("Acme Careers", core, p.Text)
	corp := scoreCandidate("Acme Corp", core, p.Text)
	if corp <= careers {
		t.Fatalf("Acme Corp score %.1f should beat Acme Careers %.1f", corp, careers)
	}
}

func TestOrganizationTieKeepsFirstSeen(t *testing.T) {
	html := `<meta property="og:site_name" content="Wind Co"><meta name="publisher" content="Wind Corp">`
	p := NewPage(html, "https://wind.net")
	winner, _ := bestOrganization(p)
	if winner.Name != "Wind Co" {
		t.Fatalf("winner = %q, want first-seen Wind Co", winner.Name)
	}
}

func TestOrganizationCandidatesStripHandlesAndSources(t *testing.T) {
	html := `
<html>
<head>
  <title>Data Fellow at Globex University</title>
  <meta name="twitter:site" content="@globex">
  <script type="application/ld+json">
  {"@type": "JobPosting", "hiringOrganization": {"@type": "Organization", "name": "Globex Foundation"},
   "publisher": {"name": "Globex Media"}, "brand": {"name": "GBX"}}
  </script>
</head>
<body><a class="navbar-brand" aria-label="Globex Home"></a></body>
</html>`

	p := NewPage(html, "https://jobs.globex.edu/1")
	var names []string
	for _, c := range organizationCandidates(p) {
		names = append(names, c.Name)
	}
	want := []string{"globex", "Data Fellow", "Globex University", "Globex Home", "Globex Media", "GBX", "Globex Foundation"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("candidates = %#v, want %#v", names, want)
	}
}

func TestTitleOrganizationParts(t *testing.T) {
	if parts := titleOrganizationParts("Summer Analyst Program"); len(parts) != 0 {
		t.Fatalf("titleOrganizationParts() = %#v, want none", parts)
	}
	cases := []struct {
		title string
		want  []string
	}{
		{"Intern | Initech | Careers", []string{"Intern ", " Initech ", " Careers"}},
		{"Initech | Summer Internship", []string{"Initech ", " Summer Internship"}},
		{"Data Fellow at Globex", []string{"Data Fellow", "Globex"}},
		{"Jobs | Data Fellow at Globex | Apply", []string{"Jobs ", " Data Fellow at Globex ", " Apply", " Data Fellow", "Globex "}},
	}
	for _, tc := range cases {
		if got := titleOrganizationParts(tc.title); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("titleOrganizationParts(%q) = %#v, want %#v", tc.title, got, tc.want)
		}
	}
}

func TestCleanCandidate(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"  » Acme   Corp « ", "Acme Corp"},
		{"Acme | Careers", "Acme Careers"},
		{"---", ""},
		{strings.Repeat("a", 81), ""},
	}
	for _, tc := range cases {
		if got := cleanCandidate(tc.value); got != tc.want {
			t.Fatalf("cleanCandidate(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestDomainCore(t *testing.T) {
	cases := map[string]string{
		"acme.org":         "acme",
		"careers.acme.org": "acme",
		"www.acme.co.uk":   "acme",
		"localhost":        "localhost",
		"":                 "",
	}
	for host, want := range cases {
		if got := domainCore(host); got != want {
			t.Fatalf("domainCore(%q) = %q, want %q", host, got, want)
		}
	}
}
