package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jimezsa/opptrack/internal/dateparse"
	"github.com/jimezsa/opptrack/internal/eligibility"
	"github.com/jimezsa/opptrack/internal/models"
)

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateID    = errors.New("duplicate record id")
	ErrAmbiguousID    = errors.New("ambiguous record id")
)

// State is the application state for one signed-in user. Update methods
// never modify the receiver; they return the next state.
type State struct {
	User    models.User
	Records []models.Opportunity
	Profile models.Profile
}

// Assess recomputes every record's assessment from the current profile.
func (s State) Assess() State {
	s.Records = eligibility.Assess(s.Records, s.Profile)
	return s
}

// AddRecord prepends record, assigning an id, an added-on date and the
// default status when they are missing.
func (s State) AddRecord(record models.Opportunity, now time.Time) (State, models.Opportunity, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	for _, existing := range s.Records {
		if existing.ID == record.ID {
			return s, models.Opportunity{}, fmt.Errorf("%w: %s", ErrDuplicateID, record.ID)
		}
	}
	if record.AddedOn == "" {
		record.AddedOn = dateparse.Format(now)
	}
	if record.Status == "" {
		record.Status = models.StatusNotStarted
	}
	assessment := eligibility.Evaluate(record, s.Profile)
	record.Assessment = &assessment

	records := make([]models.Opportunity, 0, len(s.Records)+1)
	records = append(records, record)
	records = append(records, s.Records...)
	s.Records = records
	return s, record, nil
}

// UpdateRecord applies patch to the record with id. Only fields present in
// patch change.
func (s State) UpdateRecord(id string, patch models.Fields) (State, models.Opportunity, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s, models.Opportunity{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	updated, err := s.Records[idx].ApplyFields(patch)
	if err != nil {
		return s, models.Opportunity{}, err
	}
	assessment := eligibility.Evaluate(updated, s.Profile)
	updated.Assessment = &assessment

	records := append([]models.Opportunity(nil), s.Records...)
	records[idx] = updated
	s.Records = records
	return s, updated, nil
}

func (s State) SetStatus(id string, status models.Status) (State, models.Opportunity, error) {
	return s.UpdateRecord(id, models.Fields{models.FieldStatus: string(status)})
}

func (s State) DeleteRecord(id string) (State, models.Opportunity, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s, models.Opportunity{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	removed := s.Records[idx]
	records := make([]models.Opportunity, 0, len(s.Records)-1)
	records = append(records, s.Records[:idx]...)
	records = append(records, s.Records[idx+1:]...)
	s.Records = records
	return s, removed, nil
}

func (s State) ClearRecords() State {
	s.Records = []models.Opportunity{}
	return s
}

// WithProfile replaces the profile, stamps it and reassesses every record.
func (s State) WithProfile(profile models.Profile, now time.Time) State {
	profile.LastUpdated = now.UTC()
	s.Profile = profile
	return s.Assess()
}

// Find resolves ref to one record, accepting a full id or a unique prefix.
func (s State) Find(ref string) (models.Opportunity, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Opportunity{}, fmt.Errorf("%w: empty id", ErrRecordNotFound)
	}
	if idx := s.indexOf(ref); idx >= 0 {
		return s.Records[idx], nil
	}

	var found []models.Opportunity
	for _, record := range s.Records {
		if strings.HasPrefix(record.ID, ref) {
			found = append(found, record)
		}
	}
	switch len(found) {
	case 0:
		return models.Opportunity{}, fmt.Errorf("%w: %s", ErrRecordNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return models.Opportunity{}, fmt.Errorf("%w: %s matches %d records", ErrAmbiguousID, ref, len(found))
	}
}

func (s State) indexOf(id string) int {
	for i, record := range s.Records {
		if record.ID == id {
			return i
		}
	}
	return -1
}
