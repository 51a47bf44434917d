package relationship

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRelRepo struct {
	rows []*Relationship
}

func (r *fakeRelRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeRelRepo) GetCurrent(ctx context.Context, pastorID string) (*Relationship, error) {
	for _, row := range r.rows {
		if row.PastorID == pastorID && row.IsCurrent {
			return row, nil
		}
	}
	return nil, ErrNoCurrentRelationship
}

func (r *fakeRelRepo) ListByPastor(ctx context.Context, pastorID string) ([]RelationshipWithSpouse, error) {
	var result []RelationshipWithSpouse
	for _, row := range r.rows {
		if row.PastorID == pastorID {
			result = append(result, RelationshipWithSpouse{Relationship: *row})
		}
	}
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].StartedOn.Before(result[j-1].StartedOn); j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}
	return result, nil
}

func (r *fakeRelRepo) Create(ctx context.Context, rel *Relationship) error {
	r.rows = append(r.rows, rel)
	return nil
}

func (r *fakeRelRepo) CloseCurrent(ctx context.Context, pastorID string, endedOn time.Time) (int64, error) {
	var affected int64
	for _, row := range r.rows {
		if row.PastorID == pastorID && row.IsCurrent {
			row.IsCurrent = false
			ended := endedOn
			row.EndedOn = &ended
			affected++
		}
	}
	return affected, nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentNoneIsNil(t *testing.T) {
	svc := NewService(&fakeRelRepo{})
	current, err := svc.Current(context.Background(), "pastor-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if current != nil {
		t.Fatalf("expected nil, got %+v", current)
	}
}

func TestCloseCurrentStampsEndDate(t *testing.T) {
	repo := &fakeRelRepo{rows: []*Relationship{
		{ID: "r1", PastorID: "pastor-1", SpouseID: "spouse-1", StartedOn: day(1990, 6, 1), IsCurrent: true},
	}}
	svc := NewService(repo)
	svc.now = func() time.Time { return day(2020, 1, 15) }

	if err := svc.CloseCurrent(context.Background(), "pastor-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	row := repo.rows[0]
	if row.IsCurrent {
		t.Fatalf("expected relationship closed")
	}
	if row.EndedOn == nil || !row.EndedOn.Equal(day(2020, 1, 15)) {
		t.Fatalf("expected end date stamped, got %v", row.EndedOn)
	}
}

func TestCloseCurrentNoOpWhenNoneOpen(t *testing.T) {
	svc := NewService(&fakeRelRepo{})
	if err := svc.CloseCurrent(context.Background(), "pastor-1"); err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
}

func TestRecordClosesPreviousAndOpensNew(t *testing.T) {
	repo := &fakeRelRepo{rows: []*Relationship{
		{ID: "r1", PastorID: "pastor-1", SpouseID: "spouse-1", StartedOn: day(1990, 6, 1), IsCurrent: true},
	}}
	svc := NewService(repo)

	created, err := svc.Record(context.Background(), RecordInput{
		PastorID:  "pastor-1",
		SpouseID:  "spouse-2",
		StartedOn: day(2001, 9, 8),
		Place:     "Debrecen",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == "" || !created.IsCurrent {
		t.Fatalf("expected new current relationship, got %+v", created)
	}

	current, err := svc.Current(context.Background(), "pastor-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if current == nil || current.ID != created.ID {
		t.Fatalf("expected sole current %s, got %+v", created.ID, current)
	}

	old := repo.rows[0]
	if old.IsCurrent {
		t.Fatalf("expected previous relationship closed")
	}
	if old.EndedOn == nil || !old.EndedOn.Equal(day(2001, 9, 8)) {
		t.Fatalf("expected previous end stamped with new start, got %v", old.EndedOn)
	}
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(&fakeRelRepo{})

	if _, err := svc.Record(context.Background(), RecordInput{SpouseID: "s", StartedOn: day(2000, 1, 1)}); !errors.Is(err, ErrPastorRequired) {
		t.Fatalf("expected ErrPastorRequired, got %v", err)
	}
	if _, err := svc.Record(context.Background(), RecordInput{PastorID: "p", StartedOn: day(2000, 1, 1)}); !errors.Is(err, ErrSpouseRequired) {
		t.Fatalf("expected ErrSpouseRequired, got %v", err)
	}
	if _, err := svc.Record(context.Background(), RecordInput{PastorID: "p", SpouseID: "s"}); !errors.Is(err, ErrStartDateRequired) {
		t.Fatalf("expected ErrStartDateRequired, got %v", err)
	}
}

func TestRecordAndCloseNotifyChangeHook(t *testing.T) {
	svc := NewService(&fakeRelRepo{})

	var notified []string
	svc.OnChange(func(ctx context.Context, pastorID string) {
		notified = append(notified, pastorID)
	})

	if _, err := svc.Record(context.Background(), RecordInput{
		PastorID:  "pastor-1",
		SpouseID:  "spouse-1",
		StartedOn: day(1990, 6, 1),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.CloseCurrent(context.Background(), "pastor-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(notified) != 2 || notified[0] != "pastor-1" || notified[1] != "pastor-1" {
		t.Fatalf("expected hook fired for both writes, got %v", notified)
	}
}

func TestHistoryOrderedByStartDate(t *testing.T) {
	repo := &fakeRelRepo{rows: []*Relationship{
		{ID: "r2", PastorID: "pastor-1", SpouseID: "spouse-2", StartedOn: day(2001, 9, 8)},
		{ID: "r1", PastorID: "pastor-1", SpouseID: "spouse-1", StartedOn: day(1990, 6, 1)},
	}}
	svc := NewService(repo)

	history, err := svc.History(context.Background(), "pastor-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(history) != 2 || history[0].ID != "r1" || history[1].ID != "r2" {
		t.Fatalf("expected r1 then r2, got %+v", history)
	}
}
