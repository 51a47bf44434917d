package relationship

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	now      func() time.Time
	onChange func(ctx context.Context, pastorID string)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// OnChange registers a hook invoked after a pastor's unions change. The
// family service uses it to drop cached details that embed the current
// union.
func (s *Service) OnChange(fn func(ctx context.Context, pastorID string)) {
	s.onChange = fn
}

func (s *Service) notifyChange(ctx context.Context, pastorID string) {
	if s.onChange != nil {
		s.onChange(ctx, pastorID)
	}
}

// Current returns the pastor's open union, or nil when none exists.
func (s *Service) Current(ctx context.Context, pastorID string) (*Relationship, error) {
	current, err := s.repo.GetCurrent(ctx, pastorID)
	if err != nil {
		if errors.Is(err, ErrNoCurrentRelationship) {
			return nil, nil
		}
		return nil, err
	}
	return current, nil
}

func (s *Service) History(ctx context.Context, pastorID string) ([]RelationshipWithSpouse, error) {
	if strings.TrimSpace(pastorID) == "" {
		return nil, ErrPastorRequired
	}
	return s.repo.ListByPastor(ctx, pastorID)
}

// CloseCurrent ends the pastor's open union. Closing when none is open
// is a no-op, not an error.
func (s *Service) CloseCurrent(ctx context.Context, pastorID string) error {
	if strings.TrimSpace(pastorID) == "" {
		return ErrPastorRequired
	}
	if _, err := s.repo.CloseCurrent(ctx, pastorID, s.now().UTC()); err != nil {
		return err
	}

	s.notifyChange(ctx, pastorID)
	return nil
}

// Record registers a new marriage. The close of the previous union and
// the insert of the new one happen in one transaction so readers never
// observe two current rows for the same pastor.
func (s *Service) Record(ctx context.Context, in RecordInput) (*Relationship, error) {
	in.PastorID = strings.TrimSpace(in.PastorID)
	in.SpouseID = strings.TrimSpace(in.SpouseID)
	if in.PastorID == "" {
		return nil, ErrPastorRequired
	}
	if in.SpouseID == "" {
		return nil, ErrSpouseRequired
	}
	if in.StartedOn.IsZero() {
		return nil, ErrStartDateRequired
	}

	rel := Relationship{
		ID:        uuid.NewString(),
		PastorID:  in.PastorID,
		SpouseID:  in.SpouseID,
		StartedOn: in.StartedOn,
		IsCurrent: true,
		Place:     strings.TrimSpace(in.Place),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.CloseCurrent(ctx, in.PastorID, in.StartedOn); err != nil {
			return err
		}
		return tx.Create(ctx, &rel)
	})
	if err != nil {
		return nil, err
	}

	s.notifyChange(ctx, in.PastorID)
	return &rel, nil
}
