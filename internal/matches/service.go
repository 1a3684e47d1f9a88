// internal/matches/service.go

package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// ErrUnauthorized covers both "job not yours" and "no active
// application". Callers surface a single message for both so the API
// does not leak which precondition failed.
var ErrUnauthorized = errors.New("unauthorized")

// Notifier is implemented by the notifications package.
type Notifier interface {
	MatchCreated(ctx context.Context, workerID, employerID, matchID, jobID int64, jobTitle string)
}

type Service interface {
	ApproveApplication(ctx context.Context, employerID int64, req *ApproveRequest) (*ApproveResponse, error)
	Unmatch(ctx context.Context, userID, matchID int64) error
	GetMatches(ctx context.Context, userID int64) ([]*MatchSummary, error)
	OpenMatch(ctx context.Context, userID, matchID int64) error
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

// ApproveApplication turns a worker's application into a match. The
// job must belong to the calling employer and the worker must have an
// active apply interaction. Approving twice returns the same match.
func (s *service) ApproveApplication(ctx context.Context, employerID int64, req *ApproveRequest) (*ApproveResponse, error) {
	owner, jobTitle, err := s.repo.GetJobOwner(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if owner != employerID {
		return nil, ErrUnauthorized
	}

	applied, err := s.repo.HasActiveApplication(ctx, req.ApplicantID, req.JobID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrUnauthorized
	}

	matchID, err := s.repo.UpsertMatch(ctx, req.JobID, req.ApplicantID, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if s.notifier != nil {
		s.notifier.MatchCreated(ctx, req.ApplicantID, employerID, matchID, req.JobID, jobTitle)
	}

	return &ApproveResponse{MatchID: matchID}, nil
}

// Unmatch removes the match and its conversation. The conversation
// goes first; if that delete fails the match is removed anyway, the
// orphan is logged and cleaned up out of band.
func (s *service) Unmatch(ctx context.Context, userID, matchID int64) error {
	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if match.WorkerID != userID && match.EmployerID != userID {
		return ErrUnauthorized
	}

	if err := s.repo.DeleteConversation(ctx, matchID); err != nil {
		log.Printf("Failed to delete conversation for match %d, proceeding with unmatch: %v", matchID, err)
	}

	return s.repo.DeleteMatch(ctx, matchID)
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*MatchSummary, error) {
	return s.repo.ListMatches(ctx, userID)
}

// OpenMatch marks the match as seen by the calling side, clearing the
// unread badge.
func (s *service) OpenMatch(ctx context.Context, userID, matchID int64) error {
	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	switch userID {
	case match.WorkerID:
		return s.repo.MarkOpened(ctx, matchID, true)
	case match.EmployerID:
		return s.repo.MarkOpened(ctx, matchID, false)
	default:
		return ErrUnauthorized
	}
}
