package contact

import (
	"context"
	"log"

	"github.com/sherbolotarbaev/portfolio/internal/store"
)

// Status values of a Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is what the form shows after a submission.
type Result struct {
	Status string
	Reason string
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Repository persists submitted messages.
type Repository interface {
	SaveMessage(ctx context.Context, m store.Message) error
	MarkDelivered(ctx context.Context, id string) error
}

// Service accepts contact messages. A nil Sender stores messages without
// forwarding them.
type Service struct {
	repo   Repository
	sender Sender
}

// NewService returns a Service backed by repo and sender.
func NewService(repo Repository, sender Sender) *Service {
	return &Service{repo: repo, sender: sender}
}

// Submit stores m and forwards it when a sender is configured.
func (s *Service) Submit(ctx context.Context, m Message) Result {
	err := s.repo.SaveMessage(ctx, store.Message{
		ID:        m.ID,
		Email:     m.Email,
		Body:      m.Body,
		HashedIP:  m.HashedIP,
		CreatedAt: m.CreatedAt,
	})
	if err != nil {
		log.Printf("contact: %v", err)
		return Result{Status: StatusError, Reason: "Something went wrong. Please try again later."}
	}

	if s.sender == nil {
		log.Printf("contact: smtp not configured, stored message id=%s", m.ID)
		return Result{Status: StatusSuccess}
	}

	if err := s.sender.Send(ctx, m); err != nil {
		log.Printf("contact: %v", err)
		return Result{Status: StatusError, Reason: "Sorry, your message could not be sent. Please try again later."}
	}

	if err := s.repo.MarkDelivered(ctx, m.ID); err != nil {
		log.Printf("contact: %v", err)
	}
	return Result{Status: StatusSuccess}
}
