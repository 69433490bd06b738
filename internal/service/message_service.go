package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage      = errors.New("message body is empty")
	ErrRecipientNotFound = errors.New("recipient not found")
)

// MessageService backs the dashboard messaging view.
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID int, body string) (*model.Message, error)
	ListForUser(ctx context.Context, userID int) ([]*model.Message, error)
	MarkRead(ctx context.Context, id string, recipientID int) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *messageService) Send(ctx context.Context, senderID, recipientID int, body string) (*model.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}

	recipient, err := s.userRepo.FindByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	msg := &model.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   time.Now(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return msg, nil
}

func (s *messageService) ListForUser(ctx context.Context, userID int) ([]*model.Message, error) {
	return s.messageRepo.ListForUser(ctx, userID)
}

func (s *messageService) MarkRead(ctx context.Context, id string, recipientID int) error {
	return s.messageRepo.MarkRead(ctx, id, recipientID)
}
