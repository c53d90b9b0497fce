package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"mitra-support-backend/content"
	"mitra-support-backend/models"
	"mitra-support-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxMessageRunes bounds a single chat message.
const MaxMessageRunes = 2000

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", MaxMessageRunes)
)

// helplines are attached to every urgent reply.
var helplines = []models.Action{
	{
		Type:  "call",
		Label: "Emergency Services",
		Payload: map[string]interface{}{
			"number": "112",
		},
	},
	{
		Type:  "call",
		Label: "National Suicide Prevention Helpline",
		Payload: map[string]interface{}{
			"number": "9152987821",
		},
	},
	{
		Type:  "call",
		Label: "Kashmir Mental Health Helpline",
		Payload: map[string]interface{}{
			"number": "01942506062",
		},
	},
	{
		Type:  "connect_counselor",
		Label: "Talk to a counselor now",
	},
}

// remoteOutcome is what happened when the remote service was consulted.
type remoteOutcome struct {
	attempted bool
	reply     *RemoteReply
	err       error
}

type ChatbotService struct {
	classifier *utils.TopicClassifier
	library    *content.Library
	remote     *RemoteService
	analytics  *AnalyticsService
	logger     *zap.Logger
}

func NewChatbotService(library *content.Library, remote *RemoteService, analytics *AnalyticsService, logger *zap.Logger) (*ChatbotService, error) {
	classifier, err := utils.NewTopicClassifier(library)
	if err != nil {
		return nil, err
	}
	return &ChatbotService{
		classifier: classifier,
		library:    library,
		remote:     remote,
		analytics:  analytics,
		logger:     logger,
	}, nil
}

// ProcessMessage classifies a message locally, optionally lets the remote
// service answer instead, and returns the reply to render.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest, locale models.Locale) (*models.ChatResponse, error) {
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(req.Message) > MaxMessageRunes {
		return nil, ErrMessageTooLong
	}

	classification, err := s.classifier.Classify(req.Message, locale)
	if err != nil {
		return nil, err
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	local := s.localResponse(req, classification)

	var outcome remoteOutcome
	// A crisis is always answered locally with helplines attached.
	if classification.Category != models.CategoryUrgent && s.remote.Enabled() {
		outcome.attempted = true
		outcome.reply, outcome.err = s.remote.SendChat(ctx, req)
	}

	response := selectReply(local, outcome)

	if outcome.err != nil {
		s.logger.Warn("Remote chat unavailable, using local reply", zap.Error(outcome.err))
	}
	s.logger.Info("Chat message classified",
		zap.String("session_id", response.SessionID),
		zap.String("category", string(classification.Category)),
		zap.String("severity", string(response.Type)),
		zap.String("source", string(response.Source)),
		zap.String("locale", string(locale)),
		zap.Int("length", utf8.RuneCountInString(req.Message)))

	s.analytics.RecordChat(ctx, response)

	return response, nil
}

// Categories returns the classifier priority table.
func (s *ChatbotService) Categories() []models.CategoryInfo {
	return s.classifier.Priorities()
}

// QuickReplies returns suggested openers for the chat UI.
func (s *ChatbotService) QuickReplies(locale models.Locale) []string {
	return s.library.QuickReplies(locale)
}

func (s *ChatbotService) localResponse(req models.ChatRequest, c models.Classification) *models.ChatResponse {
	resp := &models.ChatResponse{
		SessionID: req.SessionID,
		Response:  c.ResponseText,
		Type:      c.Severity,
		Category:  c.Category,
		Locale:    c.Locale,
		Source:    models.SourceLocal,
		FollowUps: c.FollowUps,
		Sentiment: utils.AnalyzeSentiment(req.Message),
	}

	if c.Category == models.CategoryUrgent {
		resp.CrisisDetected = true
		resp.CrisisKeywords = c.Matched
		resp.Actions = helplines
	}

	return resp
}

// selectReply picks the remote reply when one was obtained and the local
// reply otherwise. Local classification fields are kept either way so the
// caller still sees what this service detected.
func selectReply(local *models.ChatResponse, outcome remoteOutcome) *models.ChatResponse {
	if !outcome.attempted || outcome.err != nil || outcome.reply == nil {
		return local
	}

	remote := *local
	remote.Source = models.SourceRemote
	remote.Response = outcome.reply.Response
	remote.Type = remoteSeverity(outcome.reply.Type)
	if outcome.reply.SessionID != "" {
		remote.SessionID = outcome.reply.SessionID
	}
	if len(outcome.reply.FollowUps) > 0 {
		remote.FollowUps = outcome.reply.FollowUps
	}
	if remote.Type == models.SeverityUrgent {
		remote.CrisisDetected = true
		remote.Actions = helplines
	}
	return &remote
}
