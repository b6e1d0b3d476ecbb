package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/markdown"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/pacing"
	"github.com/momentumhq/momentum/internal/repository"
)

var (
	ErrInsightUnavailable = errors.New("insight provider not configured")
	ErrNoCoachableData    = errors.New("no active cycle to coach on")
)

const coachSystemPrompt = `You are a direct, encouraging goal coach. You receive a weekly ` +
	`snapshot of the user's goals with progress and pacing numbers. Write a short note ` +
	`(3-5 sentences, markdown allowed): celebrate what is on track, name the one or two ` +
	`goals most behind pace, and suggest one concrete action for the coming week. No preamble.`

type InsightService struct {
	cfg          *config.Config
	repo         repository.InsightRepository
	cycleRepo    repository.CycleRepository
	goalRepo     repository.GoalRepository
	categoryRepo repository.CategoryRepository
	checkInRepo  repository.CheckInRepository
	parser       *markdown.Parser
	httpClient   *http.Client
}

func NewInsightService(
	cfg *config.Config,
	repo repository.InsightRepository,
	cycleRepo repository.CycleRepository,
	goalRepo repository.GoalRepository,
	categoryRepo repository.CategoryRepository,
	checkInRepo repository.CheckInRepository,
	parser *markdown.Parser,
) *InsightService {
	return &InsightService{
		cfg:          cfg,
		repo:         repo,
		cycleRepo:    cycleRepo,
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		checkInRepo:  checkInRepo,
		parser:       parser,
		httpClient:   &http.Client{Timeout: cfg.AITimeout},
	}
}

// WeeklySummary returns the user's coaching note, generating a fresh
// one only when the cache window has lapsed. One note per user per
// cache TTL bounds provider call volume.
func (s *InsightService) WeeklySummary(ctx context.Context, userID string, now time.Time) (*model.Insight, error) {
	cutoff := now.Add(-s.cfg.InsightCacheTTL)
	cached, err := s.repo.LatestSince(userID, model.InsightTypeWeeklySummary, cutoff)
	if err == nil {
		return cached, nil
	}
	if err != repository.ErrInsightNotFound {
		return nil, err
	}

	if s.cfg.AIEndpoint == "" || s.cfg.AIAPIKey == "" {
		return nil, ErrInsightUnavailable
	}

	snapshot, err := s.buildSnapshot(userID, now)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate insight: %w", err)
	}

	html, err := s.parser.Parse([]byte(content))
	if err != nil {
		slog.Warn("insight markdown render failed", "error", err, "user_id", userID)
		html = []byte(content)
	}

	insight := &model.Insight{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        model.InsightTypeWeeklySummary,
		Content:     content,
		ContentHTML: string(html),
		CreatedAt:   now,
	}

	if err := s.repo.Create(insight); err != nil {
		return nil, err
	}

	return insight, nil
}

// buildSnapshot serializes the current cycle's goals with their pacing
// numbers into the prompt the provider sees.
func (s *InsightService) buildSnapshot(userID string, now time.Time) (string, error) {
	cycle, err := s.cycleRepo.Current(userID, now)
	if err == repository.ErrCycleNotFound {
		return "", ErrNoCoachableData
	}
	if err != nil {
		return "", err
	}

	goals, err := s.goalRepo.ByCycle(userID, cycle.ID, false)
	if err != nil {
		return "", err
	}
	if len(goals) == 0 {
		return "", ErrNoCoachableData
	}
	if err := attachCategories(s.categoryRepo, userID, goals); err != nil {
		return "", err
	}

	checkInCount, err := s.checkInRepo.CountByUser(userID)
	if err != nil {
		return "", err
	}

	expected := pacing.TimeProgress(cycle.StartDate, cycle.EndDate, now)

	var b strings.Builder
	fmt.Fprintf(&b, "Cycle %q: %s to %s, %.0f%% elapsed. %d check-ins recorded.\n\nGoals:\n",
		cycle.Name,
		cycle.StartDate.Format("Jan 2"),
		cycle.EndDate.Format("Jan 2"),
		expected*100,
		checkInCount,
	)

	for _, g := range goals {
		actual := pacing.Progress(g)
		gap := expected - actual

		line := fmt.Sprintf("- %s: %.0f%% done (expected %.0f%%, gap %+.0f%%), at %s of %s",
			g.Title, actual*100, expected*100, gap*100,
			formatValue(g.CurrentValue, g.Unit), formatValue(g.TargetValue, g.Unit),
		)
		if g.Category != nil {
			line += fmt.Sprintf(" [%s]", g.Category.Name)
		}
		b.WriteString(line + "\n")
	}

	return b.String(), nil
}

func formatValue(v float64, unit string) string {
	s := fmt.Sprintf("%g", math.Round(v*100)/100)
	if unit != "" {
		s += " " + unit
	}
	return s
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete calls the configured OpenAI-compatible chat completions
// endpoint. The request is bounded by the client timeout and the
// caller's context.
func (s *InsightService) complete(ctx context.Context, snapshot string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.cfg.AIModel,
		Messages: []chatMessage{
			{Role: "system", Content: coachSystemPrompt},
			{Role: "user", Content: snapshot},
		},
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.cfg.AIAPIKey)
	req.Header.Set("Authorization", "Bearer "+s.cfg.AIAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insight provider returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("insight provider returned empty completion")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
