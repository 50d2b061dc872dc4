// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generation orchestrates article writing: it assembles the prompt,
// calls the active language model, measures the call, derives the word
// count and persists the result together with an audit log entry.
//
// Compose is the pure step and never touches storage. Create and
// Regenerate build on it; regeneration writes the new body straight onto
// the existing article.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"seowriter/internal/ai"
	"seowriter/internal/markdown"
	"seowriter/internal/models"
	"seowriter/internal/prompt"
	"seowriter/internal/slug"
	"seowriter/internal/wordcount"
)

var (
	// ErrInvalidInput marks requests rejected before any model call.
	ErrInvalidInput = errors.New("invalid generation input")
	// ErrInvalidWordRange is an ErrInvalidInput for a min above max.
	ErrInvalidWordRange = fmt.Errorf("%w: inverted word range", ErrInvalidInput)
	// ErrNotFound is returned when regenerating an article that does not exist.
	ErrNotFound = errors.New("article not found")
)

// Completer is the slice of the AI registry the service needs.
type Completer interface {
	Complete(ctx context.Context, req ai.Request) (*ai.Completion, error)
}

// ArticleRepository persists articles.
type ArticleRepository interface {
	Create(a *models.Article) (*models.Article, error)
	FindByID(id uuid.UUID) (*models.Article, error)
	ApplyGenerated(a *models.Article) (*models.Article, error)
}

// LogRepository appends generation audit records.
type LogRepository interface {
	Create(l *models.GenerationLog) (*models.GenerationLog, error)
}

// DefaultsSource supplies the typed, user-editable generation defaults.
type DefaultsSource interface {
	Defaults() (models.GenerationDefaults, error)
}

// Input holds the user-supplied parameters of one generation.
type Input struct {
	Title              string
	WritingTopic       string
	WordRangeMin       int
	WordRangeMax       int
	Keywords           []string
	Sources            []string
	CustomInstructions string
	MetaDescription    string
	CategoryID         *uuid.UUID
	TopicID            *uuid.UUID
}

// Result is the outcome of a pure generation.
type Result struct {
	HTML         string
	WordCount    int
	Prompt       prompt.Prompt
	Model        string
	TokensUsed   int64
	Duration     time.Duration
	WordRangeMin int
	WordRangeMax int
}

// Service runs the generation workflow.
type Service struct {
	llm      Completer
	articles ArticleRepository
	logs     LogRepository
	settings DefaultsSource
	now      func() time.Time
}

// NewService wires a Service.
func NewService(llm Completer, articles ArticleRepository, logs LogRepository, settings DefaultsSource) *Service {
	return &Service{
		llm:      llm,
		articles: articles,
		logs:     logs,
		settings: settings,
		now:      time.Now,
	}
}

// Compose validates the input, calls the model and returns the normalised
// HTML with usage metadata. Nothing is persisted.
func (s *Service) Compose(ctx context.Context, in Input) (*Result, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.WritingTopic = strings.TrimSpace(in.WritingTopic)
	if in.Title == "" || in.WritingTopic == "" {
		return nil, fmt.Errorf("%w: title and writing topic are required", ErrInvalidInput)
	}

	defaults := s.defaults()
	if in.WordRangeMin <= 0 {
		in.WordRangeMin = defaults.WordRangeMin
	}
	if in.WordRangeMax <= 0 {
		in.WordRangeMax = defaults.WordRangeMax
	}
	if in.WordRangeMax < in.WordRangeMin {
		return nil, fmt.Errorf("%w %d-%d", ErrInvalidWordRange, in.WordRangeMin, in.WordRangeMax)
	}

	p := prompt.Article(prompt.Params{
		Title:              in.Title,
		WritingTopic:       in.WritingTopic,
		WordRangeMin:       in.WordRangeMin,
		WordRangeMax:       in.WordRangeMax,
		Keywords:           in.Keywords,
		Sources:            in.Sources,
		CustomInstructions: in.CustomInstructions,
		Addendum:           defaults.PromptAddendum,
	})

	start := s.now()
	completion, err := s.llm.Complete(ctx, ai.Request{
		System:      p.System,
		User:        p.User,
		Temperature: ai.GenerationTemperature,
		MaxTokens:   ai.MaxOutputTokens,
	})
	duration := s.now().Sub(start)
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	html, err := markdown.NormalizeGenerated(completion.Text)
	if err != nil {
		slog.Warn("generated output could not be normalised, storing raw text", "error", err)
		html = strings.TrimSpace(completion.Text)
	}

	model := completion.Model
	if model == "" {
		model = ai.DefaultModel
	}

	return &Result{
		HTML:         html,
		WordCount:    wordcount.Count(html),
		Prompt:       p,
		Model:        model,
		TokensUsed:   completion.TokensUsed,
		Duration:     duration,
		WordRangeMin: in.WordRangeMin,
		WordRangeMax: in.WordRangeMax,
	}, nil
}

// Create generates a new article, stores it with status generated and a
// time-suffixed slug, then records the generation log.
func (s *Service) Create(ctx context.Context, in Input) (*models.Article, error) {
	res, err := s.Compose(ctx, in)
	if err != nil {
		return nil, err
	}

	a := &models.Article{
		Title:        strings.TrimSpace(in.Title),
		Slug:         slug.WithSuffix(in.Title, s.now()),
		Content:      res.HTML,
		HTMLContent:  res.HTML,
		Status:       models.ArticleStatusGenerated,
		WordRangeMin: res.WordRangeMin,
		WordRangeMax: res.WordRangeMax,
		WritingTopic: strings.TrimSpace(in.WritingTopic),
		Keywords:     cleanList(in.Keywords),
		Sources:      cleanList(in.Sources),
		CategoryID:   in.CategoryID,
		TopicID:      in.TopicID,
	}
	if v := strings.TrimSpace(in.CustomInstructions); v != "" {
		a.CustomInstructions = &v
	}
	if v := strings.TrimSpace(in.MetaDescription); v != "" {
		a.MetaDescription = &v
	}

	created, err := s.articles.Create(a)
	if err != nil {
		return nil, fmt.Errorf("store generated article: %w", err)
	}

	if err := s.recordLog(created.ID, res); err != nil {
		return created, err
	}

	slog.Info("article generated",
		"article_id", created.ID,
		"model", res.Model,
		"tokens", res.TokensUsed,
		"duration_ms", res.Duration.Milliseconds(),
		"words", created.WordCount,
	)
	return created, nil
}

// Overrides replaces individual stored parameters for a regeneration.
// Nil fields keep the stored value.
type Overrides struct {
	Title              *string
	WritingTopic       *string
	WordRangeMin       *int
	WordRangeMax       *int
	Keywords           *[]string
	Sources            *[]string
	CustomInstructions *string
}

// Regenerate reruns generation for an existing article and writes the new
// body onto the same row. The id and slug are preserved and the status
// goes back to generated.
func (s *Service) Regenerate(ctx context.Context, id uuid.UUID, o Overrides) (*models.Article, error) {
	a, err := s.articles.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("load article: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}

	in := Input{
		Title:        a.Title,
		WritingTopic: a.WritingTopic,
		WordRangeMin: a.WordRangeMin,
		WordRangeMax: a.WordRangeMax,
		Keywords:     a.Keywords,
		Sources:      a.Sources,
	}
	if a.CustomInstructions != nil {
		in.CustomInstructions = *a.CustomInstructions
	}
	if o.Title != nil {
		in.Title = *o.Title
	}
	if o.WritingTopic != nil {
		in.WritingTopic = *o.WritingTopic
	}
	if o.WordRangeMin != nil {
		in.WordRangeMin = *o.WordRangeMin
	}
	if o.WordRangeMax != nil {
		in.WordRangeMax = *o.WordRangeMax
	}
	if o.Keywords != nil {
		in.Keywords = *o.Keywords
	}
	if o.Sources != nil {
		in.Sources = *o.Sources
	}
	if o.CustomInstructions != nil {
		in.CustomInstructions = *o.CustomInstructions
	}

	res, err := s.Compose(ctx, in)
	if err != nil {
		return nil, err
	}

	a.Title = strings.TrimSpace(in.Title)
	a.WritingTopic = strings.TrimSpace(in.WritingTopic)
	a.WordRangeMin = res.WordRangeMin
	a.WordRangeMax = res.WordRangeMax
	a.Keywords = cleanList(in.Keywords)
	a.Sources = cleanList(in.Sources)
	a.CustomInstructions = nil
	if v := strings.TrimSpace(in.CustomInstructions); v != "" {
		a.CustomInstructions = &v
	}
	a.Content = res.HTML
	a.HTMLContent = res.HTML

	updated, err := s.articles.ApplyGenerated(a)
	if err != nil {
		return nil, fmt.Errorf("store regenerated article: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	if err := s.recordLog(updated.ID, res); err != nil {
		return updated, err
	}

	slog.Info("article regenerated",
		"article_id", updated.ID,
		"model", res.Model,
		"tokens", res.TokensUsed,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return updated, nil
}

func (s *Service) recordLog(articleID uuid.UUID, res *Result) error {
	_, err := s.logs.Create(&models.GenerationLog{
		ArticleID:  articleID,
		Prompt:     res.Prompt.Full(),
		Model:      res.Model,
		TokensUsed: res.TokensUsed,
		DurationMS: res.Duration.Milliseconds(),
	})
	if err != nil {
		slog.Error("failed to record generation log", "error", err, "article_id", articleID)
		return fmt.Errorf("record generation log: %w", err)
	}
	return nil
}

// defaults loads the settings, falling back to the built-in values when
// the store is unavailable or holds malformed values.
func (s *Service) defaults() models.GenerationDefaults {
	if s.settings == nil {
		return models.DefaultGenerationDefaults()
	}
	d, err := s.settings.Defaults()
	if err != nil {
		slog.Warn("using built-in generation defaults", "error", err)
		return models.DefaultGenerationDefaults()
	}
	return d
}

// cleanList trims entries and drops empty ones, preserving order.
func cleanList(in []string) models.StringList {
	out := models.StringList{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
