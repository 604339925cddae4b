package classify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sankalpa/khaata/internal/llm"
	"github.com/sankalpa/khaata/internal/model"
)

// patternTrustThreshold is the minimum learned-pattern confidence that
// bypasses the quick rules and the LLM entirely.
const patternTrustThreshold = 0.8

// PatternMatcher finds the best learned pattern for a transaction.
type PatternMatcher interface {
	FindBestMatch(ctx context.Context, userID, description, merchant string) (*model.PatternMatch, error)
}

// CategoryGetter resolves category IDs carried by learned patterns
// back to names.
type CategoryGetter interface {
	GetCategoryByID(ctx context.Context, id int) (*model.Category, error)
}

// Classifier resolves a category suggestion for a transaction. It
// consults learned patterns first, then the static quick-match rules,
// and only then the LLM. It never returns an error: every failure
// degrades to a low-confidence suggestion the caller can ignore.
type Classifier struct {
	matcher PatternMatcher
	store   CategoryGetter
	client  llm.Client
	logger  *slog.Logger
}

// NewClassifier creates a Classifier. matcher and client may be nil,
// in which case the corresponding resolution steps are skipped.
func NewClassifier(matcher PatternMatcher, store CategoryGetter, client llm.Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		matcher: matcher,
		store:   store,
		client:  client,
		logger:  logger,
	}
}

// Categorize suggests a category for the transaction. An empty userID
// skips the learned-pattern step so anonymous previews still work.
func (c *Classifier) Categorize(ctx context.Context, description, merchant string, amount float64, available []string, userID string) model.CategorySuggestion {
	if userID != "" && c.matcher != nil {
		if s, ok := c.fromPattern(ctx, userID, description, merchant, available); ok {
			return s
		}
	}

	if rule, kw, name := matchQuickRule(description, merchant, available); rule != nil {
		return model.CategorySuggestion{
			Category:   name,
			Reasoning:  fmt.Sprintf("matched keyword %q", kw),
			Confidence: rule.Confidence,
		}
	}

	return c.fromLLM(ctx, description, merchant, amount, available)
}

func (c *Classifier) fromPattern(ctx context.Context, userID, description, merchant string, available []string) (model.CategorySuggestion, bool) {
	match, err := c.matcher.FindBestMatch(ctx, userID, description, merchant)
	if err != nil {
		c.logger.Warn("pattern lookup failed", "error", err)
		return model.CategorySuggestion{}, false
	}
	if match == nil || match.Confidence <= patternTrustThreshold {
		return model.CategorySuggestion{}, false
	}

	cat, err := c.store.GetCategoryByID(ctx, match.Pattern.CategoryID)
	if err != nil {
		c.logger.Warn("pattern category lookup failed",
			"category_id", match.Pattern.CategoryID, "error", err)
		return model.CategorySuggestion{}, false
	}

	name, ok := resolveCategoryName(cat.Name, available)
	if !ok {
		// Pattern points at a category the caller did not offer.
		return model.CategorySuggestion{}, false
	}

	reason := "learned from earlier categorization"
	if match.Pattern.IsUserCorrection {
		reason = "learned from your correction"
	}
	return model.CategorySuggestion{
		Category:   name,
		Reasoning:  reason,
		Confidence: match.Confidence,
	}, true
}

func (c *Classifier) fromLLM(ctx context.Context, description, merchant string, amount float64, available []string) model.CategorySuggestion {
	if len(available) == 0 {
		return model.CategorySuggestion{
			Reasoning:  "no categories available",
			Confidence: 0,
		}
	}

	fallback := model.CategorySuggestion{
		Category:   available[0],
		Reasoning:  "could not categorize, defaulting to first available category",
		Confidence: 0.1,
	}
	if c.client == nil {
		return fallback
	}

	prompt := BuildPrompt(description, merchant, amount, available)
	raw, err := c.client.Complete(ctx, prompt)
	if err != nil {
		c.logger.Warn("llm call failed", "error", err)
		return fallback
	}

	parsed, err := llm.ParseSuggestion(raw)
	if err != nil {
		c.logger.Warn("llm response unparseable", "error", err)
		return fallback
	}

	name, ok := resolveCategoryName(parsed.Category, available)
	if !ok {
		c.logger.Warn("llm suggested unknown category", "category", parsed.Category)
		return fallback
	}

	return model.CategorySuggestion{
		Category:   name,
		Reasoning:  parsed.Reasoning,
		Confidence: parsed.Confidence,
	}
}
