package testdata

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smartshop/qaforge/internal/config"
	"github.com/smartshop/qaforge/internal/llm"
)

// Strategy labels used in logs and metrics.
const (
	strategyModel     = "model"
	strategySynthetic = "synthetic"
)

// ErrNoModelClient is returned by CheckModel when the generator was
// constructed without an API key.
var ErrNoModelClient = errors.New("model client not configured")

// modelClient is the slice of the completion client the generator
// needs. *llm.Client satisfies it; tests substitute stubs.
type modelClient interface {
	CompleteJSON(ctx context.Context, prompt string, result interface{}) (*llm.Usage, error)
	Ping(ctx context.Context) error
	Model() string
}

// Recorder receives generation and model-call counters. Satisfied by
// *observability.Metrics; optional.
type Recorder interface {
	RecordGeneration(entity, strategy string)
	RecordFallback(reason string)
	RecordModelRequest(model, purpose, status string, duration time.Duration, promptTokens, completionTokens int)
}

// Generator produces synthetic test fixtures for the UI and API
// suites. When a model client is available each call first asks the
// model for data; any failure silently falls back to deterministic
// synthesis, so callers always get a schema-valid result. Which path
// produced a record is observable only through logs and metrics.
//
// A Generator is not safe for concurrent use; suites running tests in
// parallel should construct one per worker.
type Generator struct {
	client  modelClient // nil in synthetic-only mode
	synth   *synthesizer
	logger  *zap.Logger
	metrics Recorder
}

// Option configures optional generator collaborators.
type Option func(*Generator)

// WithMetrics wires generation counters into the given recorder.
func WithMetrics(m Recorder) Option {
	return func(g *Generator) { g.metrics = m }
}

// New constructs a generator. With no API key configured the generator
// permanently runs in synthetic-only mode; with a key present the
// client is created optimistically and a bad credential surfaces only
// on first use (or via CheckModel).
func New(cfg config.OpenAIConfig, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		synth:  newSynthesizer(),
		logger: logger,
	}

	if cfg.APIKey == "" {
		logger.Warn("OpenAI API key not configured, using synthetic generation only")
	} else {
		client, err := llm.New(llm.Config{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			Model:        cfg.Model,
			MaxTokens:    cfg.MaxTokens,
			Temperature:  cfg.Temperature,
			Timeout:      cfg.Timeout,
			RateLimitRPM: cfg.RateLimitRPM,
		})
		if err != nil {
			logger.Warn("model client initialization failed, using synthetic generation only", zap.Error(err))
		} else {
			g.client = client
			logger.Info("model client initialized", zap.String("model", client.Model()))
		}
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// ModelAvailable reports whether a model client was configured. It
// says nothing about credential validity; probe CheckModel for that.
func (g *Generator) ModelAvailable() bool {
	return g.client != nil
}

// CheckModel verifies the configured credential against the API.
func (g *Generator) CheckModel(ctx context.Context) error {
	if g.client == nil {
		return ErrNoModelClient
	}
	return g.client.Ping(ctx)
}

// completeJSON runs one model request for the given purpose and records
// its outcome (count, duration, token usage) before handing the error on.
func (g *Generator) completeJSON(ctx context.Context, purpose, prompt string, result interface{}) error {
	start := time.Now()
	usage, err := g.client.CompleteJSON(ctx, prompt, result)

	if g.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		promptTokens, completionTokens := 0, 0
		if usage != nil {
			promptTokens = usage.PromptTokens
			completionTokens = usage.CompletionTokens
		}
		g.metrics.RecordModelRequest(g.client.Model(), purpose, status, time.Since(start), promptTokens, completionTokens)
	}

	return err
}

// GenerateUserProfile returns a fresh user profile for the given role
// (customer, admin, or vendor; anything else gets customer-shaped
// preferences). Never fails.
func (g *Generator) GenerateUserProfile(ctx context.Context, role string) UserProfile {
	if g.client != nil {
		var profile UserProfile
		err := g.completeJSON(ctx, "user_profile", userProfilePrompt(role), &profile)
		if err != nil {
			g.fallback("user_profile", err)
		} else if !profileComplete(profile) {
			g.logger.Warn("model returned incomplete user profile, using synthetic generation",
				zap.String("role", role))
			g.recordFallback("incomplete_payload")
		} else {
			g.normalizeProfile(&profile, role)
			g.logger.Info("generated user profile",
				zap.String("role", role),
				zap.String("strategy", strategyModel))
			g.record("user_profile", strategyModel)
			return profile
		}
	}

	profile := g.synth.userProfile(role)
	g.logger.Info("generated user profile",
		zap.String("role", role),
		zap.String("strategy", strategySynthetic))
	g.record("user_profile", strategySynthetic)
	return profile
}

// GenerateProductCatalog returns exactly count products in the given
// category. count <= 0 yields an empty catalog without touching either
// strategy. Model output is reconciled to the requested count and
// category before it is returned.
func (g *Generator) GenerateProductCatalog(ctx context.Context, category string, count int) []Product {
	if count <= 0 {
		return []Product{}
	}

	if g.client != nil {
		var products []Product
		err := g.completeJSON(ctx, "product_catalog", productCatalogPrompt(category, count), &products)
		if err != nil {
			g.fallback("product_catalog", err)
		} else {
			products = g.reconcileCatalog(products, category, count)
			g.logger.Info("generated product catalog",
				zap.String("category", category),
				zap.Int("count", len(products)),
				zap.String("strategy", strategyModel))
			g.record("product_catalog", strategyModel)
			return products
		}
	}

	products := g.synth.productCatalog(category, count)
	g.logger.Info("generated product catalog",
		zap.String("category", category),
		zap.Int("count", len(products)),
		zap.String("strategy", strategySynthetic))
	g.record("product_catalog", strategySynthetic)
	return products
}

// GenerateOrder builds an order for the given user from the given
// catalog. Purely local: no model involved. An empty catalog yields a
// valid order with no items and a zero subtotal.
func (g *Generator) GenerateOrder(user UserProfile, products []Product) Order {
	order := g.synth.order(user, products)
	g.logger.Info("generated order",
		zap.String("order_id", order.OrderID),
		zap.Int("items", len(order.Items)))
	g.record("order", strategySynthetic)
	return order
}

// GenerateSearchTerms returns min(count, vocabulary size) distinct
// search terms. Over-large counts are clamped, never rejected.
func (g *Generator) GenerateSearchTerms(count int) []string {
	terms := g.synth.searchTerms(count)
	g.logger.Info("generated search terms", zap.Int("count", len(terms)))
	g.record("search_terms", strategySynthetic)
	return terms
}

// GenerateTestScenarios asks the model to design test scenarios for a
// feature. There is no deterministic equivalent: without a model
// client, or on any model failure, the result is an empty list, which
// callers must treat as "scenario generation unavailable".
func (g *Generator) GenerateTestScenarios(ctx context.Context, feature string) []TestScenario {
	if g.client == nil {
		g.logger.Warn("model client not available for scenario generation",
			zap.String("feature", feature))
		return []TestScenario{}
	}

	var scenarios []TestScenario
	if err := g.completeJSON(ctx, "test_scenarios", testScenariosPrompt(feature), &scenarios); err != nil {
		g.fallback("test_scenarios", err)
		return []TestScenario{}
	}

	for i := range scenarios {
		switch scenarios[i].Priority {
		case "high", "medium", "low":
		default:
			scenarios[i].Priority = "medium"
		}
	}

	g.logger.Info("generated test scenarios",
		zap.String("feature", feature),
		zap.Int("count", len(scenarios)),
		zap.String("strategy", strategyModel))
	g.record("test_scenarios", strategyModel)
	return scenarios
}

// profileComplete checks the fields a test cannot do without.
func profileComplete(p UserProfile) bool {
	return p.FirstName != "" &&
		p.LastName != "" &&
		strings.Contains(p.Email, "@")
}

// normalizeProfile repairs model output that is usable but out of range.
func (g *Generator) normalizeProfile(p *UserProfile, role string) {
	if p.LoyaltyPoints < 0 {
		p.LoyaltyPoints = 0
	}
	if len(p.Preferences) == 0 {
		p.Preferences = g.synth.preferences(role)
	}
}

// reconcileCatalog forces model output to the requested shape: every
// product echoes the requested category, numeric fields land in range,
// overshoot is truncated, shortfall is filled synthetically.
func (g *Generator) reconcileCatalog(products []Product, category string, count int) []Product {
	if len(products) > count {
		products = products[:count]
	}

	for i := range products {
		p := &products[i]
		p.Category = category
		if p.Currency == "" {
			p.Currency = "USD"
		}
		if p.Price <= 0 {
			p.Price = round2(10 + g.synth.rng.Float64()*1990)
		}
		if p.StockQuantity < 0 {
			p.StockQuantity = 0
		}
		if p.Rating < 0 {
			p.Rating = 0
		}
		if p.Rating > 5 {
			p.Rating = 5
		}
		if p.SKU == "" {
			p.SKU = g.synth.product(category, i).SKU
		}
		p.Features = dedupeCap(p.Features, 4)
	}

	for len(products) < count {
		products = append(products, g.synth.product(category, len(products)))
	}

	return products
}

func dedupeCap(tags []string, max int) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == max {
			break
		}
	}
	return out
}

func (g *Generator) record(entity, strategy string) {
	if g.metrics != nil {
		g.metrics.RecordGeneration(entity, strategy)
	}
}

func (g *Generator) recordFallback(reason string) {
	if g.metrics != nil {
		g.metrics.RecordFallback(reason)
	}
}
