package analyze

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dateguard/catfish/internal/oracle"
	"github.com/dateguard/catfish/internal/schema"
)

// AnalyzeText scores a chat excerpt for AI authorship and scam risk.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, userNotes string) (*schema.TextAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Msg: "text must not be empty"}
	}

	if a.mode == ModeMock {
		return mockText(), nil
	}

	v, err := a.completeJSON(ctx, []oracle.Message{
		oracle.TextMessage("system", systemPrompt),
		oracle.TextMessage("user", textPrompt(text, userNotes)),
	})
	if err != nil {
		return nil, err
	}

	res, err := schema.ValidateText(v)
	if err != nil {
		return nil, err
	}

	a.logger.Info("text analysis complete",
		zap.Int("ai_score", res.AIScore),
		zap.Int("risk_score", res.RiskScore),
		zap.String("category", res.Category))
	return res, nil
}
