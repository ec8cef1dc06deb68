package fitness

import (
	"context"
	"log/slog"

	apperrors "github.com/yanqian/fitcheck/pkg/errors"
)

// Service exposes the fitness comparison capabilities.
type Service interface {
	Analyze(ctx context.Context, req Request) (Report, error)
	Reference(gender string, age Value) ReferenceCell
	Usage(ctx context.Context) ([]UsageCount, error)
}

// UsageRepository stores aggregate report counters.
type UsageRepository interface {
	Increment(ctx context.Context, key UsageKey) error
	List(ctx context.Context) ([]UsageCount, error)
}

type service struct {
	usage  UsageRepository
	logger *slog.Logger
}

// NewService wires up the fitness domain.
func NewService(usage UsageRepository, logger *slog.Logger) Service {
	return &service{
		usage:  usage,
		logger: logger.With("component", "fitness.service"),
	}
}

func (s *service) Analyze(ctx context.Context, req Request) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, apperrors.Wrap(apperrors.CodeCanceled, "request canceled", err)
	}

	report := BuildReport(req)
	s.logger.Debug("report built",
		"mode", report.Mode,
		"gender", report.Reference.Gender,
		"bracket", report.Bracket,
		"missing_data", report.MissingData,
		"bmi", report.BMIInfo != nil,
	)

	key := UsageKey{Mode: report.Mode, Gender: report.Reference.Gender, Bracket: report.Reference.Bracket}
	if err := s.usage.Increment(ctx, key); err != nil {
		s.logger.Warn("usage increment failed", "error", err)
	}
	return report, nil
}

func (s *service) Reference(gender string, age Value) ReferenceCell {
	return LookupReference(gender, ResolveBracket(age))
}

func (s *service) Usage(ctx context.Context) ([]UsageCount, error) {
	counts, err := s.usage.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUsage, "failed to load usage counters", err)
	}
	return counts, nil
}
