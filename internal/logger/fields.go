package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldUser is the structured log field key for the match subject.
	FieldUser = "user_id"
	// FieldCandidate is the structured log field key for the scored candidate.
	FieldCandidate = "candidate_id"
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields,
// trimming whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger falls back to a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PairFields returns the standard fields identifying one scored pair.
// Empty values are dropped to keep entries compact.
func PairFields(userID, candidateID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldUser, Value: userID},
		StringField{Key: FieldCandidate, Value: candidateID},
	)
}

// WithPairFields attaches the pair fields to the provided logger.
func WithPairFields(logger *zap.Logger, userID, candidateID string) *zap.Logger {
	return WithFields(logger, PairFields(userID, candidateID)...)
}
