package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AILog records one call to the writing assistant's language model.
type AILog struct {
	ID           uuid.UUID      `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Feature      string         `json:"feature" db:"feature" gorm:"column:feature;type:text;not null;index:idx_ai_logs_feature"`
	ModelName    string         `json:"model_name" db:"model_name" gorm:"column:model_name;type:text;not null"`
	Temperature  float64        `json:"temperature" db:"temperature" gorm:"column:temperature;type:double precision;not null"`
	InputPrompt  string         `json:"input_prompt" db:"input_prompt" gorm:"column:input_prompt;type:text;not null"`
	Output       string         `json:"output" db:"output" gorm:"column:output;type:text"`
	Parsed       datatypes.JSON `json:"parsed" db:"parsed" gorm:"column:parsed;type:jsonb"`
	DurationMs   int64          `json:"duration_ms" db:"duration_ms" gorm:"column:duration_ms;type:bigint;not null"`
	ErrorMessage *string        `json:"error_message,omitempty" db:"error_message" gorm:"column:error_message;type:text"`
	RequestedBy  string         `json:"requested_by" db:"requested_by" gorm:"column:requested_by;type:text"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (AILog) TableName() string {
	return "ai_logs"
}
