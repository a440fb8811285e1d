package models

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus tracks the lifecycle of one import run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusPartial   RunStatus = "PARTIAL"
	RunStatusFailed    RunStatus = "FAILED"
)

// ImportRun is the persisted record of one reconciliation run. The pipeline
// itself holds no state across runs; this table exists only as operational
// history for the summary counts each run reports.
type ImportRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FileName  string    `gorm:"type:varchar(500)" json:"fileName"`
	BrandName string    `gorm:"type:varchar(255)" json:"brandName"`
	OutletID  string    `gorm:"type:varchar(255)" json:"outletId"`
	DryRun    bool      `gorm:"default:false" json:"dryRun"`
	Status    RunStatus `gorm:"type:varchar(50);default:'RUNNING'" json:"status"`

	// Counts
	TotalLines     int `json:"totalLines"`
	MatchedLines   int `json:"matchedLines"`
	MissingLines   int `json:"missingLines"`
	CreatedCount   int `json:"createdCount"`
	CreateFailures int `json:"createFailures"`
	LinesRequested int `json:"linesRequested"`
	LinesAdded     int `json:"linesAdded"`
	LinesFailed    int `json:"linesFailed"`

	StockOrderID string `gorm:"type:varchar(255)" json:"stockOrderId,omitempty"`
	ErrorMessage string `gorm:"type:text" json:"errorMessage,omitempty"`

	StartedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Errors []ImportRunError `gorm:"foreignKey:RunID" json:"errors,omitempty"`
}

// TableName specifies the table name
func (ImportRun) TableName() string {
	return "stock_order_import_runs"
}

// ImportRunError is a persisted per-line failure from an import run
type ImportRunError struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RunID     uuid.UUID `gorm:"type:uuid;not null;index" json:"runId"`
	Row       int       `json:"row,omitempty"`
	SKU       string    `gorm:"type:varchar(255)" json:"sku,omitempty"`
	ProductID string    `gorm:"type:varchar(255)" json:"productId,omitempty"`
	Code      string    `gorm:"type:varchar(50);not null" json:"code"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName specifies the table name
func (ImportRunError) TableName() string {
	return "stock_order_import_run_errors"
}

// ImportSummary is the user-facing result of one run: a set of counts rather
// than a single pass/fail signal. Completed is true iff the stock-order shell
// was created (or simulated); partial line failures do not flip it.
type ImportSummary struct {
	RunID          uuid.UUID   `json:"runId"`
	DryRun         bool        `json:"dryRun"`
	BrandName      string      `json:"brandName"`
	TotalLines     int         `json:"totalLines"`
	MatchedLines   int         `json:"matchedLines"`
	MissingLines   int         `json:"missingLines"`
	CreatedCount   int         `json:"createdCount"`
	CreateFailures int         `json:"createFailures"`
	StockOrderID   string      `json:"stockOrderId,omitempty"`
	LinesRequested int         `json:"linesRequested"`
	LinesAdded     int         `json:"linesAdded"`
	LinesFailed    int         `json:"linesFailed"`
	Completed      bool        `json:"completed"`
	Errors         []LineError `json:"errors,omitempty"`
}

// ErrorResponse is the common error envelope returned by the API
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Error carries a machine-readable code alongside the human-readable message
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// SuccessResponse is the common success envelope returned by the API
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
