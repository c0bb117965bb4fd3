package domain

import "fmt"

// EngineError is the unified error type for the pipeline.
// Each error has a numeric code and human-readable message.
type EngineError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error %d: %s", e.Code, e.Message)
}

// NewEngineError creates a new EngineError.
func NewEngineError(code int, msg string) *EngineError {
	return &EngineError{Code: code, Message: msg}
}

// WrapEngineError creates an EngineError that includes a cause.
func WrapEngineError(code int, msg string, cause error) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf("%s: %v", msg, cause)}
}

// ---- State machine / orchestrator errors (-32010 to -32039) ----

var (
	ErrInvalidTransition  = &EngineError{Code: -32010, Message: "invalid client state transition"}
	ErrTerminalState      = &EngineError{Code: -32011, Message: "client is in a terminal state"}
	ErrClientNotFound     = &EngineError{Code: -32012, Message: "client not found"}
	ErrAssessmentNotFound = &EngineError{Code: -32013, Message: "assessment not found"}
	ErrStageOutOfOrder    = &EngineError{Code: -32014, Message: "pipeline stage invoked out of order"}
	ErrDuplicateClient    = &EngineError{Code: -32015, Message: "client already exists"}
	ErrPlanNotFound       = &EngineError{Code: -32016, Message: "meal plan not found"}
)

// ---- Contract errors (-32040 to -32069) ----

var (
	ErrContractViolated = &EngineError{Code: -32040, Message: "contract validation failed"}
)

// ---- Knowledge base lookup errors (-32070 to -32099) ----
// A lookup miss is a data-quality defect: it is surfaced to the caller
// rather than silently defaulted, except where a fallback is documented
// (e.g. a food's missing serving size).

var (
	ErrConditionNotFound = &EngineError{Code: -32070, Message: "condition rule not found in knowledge base"}
	ErrMNTRuleNotFound   = &EngineError{Code: -32071, Message: "MNT rule not found in knowledge base"}
	ErrFoodNotFound      = &EngineError{Code: -32072, Message: "food record not found in knowledge base"}
	ErrStandardNotFound  = &EngineError{Code: -32073, Message: "exchange standard not found in knowledge base"}
	ErrDoshaNotFound     = &EngineError{Code: -32074, Message: "dosha profile not found in knowledge base"}
)

// ---- Engine input errors (-32100 to -32129) ----

var (
	ErrNoDiagnoses    = &EngineError{Code: -32100, Message: "no active diagnoses to process"}
	ErrNoMeals        = &EngineError{Code: -32101, Message: "meal structure has no meals"}
	ErrNoRankedFoods  = &EngineError{Code: -32102, Message: "no ranked foods available for allocation"}
	ErrBadTimeFormat  = &EngineError{Code: -32103, Message: "time value is not in HH:MM format"}
	ErrTimingOverlap  = &EngineError{Code: -32104, Message: "meal timing windows overlap"}
	ErrDinnerTooLate  = &EngineError{Code: -32105, Message: "dinner window ends too close to sleep"}
	ErrWeightsInvalid = &EngineError{Code: -32106, Message: "energy weights do not sum to 1.0"}
	ErrWindowTooShort = &EngineError{Code: -32107, Message: "eating window too short for the meal count"}
)

// ---- Store / config errors (-32130 to -32159) ----

var (
	ErrStoreInit       = &EngineError{Code: -32130, Message: "failed to initialize store"}
	ErrStoreQuery      = &EngineError{Code: -32131, Message: "store query failed"}
	ErrStoreWrite      = &EngineError{Code: -32132, Message: "store write failed"}
	ErrSchemaMigration = &EngineError{Code: -32133, Message: "schema migration failed"}
	ErrOptimisticLock  = &EngineError{Code: -32134, Message: "state was modified concurrently"}
	ErrConfigInvalid   = &EngineError{Code: -32136, Message: "invalid configuration"}
)
