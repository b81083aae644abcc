package constants

import "time"

// Outcome represents what the user reports at a check-in
type Outcome string

// Technique represents a micro-intervention technique chosen by the advisor
type Technique string

// Pattern represents the barrier pattern identified by the advisor
type Pattern string

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	AppName            = "unstick"
	DefaultKeyringUser = "advisor-api-key"
	DefaultConfigPath  = "~/.config/unstick/unstick.db"
	Version            = "v0.3.0"

	// TimestampFormat is the wire format for timestamps (RFC3339, UTC)
	TimestampFormat = time.RFC3339

	// Check-in window policy bounds (minutes)
	DefaultCheckinMinutes = 15
	MinCheckinMinutes     = 15
	MaxCheckinMinutes     = 120

	// Advisor constants
	AdvisorMaxRetries   = 3
	AdvisorRetryDelay   = time.Second
	AdvisorDefaultModel = "gpt-4o-mini"
	AdvisorEndpoint     = "https://api.openai.com/v1/chat/completions"
	AdvisorAPIKeyEnv    = "UNSTICK_OPENAI_API_KEY"

	// Notify constants
	NotifierLockfileName   = "unstick-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.unstick"

	// Dashboard constants
	RecentSessionLimit = 5

	// Outcome constants
	OutcomeStartedKeptGoing Outcome = "started_kept_going"
	OutcomeStartedStopped   Outcome = "started_stopped"
	OutcomeDidNotStart      Outcome = "did_not_start"
	OutcomeStillWorking     Outcome = "still_working"

	// Technique constants. The advisor is not bound to this set; unknown
	// techniques are stored as-is and resolve to an empty hint.
	TechniquePermissionProtocol Technique = "permission_protocol"
	TechniqueSingleNextAction   Technique = "single_next_action"
	TechniqueChoiceElimination  Technique = "choice_elimination"
	TechniqueOneMinuteEntry     Technique = "one_minute_entry"

	// Pattern constants
	PatternPerfectionism   Pattern = "perfectionism"
	PatternOverwhelm       Pattern = "overwhelm"
	PatternDecisionFatigue Pattern = "decision_fatigue"
	PatternAnxietyDread    Pattern = "anxiety_dread"

	// Task status constants
	TaskStatusActive    TaskStatus = "active"
	TaskStatusDone      TaskStatus = "done"
	TaskStatusAbandoned TaskStatus = "abandoned"
)
