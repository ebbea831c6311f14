package constants

// Deployment lifecycle
const (
	DeploymentPlanning   = "planning"
	DeploymentInProgress = "in_progress"
	DeploymentCompleted  = "completed"
	DeploymentBlocked    = "blocked"
)

// Task lifecycle (separate, smaller cycle than deployments)
const (
	TaskNotStarted = "not_started"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskBlocked    = "blocked"
)

// Task priorities, ordered most to least urgent
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Comment importance levels
const (
	ImportanceInfo     = "info"
	ImportanceWarning  = "warning"
	ImportanceCritical = "critical"
)

// WAN link lifecycle
const (
	WANOrdered  = "ordered"
	WANActive   = "active"
	WANCanceled = "canceled"
	WANInactive = "inactive"
)

// WAN link types
var WANLinkTypes = []string{"FTTO", "FTTH", "Starlink", "ADSL", "VDSL", "OTHER"}

// Document modules (which site sub-area owns the document)
const (
	ModuleWifi            = "wifi"
	ModuleWAN             = "wan"
	ModuleParticularities = "particularities"
)

// Group event actions
const (
	EventCreated     = "created"
	EventUpdated     = "updated"
	EventUserAdded   = "user_added"
	EventUserRemoved = "user_removed"
)

// Site event actions
const (
	EventDocumentAdded          = "document_added"
	EventDocumentDeleted        = "document_deleted"
	EventWANUpdated             = "wan_updated"
	EventExternalToolAdded      = "external_tool_added"
	EventExternalToolUpdated    = "external_tool_updated"
	EventExternalToolDeleted    = "external_tool_deleted"
	EventWifiDeploymentCreated  = "wifi_deployment_created"
	EventWifiDeploymentUpdated  = "wifi_deployment_updated"
	EventWifiDeploymentArchived = "wifi_deployment_archived"
	EventWifiDeploymentDeleted  = "wifi_deployment_deleted"
)
