package tracker

import (
	"fmt"
	"time"
)

// EquipmentType identifies the kind of ICT device.
type EquipmentType string

const (
	TypeLaptop    EquipmentType = "laptop"
	TypeDesktop   EquipmentType = "desktop"
	TypeTablet    EquipmentType = "tablet"
	TypePrinter   EquipmentType = "printer"
	TypeScanner   EquipmentType = "scanner"
	TypeMonitor   EquipmentType = "monitor"
	TypeRouter    EquipmentType = "router"
	TypeServer    EquipmentType = "server"
	TypePhone     EquipmentType = "phone"
	TypeProjector EquipmentType = "projector"
	TypeOtherKind EquipmentType = "other"
)

// EquipmentTypeValues lists equipment types in display order.
func EquipmentTypeValues() []EquipmentType {
	return []EquipmentType{
		TypeLaptop,
		TypeDesktop,
		TypeTablet,
		TypePrinter,
		TypeScanner,
		TypeMonitor,
		TypeRouter,
		TypeServer,
		TypePhone,
		TypeProjector,
		TypeOtherKind,
	}
}

// Label returns the display label for an equipment type.
func (t EquipmentType) Label() string {
	switch t {
	case TypeLaptop:
		return "Laptop"
	case TypeDesktop:
		return "Desktop Computer"
	case TypeTablet:
		return "Tablet"
	case TypePrinter:
		return "Printer"
	case TypeScanner:
		return "Scanner"
	case TypeMonitor:
		return "Monitor"
	case TypeRouter:
		return "Router/Switch"
	case TypeServer:
		return "Server"
	case TypePhone:
		return "Phone/Handset"
	case TypeProjector:
		return "Projector"
	case TypeOtherKind:
		return "Other"
	}
	return string(t)
}

// ParseEquipmentType validates a stored equipment type code.
func ParseEquipmentType(value string) (EquipmentType, error) {
	for _, kind := range EquipmentTypeValues() {
		if string(kind) == value {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown equipment type %q", value)
}

// EquipmentStatus is the availability state of a device.
type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentAssigned  EquipmentStatus = "assigned"
	EquipmentInRepair  EquipmentStatus = "in_repair"
	EquipmentRetired   EquipmentStatus = "retired"
)

// EquipmentStatusValues lists equipment statuses in display order.
func EquipmentStatusValues() []EquipmentStatus {
	return []EquipmentStatus{EquipmentAvailable, EquipmentAssigned, EquipmentInRepair, EquipmentRetired}
}

// Label returns the display label for an equipment status.
func (s EquipmentStatus) Label() string {
	switch s {
	case EquipmentAvailable:
		return "Available"
	case EquipmentAssigned:
		return "Assigned"
	case EquipmentInRepair:
		return "In Repair"
	case EquipmentRetired:
		return "Retired"
	}
	return string(s)
}

// ParseEquipmentStatus validates a stored equipment status code.
func ParseEquipmentStatus(value string) (EquipmentStatus, error) {
	for _, status := range EquipmentStatusValues() {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown equipment status %q", value)
}

// EquipmentCondition grades the physical state of a device.
type EquipmentCondition string

const (
	ConditionExcellent      EquipmentCondition = "excellent"
	ConditionGood           EquipmentCondition = "good"
	ConditionFair           EquipmentCondition = "fair"
	ConditionPoor           EquipmentCondition = "poor"
	ConditionNeedsRepair    EquipmentCondition = "needs_repair"
	ConditionDecommissioned EquipmentCondition = "decommissioned"
)

// EquipmentConditionValues lists conditions from best to worst.
func EquipmentConditionValues() []EquipmentCondition {
	return []EquipmentCondition{
		ConditionExcellent,
		ConditionGood,
		ConditionFair,
		ConditionPoor,
		ConditionNeedsRepair,
		ConditionDecommissioned,
	}
}

// Label returns the display label for an equipment condition.
func (c EquipmentCondition) Label() string {
	switch c {
	case ConditionExcellent:
		return "Excellent"
	case ConditionGood:
		return "Good"
	case ConditionFair:
		return "Fair"
	case ConditionPoor:
		return "Poor"
	case ConditionNeedsRepair:
		return "Needs Repair"
	case ConditionDecommissioned:
		return "Decommissioned"
	}
	return string(c)
}

// ParseEquipmentCondition validates a stored condition code.
func ParseEquipmentCondition(value string) (EquipmentCondition, error) {
	for _, condition := range EquipmentConditionValues() {
		if string(condition) == value {
			return condition, nil
		}
	}
	return "", fmt.Errorf("unknown equipment condition %q", value)
}

// Equipment is an ICT device tracked by the office.
type Equipment struct {
	ID           string
	Type         EquipmentType
	Brand        string
	Model        string
	SerialNumber string
	AssetTag     string

	Condition EquipmentCondition
	Status    EquipmentStatus

	Specifications string
	Notes          string

	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns a human-readable identifier for a device.
func (e Equipment) DisplayName() string {
	return e.Type.Label() + " - " + e.Brand + " " + e.Model + " (" + e.SerialNumber + ")"
}

// Directorate is an organizational unit devices are assigned to.
type Directorate struct {
	ID          string
	Name        string
	Code        string
	Description string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeviceAssignment links a device to a directorate and optionally an officer.
type DeviceAssignment struct {
	ID            string
	EquipmentID   string
	DirectorateID *string
	AssignedTo    *string
	RoomNumber    string

	IssuedBy     *string
	AssignedDate time.Time
	ReturnDate   *time.Time
	Active       bool

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeviceHistoryAction records what happened to a device.
type DeviceHistoryAction string

const (
	ActionAssigned DeviceHistoryAction = "assigned"
	ActionReturned DeviceHistoryAction = "returned"
	ActionRepaired DeviceHistoryAction = "repaired"
)

// DeviceHistory is an append-only log entry of device movement.
type DeviceHistory struct {
	ID           string
	EquipmentID  string
	AssignmentID *string
	Action       DeviceHistoryAction

	FromDirectorate *string
	ToDirectorate   *string
	FromRoom        string
	ToRoom          string

	PerformedBy *string
	Notes       string
	Timestamp   time.Time
}

// IssueSeverity ranks how badly a device issue affects work.
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

// IssueSeverityValues lists severities from lowest to highest.
func IssueSeverityValues() []IssueSeverity {
	return []IssueSeverity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Label returns the display label for an issue severity.
func (s IssueSeverity) Label() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	}
	return string(s)
}

// ParseIssueSeverity validates a stored severity code.
func ParseIssueSeverity(value string) (IssueSeverity, error) {
	for _, severity := range IssueSeverityValues() {
		if string(severity) == value {
			return severity, nil
		}
	}
	return "", fmt.Errorf("unknown issue severity %q", value)
}

// IssueStatus is the lifecycle state of a device issue.
type IssueStatus string

const (
	IssueReported   IssueStatus = "reported"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
)

// IssueStatusValues lists issue statuses in display order.
func IssueStatusValues() []IssueStatus {
	return []IssueStatus{IssueReported, IssueInProgress, IssueResolved, IssueClosed}
}

// Label returns the display label for an issue status.
func (s IssueStatus) Label() string {
	switch s {
	case IssueReported:
		return "Reported"
	case IssueInProgress:
		return "In Progress"
	case IssueResolved:
		return "Resolved"
	case IssueClosed:
		return "Closed"
	}
	return string(s)
}

// ParseIssueStatus validates a stored issue status code.
func ParseIssueStatus(value string) (IssueStatus, error) {
	for _, status := range IssueStatusValues() {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown issue status %q", value)
}

// DeviceIssue is a reported problem with a device.
type DeviceIssue struct {
	ID           string
	EquipmentID  string
	AssignmentID *string

	Title       string
	Description string
	Severity    IssueSeverity
	Status      IssueStatus

	ReportedBy *string
	ReportedAt time.Time

	ResolvedBy      *string
	ResolvedAt      *time.Time
	ResolutionNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the issue still needs attention.
func (i DeviceIssue) Open() bool {
	return i.Status == IssueReported || i.Status == IssueInProgress
}
