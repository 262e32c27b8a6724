// Package seed fills a tracker database with sample data for local
// development.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mofahq/tasktracker/internal/platform/config"
	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/services/web/storage/sqlite"
	"github.com/mofahq/tasktracker/internal/tracker"
)

// Config holds the seed command configuration.
type Config struct {
	DBPath string `env:"TASKTRACKER_DB_PATH" envDefault:"tracker.db"`
}

// ParseConfig loads configuration from the environment and then applies
// flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run seeds the database at cfg.DBPath. Records use fixed identifiers so
// repeated runs update the same rows instead of duplicating them.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	now := time.Now().UTC()

	directorates := sampleDirectorates(now)
	for _, directorate := range directorates {
		if err := store.PutDirectorate(ctx, directorate); err != nil {
			return fmt.Errorf("seed directorate %s: %w", directorate.Code, err)
		}
	}
	users := sampleUsers(now)
	for _, user := range users {
		if err := store.PutUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
	}
	// Existing devices are left alone so a rerun does not clobber the
	// status AssignDevice maintains.
	equipment := sampleEquipment(now)
	for _, device := range equipment {
		if _, err := store.GetEquipment(ctx, device.ID); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("check equipment %s: %w", device.SerialNumber, err)
		}
		if err := store.PutEquipment(ctx, device); err != nil {
			return fmt.Errorf("seed equipment %s: %w", device.SerialNumber, err)
		}
	}
	tasks := sampleTasks(now)
	for _, task := range tasks {
		if err := store.PutTask(ctx, task); err != nil {
			return fmt.Errorf("seed task %s: %w", task.ID, err)
		}
	}
	issues := sampleIssues(now)
	for _, issue := range issues {
		if err := store.PutIssue(ctx, issue); err != nil {
			return fmt.Errorf("seed issue %s: %w", issue.ID, err)
		}
	}

	existing, err := store.ListAssignments(ctx, "seed-laptop-1")
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}
	assignment := tracker.DeviceAssignment{
		ID:            "seed-assignment-1",
		EquipmentID:   "seed-laptop-1",
		DirectorateID: ptr("seed-dir-consular"),
		AssignedTo:    ptr("seed-user-amara"),
		RoomNumber:    "210",
		IssuedBy:      ptr("seed-user-kofi"),
		AssignedDate:  now.AddDate(0, 0, -14),
		Active:        true,
		CreatedAt:     now.AddDate(0, 0, -14),
		UpdatedAt:     now.AddDate(0, 0, -14),
	}
	if len(existing) == 0 {
		if err := store.AssignDevice(ctx, assignment); err != nil {
			return fmt.Errorf("seed assignment: %w", err)
		}
	}

	fmt.Fprintf(out, "seeded %d directorates, %d users, %d devices, %d tasks, %d issues\n",
		len(directorates), len(users), len(equipment), len(tasks), len(issues))
	return nil
}

func sampleDirectorates(now time.Time) []tracker.Directorate {
	return []tracker.Directorate{
		{
			ID: "seed-dir-consular", Name: "Consular Affairs", Code: "CON",
			Description: "Visa and citizen services", Location: "Second floor, east wing",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "seed-dir-protocol", Name: "Protocol", Code: "PRO",
			Description: "State visits and ceremonies", Location: "Ground floor",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "seed-dir-it", Name: "Information Technology", Code: "IT",
			Description: "Infrastructure and support", Location: "Basement, server room",
			CreatedAt: now, UpdatedAt: now,
		},
	}
}

func sampleUsers(now time.Time) []tracker.User {
	joined := now.AddDate(-2, 0, 0)
	return []tracker.User{
		{
			ID: "seed-user-kofi", Username: "kofi", FirstName: "Kofi", LastName: "Asante",
			Email: "kofi@example.org", Department: tracker.DeptIT, PhoneNumber: "+233201000001",
			IsStaff: true, IsActive: true, DateJoined: joined,
		},
		{
			ID: "seed-user-amara", Username: "amara", FirstName: "Amara", LastName: "Mensah",
			Email: "amara@example.org", Department: tracker.DeptConsular, PhoneNumber: "+233201000002",
			IsActive: true, DateJoined: joined.AddDate(0, 6, 0),
		},
		{
			ID: "seed-user-yaw", Username: "yaw", FirstName: "Yaw", LastName: "Owusu",
			Email: "yaw@example.org", Department: tracker.DeptProtocol,
			IsActive: true, DateJoined: joined.AddDate(1, 0, 0),
		},
		{
			ID: "seed-user-efua", Username: "efua", FirstName: "Efua", LastName: "Boateng",
			Email: "efua@example.org", Department: tracker.DeptAdmin,
			IsSuperuser: true, IsStaff: true, IsActive: true, DateJoined: joined,
		},
	}
}

func sampleEquipment(now time.Time) []tracker.Equipment {
	return []tracker.Equipment{
		{
			ID: "seed-laptop-1", Type: tracker.TypeLaptop, Brand: "Dell", Model: "Latitude 5440",
			SerialNumber: "DL-5440-001", AssetTag: "MOFA-0001",
			Condition: tracker.ConditionGood, Status: tracker.EquipmentAvailable,
			Specifications: "i7, 16GB RAM, 512GB SSD",
			CreatedBy:      ptr("seed-user-kofi"),
			CreatedAt:      now.AddDate(0, -8, 0), UpdatedAt: now.AddDate(0, -8, 0),
		},
		{
			ID: "seed-printer-1", Type: tracker.TypePrinter, Brand: "HP", Model: "LaserJet M428",
			SerialNumber: "HP-M428-002", AssetTag: "MOFA-0002",
			Condition: tracker.ConditionFair, Status: tracker.EquipmentAvailable,
			Notes:     "Shared between consular counters",
			CreatedAt: now.AddDate(0, -6, 0), UpdatedAt: now.AddDate(0, -6, 0),
		},
		{
			ID: "seed-router-1", Type: tracker.TypeRouter, Brand: "Cisco", Model: "C9200",
			SerialNumber: "CS-9200-003", AssetTag: "MOFA-0003",
			Condition: tracker.ConditionGood, Status: tracker.EquipmentAvailable,
			CreatedAt: now.AddDate(-1, 0, 0), UpdatedAt: now.AddDate(-1, 0, 0),
		},
	}
}

func sampleTasks(now time.Time) []tracker.Task {
	completedAt := now.AddDate(0, 0, -2)
	overdueSince := now.AddDate(0, 0, -5)
	dueSoon := now.AddDate(0, 0, 3)
	return []tracker.Task{
		{
			ID: "seed-task-1", Title: "Prepare visa statistics for quarterly review",
			Description: "Summarize applications processed per counter.",
			Category:    tracker.CategoryConsular, Priority: tracker.PriorityHigh,
			Status:    tracker.TaskInProgress,
			CreatedBy: "seed-user-efua", AssignedTo: ptr("seed-user-amara"),
			DueDate:   &dueSoon,
			CreatedAt: now.AddDate(0, 0, -7), UpdatedAt: now.AddDate(0, 0, -1),
		},
		{
			ID: "seed-task-2", Title: "Replace toner in consular printer",
			Category: tracker.CategoryIT, Priority: tracker.PriorityLow,
			Status:    tracker.TaskCompleted,
			CreatedBy: "seed-user-amara", AssignedTo: ptr("seed-user-kofi"),
			DateCompleted: &completedAt,
			RoomNumber:    "210",
			CreatedAt:     now.AddDate(0, 0, -4), UpdatedAt: completedAt,
		},
		{
			ID: "seed-task-3", Title: "Arrange motorcade for trade delegation",
			Category: tracker.CategoryProtocol, Priority: tracker.PriorityUrgent,
			Status:    tracker.TaskPending,
			CreatedBy: "seed-user-efua", AssignedTo: ptr("seed-user-yaw"),
			DueDate:   &overdueSince,
			IsUrgent:  true,
			CreatedAt: now.AddDate(0, 0, -10), UpdatedAt: now.AddDate(0, 0, -10),
		},
		{
			ID: "seed-task-4", Title: "Audit server room access log",
			Category: tracker.CategorySecurity, Priority: tracker.PriorityMedium,
			Status:    tracker.TaskPending,
			CreatedBy: "seed-user-kofi",
			CreatedAt: now.AddDate(0, 0, -1), UpdatedAt: now.AddDate(0, 0, -1),
		},
	}
}

func sampleIssues(now time.Time) []tracker.DeviceIssue {
	return []tracker.DeviceIssue{
		{
			ID: "seed-issue-1", EquipmentID: "seed-router-1",
			Title: "Network drops every morning", Severity: tracker.SeverityHigh,
			Status:     tracker.IssueReported,
			ReportedBy: ptr("seed-user-amara"), ReportedAt: now.AddDate(0, 0, -6),
			CreatedAt: now.AddDate(0, 0, -6), UpdatedAt: now.AddDate(0, 0, -6),
		},
		{
			ID: "seed-issue-2", EquipmentID: "seed-router-1",
			Title: "Network latency spikes on floor two", Severity: tracker.SeverityMedium,
			Status:     tracker.IssueInProgress,
			ReportedBy: ptr("seed-user-yaw"), ReportedAt: now.AddDate(0, 0, -3),
			CreatedAt: now.AddDate(0, 0, -3), UpdatedAt: now.AddDate(0, 0, -2),
		},
		{
			ID: "seed-issue-3", EquipmentID: "seed-printer-1",
			Title: "Paper jam in tray two", Severity: tracker.SeverityLow,
			Status:     tracker.IssueResolved,
			ReportedBy: ptr("seed-user-amara"), ReportedAt: now.AddDate(0, 0, -9),
			ResolvedBy: ptr("seed-user-kofi"), ResolvedAt: ptrTime(now.AddDate(0, 0, -8)),
			ResolutionNotes: "Cleared jam and cleaned rollers",
			CreatedAt:       now.AddDate(0, 0, -9), UpdatedAt: now.AddDate(0, 0, -8),
		},
	}
}

func ptr(value string) *string { return &value }

func ptrTime(value time.Time) *time.Time { return &value }
