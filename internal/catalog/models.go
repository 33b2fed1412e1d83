package catalog

import "time"

// Device is a physical capture device identified by its metadata model string
// and given a user-assigned short name during first-seen classification.
type Device struct {
	ID          int64
	Model       string
	ShortName   string
	Make        string
	Description string
	CreatedAt   time.Time
}

// Entry is one cataloged media file.
type Entry struct {
	ID               int64
	OriginalFilename string
	CanonicalPath    string
	Fingerprint      string
	SizeBytes        int64
	CaptureTimestamp time.Time
	DeviceID         int64
	CreatedAt        time.Time
}

// EntryWithDevice joins an entry with its device for display and verification.
type EntryWithDevice struct {
	Entry
	Device Device
}

// RunStatus captures the lifecycle of an ingest run record.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run records provenance for one ingestion pass over a source tree.
type Run struct {
	ID             string
	Root           string
	Status         RunStatus
	StartedAt      time.Time
	FinishedAt     *time.Time
	FilesSeen      int64
	FilesSkipped   int64
	Duplicates     int64
	FilesCopied    int64
	FilesCataloged int64
	ErrorMessage   string
}

// DestinationSetting is the settings key holding the destination root.
const DestinationSetting = "destination"

// captureTimeLayout stores capture timestamps as naive local wall-clock
// values. Source metadata carries no timezone and none is invented.
const captureTimeLayout = "2006-01-02 15:04:05"
