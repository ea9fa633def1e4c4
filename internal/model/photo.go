package model

import "time"

// PhotoStatus tracks a photo through the analysis pipeline.
type PhotoStatus string

// Photo status constants.
const (
	PhotoUploaded   PhotoStatus = "uploaded"
	PhotoProcessing PhotoStatus = "processing"
	PhotoDone       PhotoStatus = "done"
	PhotoError      PhotoStatus = "error"
)

// Photo represents one uploaded meal photo. OCRText is whatever package
// text the vision model could read from it, kept for pattern evaluation.
type Photo struct {
	TakenAt     time.Time
	CreatedAt   time.Time
	ID          string
	UserID      string
	StoragePath string
	OCRText     string
	Status      PhotoStatus
}

// PhotoItem is one classified detection persisted against a photo. Date is
// the photo's UTC calendar day and is what the day aggregator keys on.
type PhotoItem struct {
	CreatedAt  time.Time
	PhotoID    string
	UserID     string
	RawLabel   string
	Category   Category
	Date       Day
	ID         int64
	Confidence float64
	Packaged   bool
}
