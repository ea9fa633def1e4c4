package model

// RawDetection is one food item as reported by the vision collaborator.
// Produced externally and never mutated by the pipeline.
type RawDetection struct {
	RawLabel     string  `json:"raw_label"`
	TaxonomyHint string  `json:"taxonomy_category,omitempty"`
	OCRText      string  `json:"ocr_text,omitempty"`
	Confidence   float64 `json:"confidence"`
	Packaged     bool    `json:"packaged"`
}

// ClassifiedItem is a detection with its resolved taxonomy category.
// Immutable once created.
type ClassifiedItem struct {
	Detection RawDetection
	Category  Category
}

// VisionOutput is the full result of analyzing one photo: the detected
// items plus any package text the model could read.
type VisionOutput struct {
	PhotoID string         `json:"photo_id"`
	OCRText string         `json:"ocr_text,omitempty"`
	Items   []RawDetection `json:"items"`
}
