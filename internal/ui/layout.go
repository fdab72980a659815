package ui

// Form layout.
const (
	// labelWidth is the width of the field label column.
	labelWidth = 14

	// inputWidth is the visible width of the text fields.
	inputWidth = 48

	// maxListedFiles caps the selected-file list under the Images field.
	maxListedFiles = 6

	// statusMinHeight is the smallest status region height.
	statusMinHeight = 4
)

// Log view.
const (
	// LogTailLines is the number of log lines loaded into the log view.
	LogTailLines = 500
)

// Allowed image extensions in the file picker.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".heic", ".heif", ".JPG", ".JPEG", ".PNG", ".HEIC", ".HEIF"}
