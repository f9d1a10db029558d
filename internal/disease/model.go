package disease

// Diagnosis is what the upload endpoint returns.
type Diagnosis struct {
	Crop       string `json:"crop"`
	Status     string `json:"status"`
	Confidence string `json:"confidence"`
	ImageURL   string `json:"image_url,omitempty"`
}

const (
	unknownCrop      = "Unknown"
	statusNotLoaded  = "Model not loaded"
	statusError      = "Error"
	zeroConfidence   = "0%"
	labelSeparator   = "___"
	maxUploadBytes   = 10 << 20
	uploadKeyPrefix  = "scans/"
	defaultImageMIME = "application/octet-stream"
)

func notLoaded() Diagnosis {
	return Diagnosis{Crop: unknownCrop, Status: statusNotLoaded, Confidence: zeroConfidence}
}

func failed() Diagnosis {
	return Diagnosis{Crop: unknownCrop, Status: statusError, Confidence: zeroConfidence}
}
