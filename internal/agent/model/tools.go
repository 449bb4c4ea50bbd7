package model

// ChartToolInput is the argument shape of the create_chart tool. ChartData is
// kept raw so nested key order survives decoding.
type ChartToolInput struct {
	ChartType string `json:"chart_type"`
	ChartData []byte `json:"-"`
}

// ChartToolOutput is what the model sees after a create_chart call.
type ChartToolOutput struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
}
