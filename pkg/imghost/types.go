package imghost

// uploadResponse is the wire shape the image host returns.
type uploadResponse struct {
	Data    uploadData `json:"data"`
	Success bool       `json:"success"`
	Status  int        `json:"status"`
}

type uploadData struct {
	URL        string `json:"url"`
	DisplayURL string `json:"display_url"`
	DeleteURL  string `json:"delete_url"`
}

// UploadResult carries the hosted location of a successfully uploaded image.
type UploadResult struct {
	URL        string `json:"url"`
	DisplayURL string `json:"display_url,omitempty"`
	DeleteURL  string `json:"delete_url,omitempty"`
}
