package models

type UpdateInfo struct {
	Version  string `json:"version"`
	Required bool   `json:"required"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}
