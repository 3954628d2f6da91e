package dto

type Association struct {
	Path    string
	Project string
}

type SettingsOutput struct {
	Enabled          bool
	APIKey           string
	APIURL           string
	DefaultProject   string
	IgnoreList       []string
	Associations     []Association
	IgnoreText       string
	AssociationsText string
}

type UpdateInput struct {
	APIKey           string
	APIURL           string
	DefaultProject   string
	IgnoreText       string
	AssociationsText string
}

type SetEnabledInput struct {
	Enabled bool
}
