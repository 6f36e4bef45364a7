package model

// Window describes the frontmost application as reported by the platform.
type Window struct {
	App      string `yaml:"app"                json:"app"`
	PID      int    `yaml:"pid,omitempty"      json:"pid,omitempty"`
	BundleID string `yaml:"id,omitempty"       json:"id,omitempty"`
	Title    string `yaml:"title,omitempty"    json:"title,omitempty"`
}

// Status is the output of the `status` command.
type Status struct {
	Platform  string  `yaml:"platform"            json:"platform"`
	Supported bool    `yaml:"supported"           json:"supported"`
	Trusted   bool    `yaml:"trusted"             json:"trusted"`
	Overlay   bool    `yaml:"overlay"             json:"overlay"`
	Frontmost *Window `yaml:"frontmost,omitempty" json:"frontmost,omitempty"`
	Error     string  `yaml:"error,omitempty"     json:"error,omitempty"`
}
