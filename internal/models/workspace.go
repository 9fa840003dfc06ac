package models

import "time"

const (
	WorkspacePending   = "pending"
	WorkspaceDeploying = "deploying"
	WorkspaceRunning   = "running"
	WorkspaceStopped   = "stopped"
	WorkspaceError     = "error"
)

type Channel struct {
	ID                 int       `json:"id"`
	ChannelType        string    `json:"channel_type"`
	ChannelTypeDisplay string    `json:"channel_type_display,omitempty"`
	Name               string    `json:"name"`
	Allowlist          []string  `json:"allowlist"`
	IsActive           bool      `json:"is_active"`
	RespondToGroups    bool      `json:"respond_to_groups"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type InstalledSkill struct {
	ID          int       `json:"id"`
	Skill       int       `json:"skill"`
	Status      string    `json:"status"`
	InstalledAt time.Time `json:"installed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Workspace struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	SelectedModel    string           `json:"selected_model"`
	ModelDisplay     string           `json:"model_display,omitempty"`
	AssignedPort     *int             `json:"assigned_port"`
	Status           string           `json:"status"`
	StatusDisplay    string           `json:"status_display,omitempty"`
	IsRunning        bool             `json:"is_running"`
	LastHealthCheck  *time.Time       `json:"last_health_check"`
	ErrorMessage     string           `json:"error_message"`
	SystemPrompt     string           `json:"system_prompt"`
	AgentName        string           `json:"agent_name"`
	AgentDescription string           `json:"agent_description"`
	WelcomeMessage   string           `json:"welcome_message"`
	Temperature      float64          `json:"temperature"`
	SandboxMode      bool             `json:"sandbox_mode"`
	MaxTokens        int              `json:"max_tokens"`
	Channels         []Channel        `json:"channels,omitempty"`
	InstalledSkills  []InstalledSkill `json:"installed_skills,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type WorkspaceCreate struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	SelectedModel    string   `json:"selected_model,omitempty"`
	SystemPrompt     string   `json:"system_prompt,omitempty"`
	AgentName        string   `json:"agent_name,omitempty"`
	AgentDescription string   `json:"agent_description,omitempty"`
	WelcomeMessage   string   `json:"welcome_message,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	SandboxMode      *bool    `json:"sandbox_mode,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
}

type WorkspaceStatus struct {
	Status          string     `json:"status"`
	StatusDisplay   string     `json:"status_display"`
	IsRunning       bool       `json:"is_running"`
	ContainerID     string     `json:"container_id"`
	LastHealthCheck *time.Time `json:"last_health_check"`
	ErrorMessage    string     `json:"error_message"`
	UptimeSeconds   *float64   `json:"uptime_seconds"`
}

type WorkspaceLogs struct {
	Logs string `json:"logs"`
}

type ChannelCreate struct {
	ChannelType     string   `json:"channel_type"`
	Name            string   `json:"name"`
	Allowlist       []string `json:"allowlist,omitempty"`
	RespondToGroups bool     `json:"respond_to_groups"`
}

type AgentTask struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Instructions  string     `json:"instructions"`
	EnabledTools  []string   `json:"enabled_tools"`
	Schedule      string     `json:"schedule"`
	Status        string     `json:"status"`
	LastRun       *time.Time `json:"last_run"`
	NextRun       *time.Time `json:"next_run"`
	RunCount      int        `json:"run_count"`
	LastError     string     `json:"last_error"`
	ResultCount   int        `json:"result_count"`
	HighScoreRuns int        `json:"high_score_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
