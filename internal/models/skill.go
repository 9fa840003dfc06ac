package models

import "time"

type Skill struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	Author           string    `json:"author"`
	Category         string    `json:"category"`
	CategoryDisplay  string    `json:"category_display,omitempty"`
	Tags             []string  `json:"tags"`
	Version          string    `json:"version"`
	InstallCount     int       `json:"install_count"`
	IsOfficial       bool      `json:"is_official"`
	IsFeatured       bool      `json:"is_featured"`
	AverageRating    *float64  `json:"average_rating"`
	RequiredTools    []string  `json:"required_tools"`
	RequiredEnv      []string  `json:"required_env"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SkillInstallRequest struct {
	WorkspaceID int `json:"workspace_id"`
}
