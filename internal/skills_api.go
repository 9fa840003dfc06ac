package internal

import (
	"context"
	neturl "net/url"

	"github.com/rm-hull/clawdash/internal/models"
)

type SkillsAPI struct {
	c *Client
}

func (c *Client) Skills() *SkillsAPI {
	return &SkillsAPI{c: c}
}

func (api *SkillsAPI) List(ctx context.Context, category string) ([]models.Skill, error) {
	var query neturl.Values
	if category != "" {
		query = neturl.Values{"category": {category}}
	}
	return listAll[models.Skill](ctx, api.c, "/skills/", query)
}

func (api *SkillsAPI) Featured(ctx context.Context) ([]models.Skill, error) {
	return listAll[models.Skill](ctx, api.c, "/skills/featured/", nil)
}

func (api *SkillsAPI) Get(ctx context.Context, slug string) (*models.Skill, error) {
	return getOne[models.Skill](ctx, api.c, "/skills/"+neturl.PathEscape(slug)+"/")
}

func (api *SkillsAPI) Install(ctx context.Context, slug string, workspaceID int) (*models.MessageResponse, error) {
	return postOne[models.MessageResponse](ctx, api.c, "/skills/"+neturl.PathEscape(slug)+"/install/",
		models.SkillInstallRequest{WorkspaceID: workspaceID})
}
