package internal

import (
	"context"
	"fmt"

	"github.com/rm-hull/clawdash/internal/models"
)

type WorkspacesAPI struct {
	c *Client
}

func (c *Client) Workspaces() *WorkspacesAPI {
	return &WorkspacesAPI{c: c}
}

func workspacePath(id int, suffix string) string {
	return fmt.Sprintf("/workspaces/%d/%s", id, suffix)
}

func (api *WorkspacesAPI) List(ctx context.Context) ([]models.Workspace, error) {
	return listAll[models.Workspace](ctx, api.c, "/workspaces/", nil)
}

func (api *WorkspacesAPI) Get(ctx context.Context, id int) (*models.Workspace, error) {
	return getOne[models.Workspace](ctx, api.c, workspacePath(id, ""))
}

func (api *WorkspacesAPI) Create(ctx context.Context, ws models.WorkspaceCreate) (*models.Workspace, error) {
	return postOne[models.Workspace](ctx, api.c, "/workspaces/", ws)
}

func (api *WorkspacesAPI) Update(ctx context.Context, id int, patch map[string]any) (*models.Workspace, error) {
	var out models.Workspace
	if err := api.c.Patch(ctx, workspacePath(id, ""), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (api *WorkspacesAPI) Delete(ctx context.Context, id int) error {
	return api.c.Delete(ctx, workspacePath(id, ""), nil)
}

func (api *WorkspacesAPI) Deploy(ctx context.Context, id int) (*models.MessageResponse, error) {
	return postOne[models.MessageResponse](ctx, api.c, workspacePath(id, "deploy/"), nil)
}

func (api *WorkspacesAPI) Stop(ctx context.Context, id int) (*models.MessageResponse, error) {
	return postOne[models.MessageResponse](ctx, api.c, workspacePath(id, "stop/"), nil)
}

func (api *WorkspacesAPI) Status(ctx context.Context, id int) (*models.WorkspaceStatus, error) {
	return getOne[models.WorkspaceStatus](ctx, api.c, workspacePath(id, "status_check/"))
}

func (api *WorkspacesAPI) Logs(ctx context.Context, id int) (*models.WorkspaceLogs, error) {
	return getOne[models.WorkspaceLogs](ctx, api.c, workspacePath(id, "logs/"))
}

func (api *WorkspacesAPI) Channels(ctx context.Context, id int) ([]models.Channel, error) {
	return listAll[models.Channel](ctx, api.c, workspacePath(id, "channels/"), nil)
}

func (api *WorkspacesAPI) CreateChannel(ctx context.Context, id int, ch models.ChannelCreate) (*models.Channel, error) {
	return postOne[models.Channel](ctx, api.c, workspacePath(id, "channels/"), ch)
}

func (api *WorkspacesAPI) DeleteChannel(ctx context.Context, id, channelID int) error {
	return api.c.Delete(ctx, workspacePath(id, fmt.Sprintf("channels/%d/", channelID)), nil)
}

func (api *WorkspacesAPI) Tasks(ctx context.Context, id int) ([]models.AgentTask, error) {
	return listAll[models.AgentTask](ctx, api.c, workspacePath(id, "tasks/"), nil)
}

func (api *WorkspacesAPI) RunTask(ctx context.Context, id, taskID int) (*models.MessageResponse, error) {
	return postOne[models.MessageResponse](ctx, api.c, workspacePath(id, fmt.Sprintf("tasks/%d/run/", taskID)), nil)
}

func (api *WorkspacesAPI) PauseTask(ctx context.Context, id, taskID int) (*models.MessageResponse, error) {
	return postOne[models.MessageResponse](ctx, api.c, workspacePath(id, fmt.Sprintf("tasks/%d/pause/", taskID)), nil)
}

func (api *WorkspacesAPI) ResumeTask(ctx context.Context, id, taskID int) (*models.MessageResponse, error) {
	return postOne[models.MessageResponse](ctx, api.c, workspacePath(id, fmt.Sprintf("tasks/%d/resume/", taskID)), nil)
}
