package cmd

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

func Workspaces(ctx context.Context, opts Options) error {
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	workspaces, err := a.client.Workspaces().List(ctx)
	if err != nil {
		return err
	}
	return printJSON(workspaces)
}

// WorkspaceAction runs one of status, deploy, stop or logs against a workspace.
func WorkspaceAction(ctx context.Context, opts Options, action string, id int) error {
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	api := a.client.Workspaces()
	switch action {
	case "status":
		status, err := api.Status(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(status)
	case "deploy":
		msg, err := api.Deploy(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(msg)
	case "stop":
		msg, err := api.Stop(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(msg)
	case "logs":
		logs, err := api.Logs(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(logs.Logs)
		return nil
	default:
		return errors.Newf("unknown workspace action: %s", action)
	}
}
