package cmd

import (
	"context"
	"encoding/json"

	"github.com/emeritus-labs/emeritus-bridge/internal/envelope"
	"github.com/emeritus-labs/emeritus-bridge/internal/handler"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdMCP() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mcp",
		Aliases: []string{"stdio"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := setup(cmd); err != nil {
				return err
			}

			logger.Debug("creating MCP server...")
			s := server.NewMCPServer("emeritus-bridge", version,
				server.WithToolCapabilities(false))

			for _, op := range bridgeRuntime.Operations() {
				s.AddTool(buildTool(op), toolHandler(op.Name))
			}

			logger.Info("serving MCP over stdio...")
			return server.ServeStdio(s)
		},
	}

	return cmd
}

// buildTool maps an operation's declared inputs onto an MCP tool schema.
func buildTool(op handler.Operation) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(op.Description)}
	for _, input := range op.Inputs {
		var propOpts []mcp.PropertyOption
		if input.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		propOpts = append(propOpts, mcp.Description(input.Description))

		switch input.Type {
		case handler.TypeInteger:
			opts = append(opts, mcp.WithNumber(input.Name, propOpts...))
		case handler.TypeBoolean:
			opts = append(opts, mcp.WithBoolean(input.Name, propOpts...))
		case handler.TypeArray:
			opts = append(opts, mcp.WithArray(input.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(input.Name, propOpts...))
		}
	}
	return mcp.NewTool(op.Name, opts...)
}

// toolHandler adapts a named operation to the MCP tool-call contract. The
// result text is always the operation envelope, success or failure.
func toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		env := bridgeRuntime.Invoke(ctx, name, req.GetArguments())
		body, err := json.Marshal(env)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode the operation result")
		}
		if env.Status == envelope.StatusError {
			return mcp.NewToolResultError(string(body)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}
