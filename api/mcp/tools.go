package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/beatpath/pkg/chain"
)

var (
	findPathToolName    = "find_path"
	findPathDescription = "Find the shortest chain of college football victories from one team to another. " +
		"Each step is a game the earlier team won. When no chain exists a generated explanation may be returned instead."

	listTeamsToolName    = "list_teams"
	listTeamsDescription = "List the names of all teams known to the victory graph."
)

// FindPathInput represents the input arguments for the find_path tool.
type FindPathInput struct {
	From string `json:"from" jsonschema:"the team whose victories start the chain"`
	To   string `json:"to" jsonschema:"the team the chain should end at"`
}

// FindPathOutput represents the output of the find_path tool.
type FindPathOutput struct {
	From        string       `json:"from"`
	To          string       `json:"to"`
	Outcome     string       `json:"outcome"`
	Path        []string     `json:"path"`
	Edges       []chain.Edge `json:"edges"`
	Explanation string       `json:"explanation,omitempty"`
}

// ListTeamsOutput represents the output of the list_teams tool.
type ListTeamsOutput struct {
	Count int      `json:"count"`
	Teams []string `json:"teams"`
}

func (s *Server) handleFindPath(ctx context.Context, _ *mcp.CallToolRequest, input FindPathInput) (*mcp.CallToolResult, FindPathOutput, error) {
	logger := s.config.Logger

	logger.Debug("MCP find_path request",
		"from", input.From,
		"to", input.To,
	)

	res := s.config.Finder.FindPath(ctx, input.From, input.To)
	if res.Failed() {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: res.Error},
			},
		}, FindPathOutput{}, nil
	}

	resp := res.Response()
	output := FindPathOutput{
		From:        input.From,
		To:          input.To,
		Outcome:     string(res.Outcome),
		Path:        resp.Path,
		Edges:       resp.Edges,
		Explanation: res.LLMText,
	}

	return textResult(output)
}

func (s *Server) handleListTeams(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, ListTeamsOutput, error) {
	teams := s.config.Finder.TeamNames()
	return textResult(ListTeamsOutput{Count: len(teams), Teams: teams})
}

// textResult mirrors structured output as serialized JSON in a TextContent
// block for clients without structured content support.
func textResult[T any](output T) (*mcp.CallToolResult, T, error) {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		var zero T
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, zero, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
