package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openpd/pdraft/internal/serialise"
)

// SectionOutput is one parsed section.
type SectionOutput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ConflictOutput reports a factor claimed by multiple section titles.
type ConflictOutput struct {
	FactorKey string   `json:"factor_key"`
	Titles    []string `json:"titles"`
}

// ParseInput is the input schema for the parse_document tool.
type ParseInput struct {
	Text string `json:"text" jsonschema:"the raw document text to parse into sections"`
}

// ParseOutput is the output schema for the parse_document tool.
type ParseOutput struct {
	Sections  []SectionOutput  `json:"sections"`
	Conflicts []ConflictOutput `json:"conflicts,omitempty"`
}

// RenderInput is the input schema for the render_document tool.
type RenderInput struct {
	Text string `json:"text" jsonschema:"the raw document text to render canonically"`
	Mode string `json:"mode,omitempty" jsonschema:"serialisation mode, generated or updated (default updated)"`
}

// RenderOutput is the output schema for the render_document tool.
type RenderOutput struct {
	Document string `json:"document"`
}

// GetSectionInput is the input schema for the get_section tool.
type GetSectionInput struct {
	Text  string `json:"text" jsonschema:"the raw document text"`
	Title string `json:"title" jsonschema:"the section title to look up"`
}

// GetSectionOutput is the output schema for the get_section tool.
type GetSectionOutput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateSectionInput is the input schema for the update_section tool.
type UpdateSectionInput struct {
	Text    string `json:"text" jsonschema:"the raw document text"`
	Title   string `json:"title" jsonschema:"the section title to update"`
	Content string `json:"content" jsonschema:"the replacement section content"`
}

// UpdateSectionOutput is the output schema for the update_section tool.
type UpdateSectionOutput struct {
	Document string `json:"document"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_document",
		Description: "Parse Position Description text into named sections",
	}, s.handleParse)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_document",
		Description: "Render Position Description text in canonical section order",
	}, s.handleRender)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_section",
		Description: "Extract one section's content from Position Description text",
	}, s.handleGetSection)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_section",
		Description: "Replace one section's content and return the re-rendered document",
	}, s.handleUpdateSection)
}

func (s *Server) handleParse(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	session := s.ports.NewSession()
	conflicts := session.LoadText(input.Text)

	var output ParseOutput
	for _, sec := range session.Document().Sections() {
		output.Sections = append(output.Sections, SectionOutput{
			Title:   sec.Title,
			Content: sec.Content,
		})
	}
	for _, c := range conflicts {
		output.Conflicts = append(output.Conflicts, ConflictOutput{
			FactorKey: c.FactorKey,
			Titles:    c.Titles,
		})
	}
	return nil, output, nil
}

func (s *Server) handleRender(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderInput,
) (*mcp.CallToolResult, RenderOutput, error) {
	mode := serialise.ModeUpdated
	if input.Mode == string(serialise.ModeGenerated) {
		mode = serialise.ModeGenerated
	}

	session := s.ports.NewSession()
	session.LoadText(input.Text)
	doc, err := session.Render(mode)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	return nil, RenderOutput{Document: doc}, nil
}

func (s *Server) handleGetSection(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetSectionInput,
) (*mcp.CallToolResult, GetSectionOutput, error) {
	session := s.ports.NewSession()
	session.LoadText(input.Text)

	doc := session.Document()
	if sec := doc.Get(input.Title); sec != nil {
		return nil, GetSectionOutput{Title: sec.Title, Content: sec.Content}, nil
	}
	// Tolerate case differences from agents echoing titles back.
	for _, sec := range doc.Sections() {
		if strings.EqualFold(sec.Title, input.Title) {
			return nil, GetSectionOutput{Title: sec.Title, Content: sec.Content}, nil
		}
	}
	return nil, GetSectionOutput{}, fmt.Errorf("section %q not found", input.Title)
}

func (s *Server) handleUpdateSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateSectionInput,
) (*mcp.CallToolResult, UpdateSectionOutput, error) {
	session := s.ports.NewSession()
	session.LoadText(input.Text)

	if _, err := session.BeginEdit(input.Title); err != nil {
		return nil, UpdateSectionOutput{}, err
	}
	if err := session.SaveSection(ctx, input.Title, input.Content); err != nil {
		return nil, UpdateSectionOutput{}, err
	}

	doc, err := session.Render(serialise.ModeUpdated)
	if err != nil {
		return nil, UpdateSectionOutput{}, err
	}
	return nil, UpdateSectionOutput{Document: doc}, nil
}
