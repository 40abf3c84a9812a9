package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CatalogURI is the resource holding the current activity catalog.
const CatalogURI = "activities://catalog"

func registerCatalogResource(server *sdkmcp.Server, svc ActivityService) {
	server.AddResource(&sdkmcp.Resource{
		URI:         CatalogURI,
		Name:        "catalog",
		Title:       "Activity catalog",
		Description: "All activities keyed by name, with current participants",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		catalog, err := svc.List(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(catalog)
		if err != nil {
			return nil, err
		}
		uri := CatalogURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	})
}
