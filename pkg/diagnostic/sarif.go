package diagnostic

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/diagview/internal/logging"
)

type sarifLog struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool               sarifTool                        `json:"tool"`
	Results            []sarifResult                    `json:"results"`
	OriginalURIBaseIDs map[string]sarifArtifactLocation `json:"originalUriBaseIds,omitempty"`
}

type sarifTool struct {
	Driver struct {
		Name string `json:"name"`
	} `json:"driver"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// decodeSARIF reads a SARIF 2.1.0 log. Results without a physical location
// cannot be grouped by file and are skipped.
func decodeSARIF(data []byte, opts LoadOptions) (Collection, error) {
	var doc sarifLog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode SARIF: %w", err)
	}

	logger := opts.logger()
	coll := make(Collection)

	for _, run := range doc.Runs {
		for _, res := range run.Results {
			if len(res.Locations) == 0 {
				logger.Debug("skipping SARIF result without location", "rule", res.RuleID)
				continue
			}

			primary := res.Locations[0].PhysicalLocation
			path, err := run.resolve(primary.ArtifactLocation, opts.BaseDir)
			if err != nil {
				logger.Warn("skipping SARIF result with unresolvable location",
					"rule", res.RuleID, "uri", primary.ArtifactLocation.URI, logging.FieldError, err)
				continue
			}

			diag := Diagnostic{
				Severity: sarifSeverity(res.Level),
				Message:  res.Message.Text,
				Range:    primary.Region.toRange(),
				Source:   run.Tool.Driver.Name,
				Code:     res.RuleID,
			}

			for _, rel := range res.RelatedLocations {
				diag.Related = append(diag.Related, run.related(rel, opts.BaseDir))
			}

			coll[path] = append(coll[path], diag)
		}
	}

	return coll, nil
}

// resolve turns an artifact location into a filesystem path, honouring
// originalUriBaseIds when the run declares them.
func (r sarifRun) resolve(loc sarifArtifactLocation, base string) (string, error) {
	uri := loc.URI
	if strings.Contains(uri, "://") || strings.HasPrefix(uri, "file:") {
		return PathFromURI(uri)
	}

	if loc.URIBaseID != "" {
		if baseLoc, ok := r.OriginalURIBaseIDs[loc.URIBaseID]; ok && baseLoc.URI != "" {
			basePath, err := PathFromURI(baseLoc.URI)
			if err != nil {
				return "", fmt.Errorf("resolve base %q: %w", loc.URIBaseID, err)
			}
			base = basePath
		}
	}

	path, err := PathFromURI(uri)
	if err != nil {
		return "", err
	}
	return resolvePath(path, base), nil
}

// related converts a related location. A location that cannot be resolved
// keeps its raw URI so it is still displayed; jumping to it fails later.
func (r sarifRun) related(loc sarifLocation, base string) RelatedInfo {
	info := RelatedInfo{
		Location: Location{
			URI:   loc.PhysicalLocation.ArtifactLocation.URI,
			Range: loc.PhysicalLocation.Region.toRange(),
		},
	}
	if loc.Message != nil {
		info.Message = loc.Message.Text
	}
	if path, err := r.resolve(loc.PhysicalLocation.ArtifactLocation, base); err == nil && filepath.IsAbs(path) {
		info.Location.URI = URIFromPath(path)
	}
	return info
}

func (g *sarifRegion) toRange() Range {
	if g == nil {
		return Range{}
	}
	start := Position{Line: max(g.StartLine-1, 0), Character: max(g.StartColumn-1, 0)}
	end := start
	if g.EndLine > 0 {
		end.Line = g.EndLine - 1
	}
	if g.EndColumn > 0 {
		end.Character = g.EndColumn - 1
	}
	return Range{Start: start, End: end}
}

func sarifSeverity(level string) Severity {
	switch level {
	case "error":
		return SeverityError
	case "note":
		return SeverityInformation
	case "none":
		return SeverityHint
	default:
		// SARIF's default level is "warning".
		return SeverityWarning
	}
}
