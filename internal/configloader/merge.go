package configloader

import "github.com/yaklabco/diagview/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nested structs are merged field by field
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Workspace != "" {
		result.Workspace = override.Workspace
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Watch {
		result.Watch = true
	}

	if override.RespectGitignore != nil {
		respect := *override.RespectGitignore
		result.RespectGitignore = &respect
	}

	if override.Severities != nil {
		result.Severities = override.Severities
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	result.Theme = mergeTheme(base.Theme, override.Theme)

	if override.Editor.Command != "" {
		result.Editor.Command = override.Editor.Command
	}

	return &result
}

func mergeTheme(base, override config.ThemeConfig) config.ThemeConfig {
	result := base

	if override.LineHeight != 0 {
		result.LineHeight = override.LineHeight
	}
	if override.IconSize != 0 {
		result.IconSize = override.IconSize
	}
	if override.FolderGap != 0 {
		result.FolderGap = override.FolderGap
	}
	if override.Icons != "" {
		result.Icons = override.Icons
	}

	result.Colors = mergeColors(base.Colors, override.Colors)

	return result
}

func mergeColors(base, override config.ColorsConfig) config.ColorsConfig {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}

	return config.ColorsConfig{
		Foreground:  pick(base.Foreground, override.Foreground),
		Dim:         pick(base.Dim, override.Dim),
		CurrentLine: pick(base.CurrentLine, override.CurrentLine),
		Error:       pick(base.Error, override.Error),
		Warning:     pick(base.Warning, override.Warning),
		Info:        pick(base.Info, override.Info),
		Hint:        pick(base.Hint, override.Hint),
	}
}
