package problems

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/diagview/internal/logging"
)

// HitTest maps a clicked flattened line to an action. It never panics:
// anything it cannot resolve becomes a NoTarget, and inconsistencies are
// logged to logger (the package default when nil).
//
// Files are consumed by span until one contains the line. Its header
// toggles collapse. Inside an expanded file, a click on a diagnostic's
// message rows jumps to the diagnostic's start; a click anywhere in a
// related entry (header or message) jumps to the related location.
func HitTest(idx Index, state CollapseState, line int, logger *log.Logger) Action {
	if logger == nil {
		logger = logging.Default()
	}
	spans := Spans{State: state}

	if line < 0 {
		logger.Error("click above the first line", logging.FieldLine, line)
		return NoTarget{Reason: ReasonOutOfRange}
	}

	cursor := 0
	for _, group := range idx {
		span := spans.File(group)
		if cursor+span <= line {
			cursor += span
			continue
		}

		if cursor == line {
			return ToggleCollapse{Path: group.Path}
		}
		if isCollapsed(state, group.Path) {
			logger.Warn("click inside a collapsed file", logging.FieldFile, group.Path, logging.FieldLine, line)
			return NoTarget{Reason: ReasonCollapsed}
		}

		return hitGroup(group, spans, cursor+1, line, logger)
	}

	logger.Error("click below the last line", logging.FieldLine, line, "total", cursor)
	return NoTarget{Reason: ReasonOutOfRange}
}

// hitGroup resolves a line inside an expanded file whose first diagnostic
// starts at cursor.
func hitGroup(group FileGroup, spans Spans, cursor, line int, logger *log.Logger) Action {
	for _, d := range group.Diagnostics {
		span := spans.Diagnostic(d)
		if cursor+span <= line {
			cursor += span
			continue
		}

		msgLines := len(d.MessageLines())
		if line < cursor+msgLines {
			return JumpToLocation{Path: group.Path, Position: d.Range.Start}
		}
		cursor += msgLines

		for _, related := range d.Related {
			rspan := spans.Related(related)
			if cursor+rspan <= line {
				cursor += rspan
				continue
			}

			path, err := related.Location.Path()
			if err != nil {
				logger.Warn("related location is not a file",
					"uri", related.Location.URI, logging.FieldError, err)
				return NoTarget{Reason: ReasonBadLocation}
			}
			return JumpToLocation{Path: path, Position: related.Location.Range.Start}
		}

		logger.Error("related entries exhausted before the clicked line",
			logging.FieldFile, group.Path, logging.FieldLine, line)
		return NoTarget{Reason: ReasonExhausted}
	}

	logger.Error("diagnostics exhausted before the clicked line",
		logging.FieldFile, group.Path, logging.FieldLine, line)
	return NoTarget{Reason: ReasonExhausted}
}
