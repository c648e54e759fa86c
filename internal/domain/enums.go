package domain

// PacingStrategy controls how conservatively the weekly allocator reserves
// idle buffer capacity.
type PacingStrategy string

const (
	PacingRelaxed    PacingStrategy = "relaxed"
	PacingStandard   PacingStrategy = "standard"
	PacingAggressive PacingStrategy = "aggressive"
)

// ValidPacingStrategies is the canonical set of accepted pacing strings.
var ValidPacingStrategies = map[string]bool{
	"relaxed": true, "standard": true, "aggressive": true,
}

type ExceptionKind string

const (
	ExceptionWholeDay ExceptionKind = "whole_day"
	ExceptionPartial  ExceptionKind = "partial"
)

type WorkItemStatus string

const (
	WorkItemTodo     WorkItemStatus = "todo"
	WorkItemDone     WorkItemStatus = "done"
	WorkItemArchived WorkItemStatus = "archived"
)

// ValidWorkItemTypes is the canonical set of accepted work item type strings.
var ValidWorkItemTypes = map[string]bool{
	"lesson": true, "activity": true, "assessment": true,
	"review": true, "project": true, "reading": true,
}
