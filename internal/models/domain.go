package models

import (
	"fmt"
	"strings"
)

// ItemStatus defines allowed lifecycle states for work items.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in-progress"
	StatusReview     ItemStatus = "review"
)

// ItemType defines the four hierarchy levels.
type ItemType string

const (
	TypeEpic    ItemType = "epic"
	TypeStory   ItemType = "story"
	TypeTask    ItemType = "task"
	TypeSubtask ItemType = "subtask"
)

// Priority defines allowed item priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ProjectStatus defines allowed project lifecycle states.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

const (
	LevelEpic    = 1
	LevelStory   = 2
	LevelTask    = 3
	LevelSubtask = 4
)

var validItemStatuses = map[ItemStatus]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusReview:     {},
}

var validItemTypes = map[ItemType]struct{}{
	TypeEpic:    {},
	TypeStory:   {},
	TypeTask:    {},
	TypeSubtask: {},
}

var validPriorities = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

var validProjectStatuses = map[ProjectStatus]struct{}{
	ProjectPlanning:   {},
	ProjectInProgress: {},
	ProjectCompleted:  {},
}

var itemTypeLevels = map[ItemType]int{
	TypeEpic:    LevelEpic,
	TypeStory:   LevelStory,
	TypeTask:    LevelTask,
	TypeSubtask: LevelSubtask,
}

// parentTypes encodes the strict nesting rule: a story's parent must be
// an epic, a task's a story, a subtask's a task. Epics have no parent.
var parentTypes = map[ItemType]ItemType{
	TypeStory:   TypeEpic,
	TypeTask:    TypeStory,
	TypeSubtask: TypeTask,
}

func IsValidItemStatus(status ItemStatus) bool {
	_, ok := validItemStatuses[status]
	return ok
}

func IsValidItemType(itemType ItemType) bool {
	_, ok := validItemTypes[itemType]
	return ok
}

func IsValidPriority(priority Priority) bool {
	_, ok := validPriorities[priority]
	return ok
}

func IsValidProjectStatus(status ProjectStatus) bool {
	_, ok := validProjectStatuses[status]
	return ok
}

// LevelOf returns the hierarchy level for an item type, or 0 if unknown.
func LevelOf(itemType ItemType) int {
	return itemTypeLevels[itemType]
}

// ParentTypeOf returns the required parent type for itemType. The second
// return is false for epics, which must be roots.
func ParentTypeOf(itemType ItemType) (ItemType, bool) {
	parent, ok := parentTypes[itemType]
	return parent, ok
}

func ParseItemStatus(raw string) (ItemStatus, error) {
	value := ItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidItemStatus(value) {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return value, nil
}

func ParseItemType(raw string) (ItemType, error) {
	value := ItemType(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("type is required")
	}
	if !IsValidItemType(value) {
		return "", fmt.Errorf("invalid type: %s", value)
	}
	return value, nil
}

func ParsePriority(raw string) (Priority, error) {
	value := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("priority is required")
	}
	if !IsValidPriority(value) {
		return "", fmt.Errorf("invalid priority: %s", value)
	}
	return value, nil
}

func ParseProjectStatus(raw string) (ProjectStatus, error) {
	value := ProjectStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidProjectStatus(value) {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return value, nil
}
