package models

import (
	"fmt"
	"strings"

	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

// ResourceType identifies what kind of calendar a resource reference points at.
type ResourceType string

const (
	ResourceRoom         ResourceType = "room"
	ResourceFaculty      ResourceType = "faculty"
	ResourceStudentGroup ResourceType = "student_group"
)

// ResourceTypes lists the types in the order conflict sweeps visit them.
var ResourceTypes = []ResourceType{ResourceRoom, ResourceFaculty, ResourceStudentGroup}

// ParseResourceType normalises user supplied resource kinds.
func ParseResourceType(raw string) (ResourceType, error) {
	switch ResourceType(strings.ToLower(strings.TrimSpace(raw))) {
	case ResourceRoom:
		return ResourceRoom, nil
	case ResourceFaculty:
		return ResourceFaculty, nil
	case ResourceStudentGroup, "group":
		return ResourceStudentGroup, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown resource type %q", raw))
	}
}

// ResourceRef is the subject of availability queries.
type ResourceRef struct {
	Type ResourceType `json:"type"`
	ID   int64        `json:"id"`
}

func (r ResourceRef) String() string {
	return fmt.Sprintf("%s#%d", r.Type, r.ID)
}

// RoomRef is shorthand for a room reference.
func RoomRef(id int64) ResourceRef { return ResourceRef{Type: ResourceRoom, ID: id} }

// FacultyRef is shorthand for a faculty calendar reference.
func FacultyRef(id int64) ResourceRef { return ResourceRef{Type: ResourceFaculty, ID: id} }

// GroupRef is shorthand for a student-group calendar reference.
func GroupRef(id int64) ResourceRef { return ResourceRef{Type: ResourceStudentGroup, ID: id} }

// Room is a bookable room with its seating capacity.
type Room struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Building string `db:"building" json:"building"`
	Capacity int    `db:"capacity" json:"capacity"`
	Active   bool   `db:"active" json:"active"`
}

// Ref returns the resource reference of the room.
func (r Room) Ref() ResourceRef { return RoomRef(r.ID) }
