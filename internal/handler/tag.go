package handler

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type createTagGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r createTagGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// tagGroupRef identifies a single tag group for the activate/deactivate
// operations.
type tagGroupRef struct {
	GroupID string `json:"group_id"`
}

func (r tagGroupRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GroupID, validation.Required),
	)
}

type updateTagGroupRequest struct {
	GroupID     string `json:"group_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r updateTagGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GroupID, validation.Required),
	)
}

type listTagGroupsRequest struct {
	pagination
}

type assignUserTagRequest struct {
	UserID string `json:"user_id"`
	TagID  string `json:"tag_id"`
}

func (r assignUserTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.TagID, validation.Required),
	)
}

func tagOperations() []Operation {
	return []Operation{
		{
			Name:        "create_tag_group",
			Description: "Create a new tag group",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/tags/group/create",
			Inputs: []Input{
				{Name: "name", Type: TypeString, Description: "Name of the tag group", Required: true},
				{Name: "description", Type: TypeString, Description: "Description of the tag group"},
			},
			bind: bindBody[createTagGroupRequest],
		},
		{
			Name:        "list_tag_groups",
			Description: "List all tag groups",
			Method:      http.MethodGet,
			Path:        "/api/v5/entity/tags/group/list",
			Inputs: []Input{
				{Name: "limit", Type: TypeInteger, Description: "Maximum number of groups to return (1-1000)"},
				{Name: "offset", Type: TypeInteger, Description: "Number of groups to skip"},
			},
			bind: bindQuery[listTagGroupsRequest],
		},
		{
			Name:        "update_tag_group",
			Description: "Update an existing tag group",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/tags/group/update",
			Inputs: []Input{
				{Name: "group_id", Type: TypeString, Description: "Tag group ID to update", Required: true},
				{Name: "name", Type: TypeString, Description: "New name for the tag group"},
				{Name: "description", Type: TypeString, Description: "New description for the tag group"},
			},
			bind: bindBody[updateTagGroupRequest],
		},
		{
			Name:        "activate_tag_group",
			Description: "Activate a tag group",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/tags/group/activate",
			Inputs: []Input{
				{Name: "group_id", Type: TypeString, Description: "Tag group ID to activate", Required: true},
			},
			bind: bindBody[tagGroupRef],
		},
		{
			Name:        "deactivate_tag_group",
			Description: "Deactivate a tag group",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/tags/group/deactivate",
			Inputs: []Input{
				{Name: "group_id", Type: TypeString, Description: "Tag group ID to deactivate", Required: true},
			},
			bind: bindBody[tagGroupRef],
		},
		{
			Name:        "assign_user_tag",
			Description: "Assign a tag to a user",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/user/tags/assign",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "User ID to tag", Required: true},
				{Name: "tag_id", Type: TypeString, Description: "Tag ID to assign", Required: true},
			},
			bind: bindBody[assignUserTagRequest],
		},
		{
			Name:        "list_user_tags",
			Description: "List tags assigned to a user",
			Method:      http.MethodGet,
			Path:        "/api/v5/entity/user/tags/list",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "User ID to list tags for", Required: true},
			},
			bind: bindQuery[userRef],
		},
	}
}
