package handler

import (
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type createUserRequest struct {
	Mobile string `json:"mobile,omitempty"`
	Email  string `json:"email,omitempty"`
	Source string `json:"source,omitempty"`
}

func (r createUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Mobile, validation.Required.When(r.Email == "").Error("either mobile or email is required")),
		validation.Field(&r.Email, is.Email),
	)
}

// userRef identifies a single user for the fetch-style operations.
type userRef struct {
	UserID string `json:"user_id"`
}

func (r userRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
	)
}

func (r userRef) query() url.Values {
	return url.Values{"user_id": []string{r.UserID}}
}

type updateUserOwnerRequest struct {
	UserID  string `json:"user_id"`
	OwnerID string `json:"owner_id"`
}

func (r updateUserOwnerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.OwnerID, validation.Required),
	)
}

type updateUserPoolRequest struct {
	UserID string `json:"user_id"`
	PoolID string `json:"pool_id"`
}

func (r updateUserPoolRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.PoolID, validation.Required),
	)
}

type updateUserEmailRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (r updateUserEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func userOperations() []Operation {
	return []Operation{
		{
			Name:        "create_user",
			Description: "Create a new user by mobile number or email",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/user/create",
			Inputs: []Input{
				{Name: "mobile", Type: TypeString, Description: "User's mobile number"},
				{Name: "email", Type: TypeString, Description: "User's email address"},
				{Name: "source", Type: TypeString, Description: "Source of the user creation"},
			},
			bind: bindBody[createUserRequest],
		},
		{
			Name:        "fetch_user_profile",
			Description: "Fetch user profile information",
			Method:      http.MethodGet,
			Path:        "/api/v5/entity/profile/fetch",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "User ID to fetch", Required: true},
			},
			bind: bindQuery[userRef],
		},
		{
			Name:        "update_user_owner",
			Description: "Update the owner of a user",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/user/owner/update",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "User ID to update", Required: true},
				{Name: "owner_id", Type: TypeString, Description: "New owner ID", Required: true},
			},
			bind: bindBody[updateUserOwnerRequest],
		},
		{
			Name:        "update_user_pool",
			Description: "Update the pool assignment of a user",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/user/pool/update",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "User ID to update", Required: true},
				{Name: "pool_id", Type: TypeString, Description: "New pool ID", Required: true},
			},
			bind: bindBody[updateUserPoolRequest],
		},
		{
			Name:        "update_user_email",
			Description: "Update a user's email address",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/user/email/update",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "User ID to update", Required: true},
				{Name: "email", Type: TypeString, Description: "New email address", Required: true},
			},
			bind: bindBody[updateUserEmailRequest],
		},
		{
			Name:        "fetch_user_contact",
			Description: "Fetch user contact information",
			Method:      http.MethodGet,
			Path:        "/api/v5/entity/user/contact/fetch",
			Inputs: []Input{
				{Name: "user_id", Type: TypeString, Description: "User ID to fetch contact for", Required: true},
			},
			bind: bindQuery[userRef],
		},
	}
}
