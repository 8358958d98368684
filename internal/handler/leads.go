package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// leadRecord is a raw lead as supplied by the caller. Records pass through to
// the upstream unmodified; only the identification fields are checked.
type leadRecord map[string]any

type importLeadsRequest struct {
	Leads  []leadRecord `json:"leads_data"`
	Source string       `json:"source,omitempty"`
}

func (r importLeadsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Leads,
			validation.Required.Error("leads_data must not be empty"),
			validation.Each(validation.By(validateLeadRecord))),
	)
}

// validateLeadRecord enforces the upstream identification requirement: each
// record carries a user_id, or both an area_code and a mobile number.
func validateLeadRecord(value any) error {
	record, ok := value.(leadRecord)
	if !ok {
		return errors.New("must be an object")
	}
	if stringField(record, "user_id") != "" {
		return nil
	}
	if stringField(record, "area_code") != "" && stringField(record, "mobile") != "" {
		return nil
	}
	return errors.New("requires user_id or both area_code and mobile")
}

func stringField(record leadRecord, key string) string {
	s, _ := record[key].(string)
	return s
}

func leadsOperations() []Operation {
	return []Operation{
		{
			Name:        "import_leads",
			Description: "Import a batch of raw lead records. The result reports the per-record outcome in input order",
			Method:      http.MethodPost,
			Path:        "/api/v5/entity/leads/import",
			Inputs: []Input{
				{Name: "leads_data", Type: TypeArray, Description: "Raw lead records to import", Required: true},
				{Name: "source", Type: TypeString, Description: "Source of the lead import"},
			},
			Audit: true,
			bind:  bindBody[importLeadsRequest],
		},
	}
}
