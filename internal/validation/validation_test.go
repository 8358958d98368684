package validation_test

import (
	"testing"

	"github.com/emeritus-labs/emeritus-bridge/internal/validation"
)

func TestBearerKey_ValidateRequest(t *testing.T) {
	testCases := []struct {
		Name          string
		Key           string
		Authorization string
		ExpectError   bool
	}{
		{
			Name:          "empty_key_disables_validation",
			Key:           "",
			Authorization: "",
		},
		{
			Name:        "missing_header",
			Key:         "sekrit",
			ExpectError: true,
		},
		{
			Name:          "wrong_scheme",
			Key:           "sekrit",
			Authorization: "Basic sekrit",
			ExpectError:   true,
		},
		{
			Name:          "wrong_key",
			Key:           "sekrit",
			Authorization: "Bearer wrong",
			ExpectError:   true,
		},
		{
			Name:          "valid_key",
			Key:           "sekrit",
			Authorization: "Bearer sekrit",
		},
		{
			Name:          "scheme_is_case_insensitive",
			Key:           "sekrit",
			Authorization: "bearer sekrit",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_inst := validation.NewBearerKey(tc.Key)
			if err := _inst.ValidateRequest(tc.Authorization); (err != nil) != tc.ExpectError {
				t.Errorf("BearerKey.ValidateRequest() error = %v, expectError %v", err, tc.ExpectError)
			}
		})
	}
}

func TestBearerKey_NilReceiverDisablesValidation(t *testing.T) {
	var key *validation.BearerKey
	if err := key.ValidateRequest("anything"); err != nil {
		t.Errorf("BearerKey.ValidateRequest() error = %v, expected nil", err)
	}
}
