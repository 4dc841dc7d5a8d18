package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters_ValuesOmitsEmpty(t *testing.T) {
	filters := Filters{
		"status":        "",
		"province_code": "  ",
		"min_price":     "1000000",
	}

	values := filters.Values()

	assert.Equal(t, "min_price=1000000", values.Encode())
	_, hasStatus := values["status"]
	assert.False(t, hasStatus)
}

func TestFiltersFromQuery(t *testing.T) {
	query := url.Values{"status": {"approved", "pending"}, "max_price": {"5"}}

	filters := FiltersFromQuery(query)

	assert.Equal(t, Filters{"status": "approved", "max_price": "5"}, filters)
}

func TestProfile_MergeKeepsMissingKeys(t *testing.T) {
	previous := Profile{"user_id": "123", "phone_number": "0123456789", "bio": "hi"}

	merged := previous.Merge(Profile{"phone_number": "0999999999"})

	assert.Equal(t, Profile{"user_id": "123", "phone_number": "0999999999", "bio": "hi"}, merged)
	assert.Equal(t, "0123456789", previous["phone_number"])
}

func TestProfile_Decode(t *testing.T) {
	profile := Profile{"user_id": "123", "budget_min": "1500000", "department": "ops"}

	var details ProfileDetails
	require.NoError(t, profile.Decode(&details))

	assert.Equal(t, "123", details.UserID)
	assert.Equal(t, 1500000.0, details.BudgetMin)
	assert.Equal(t, "ops", details.Department)
}
