package profit

import (
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []model.ShipmentRecord {
	return []model.ShipmentRecord{
		{BookingNo: "ABC123", Client: "Acme", ContainerType: model.Container40HQ},
		{BookingNo: "XYZ789", Client: "Beta", ContainerType: model.Container20GP, Shipper: "Global Abc Trading"},
		{BookingNo: "DEF456", Client: "Acme", ContainerType: model.Container40HQ, ContainerNo: "TEMU1234567"},
	}
}

func TestApplyNoFiltersReturnsAllInOrder(t *testing.T) {
	records := filterFixture()
	got := Apply(records, Filter{Search: "", ContainerType: FilterAll, Client: FilterAll})
	assert.Equal(t, records, got)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	got := Apply(filterFixture(), Filter{Search: "abc"})
	// matches ABC123 booking no and "Global Abc Trading" shipper
	assert.Len(t, got, 2)
	assert.Equal(t, "ABC123", got[0].BookingNo)
	assert.Equal(t, "XYZ789", got[1].BookingNo)
}

func TestApplySearchCoversContainerNo(t *testing.T) {
	got := Apply(filterFixture(), Filter{Search: "temu"})
	assert.Len(t, got, 1)
	assert.Equal(t, "DEF456", got[0].BookingNo)
}

func TestApplyPredicatesAreANDed(t *testing.T) {
	got := Apply(filterFixture(), Filter{Search: "a", ContainerType: model.Container40HQ, Client: "Acme"})
	assert.Len(t, got, 2)

	got = Apply(filterFixture(), Filter{ContainerType: model.Container40HQ, Client: "Beta"})
	assert.Empty(t, got)
}

func TestApplyExactFilters(t *testing.T) {
	got := Apply(filterFixture(), Filter{ContainerType: model.Container20GP})
	assert.Len(t, got, 1)
	assert.Equal(t, "Beta", got[0].Client)

	got = Apply(filterFixture(), Filter{Client: "Acme"})
	assert.Len(t, got, 2)
}

func TestApplyEmptyInput(t *testing.T) {
	assert.Empty(t, Apply(nil, Filter{Search: "anything"}))
	assert.Empty(t, Apply([]model.ShipmentRecord{}, Filter{}))
}
