package shipping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func rule(province, city string, price Money) Rule {
	return Rule{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Province: province,
		City:     city,
		Price:    price,
		Active:   true,
	}
}

func TestResolveTariffCityBeatsProvince(t *testing.T) {
	rules := []Rule{
		rule("Pichincha", "", 500),
		rule("Pichincha", "Quito", 300),
	}
	require.Equal(t, Money(300), ResolveTariff(rules, "Pichincha", "Quito"))
}

func TestResolveTariffProvinceFallback(t *testing.T) {
	rules := []Rule{
		rule("Pichincha", "Quito", 300),
		rule("Pichincha", "", 500),
	}
	require.Equal(t, Money(500), ResolveTariff(rules, "Pichincha", "Cayambe"))
}

func TestResolveTariffNoMatchIsZero(t *testing.T) {
	rules := []Rule{
		rule("Pichincha", "", 500),
	}
	require.Equal(t, Money(0), ResolveTariff(rules, "Guayas", "Guayaquil"))
}

func TestResolveTariffBlankProvinceIsZero(t *testing.T) {
	rules := []Rule{
		rule("Pichincha", "", 500),
	}
	require.Equal(t, Money(0), ResolveTariff(rules, "", "Quito"))
	require.Equal(t, Money(0), ResolveTariff(rules, "   ", "Quito"))
}

func TestResolveTariffCaseAndSpaceInsensitive(t *testing.T) {
	rules := []Rule{
		rule("Pichincha", "Quito", 300),
	}
	require.Equal(t, Money(300), ResolveTariff(rules, "  pichincha ", "QUITO"))
}

func TestResolveTariffIgnoresInactiveRules(t *testing.T) {
	inactive := rule("Pichincha", "Quito", 100)
	inactive.Active = false
	rules := []Rule{
		inactive,
		rule("Pichincha", "", 500),
	}
	require.Equal(t, Money(500), ResolveTariff(rules, "Pichincha", "Quito"))
}

func TestResolveTariffDuplicateRulesFirstWins(t *testing.T) {
	rules := []Rule{
		rule("Pichincha", "Quito", 300),
		rule("Pichincha", "Quito", 999),
	}
	require.Equal(t, Money(300), ResolveTariff(rules, "Pichincha", "Quito"))
}

func TestResolveTariffCityMatchAfterProvinceRule(t *testing.T) {
	// The city rule wins even when a province rule appears first.
	rules := []Rule{
		rule("Pichincha", "", 500),
		rule("Pichincha", "Cayambe", 250),
		rule("Pichincha", "Quito", 300),
	}
	require.Equal(t, Money(300), ResolveTariff(rules, "Pichincha", "Quito"))
}

func TestResolveTariffEmptyRules(t *testing.T) {
	require.Equal(t, Money(0), ResolveTariff(nil, "Pichincha", "Quito"))
}

func TestNormalizeLocation(t *testing.T) {
	require.Equal(t, "quito", NormalizeLocation("  Quito "))
	require.Equal(t, "", NormalizeLocation("   "))
}
