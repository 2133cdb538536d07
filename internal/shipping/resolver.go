package shipping

// ResolveTariff picks the single applicable tariff for a buyer location from
// one seller's rule set. Precedence, first match wins:
//
//  1. active rule matching both province and a non-blank city
//  2. active province-wide rule (blank city)
//  3. no match: zero
//
// Zero on no match is policy, not an error: a seller with no rule for the
// destination charges no shipping. Duplicate rules for the same destination
// are a data-quality condition; the first one in input order is taken.
func ResolveTariff(rules []Rule, province, city string) Money {
	prov := NormalizeLocation(province)
	if prov == "" {
		return 0
	}
	dest := NormalizeLocation(city)

	haveProvinceWide := false
	var provinceWide Money
	for _, r := range rules {
		if !r.Active || NormalizeLocation(r.Province) != prov {
			continue
		}
		ruleCity := NormalizeLocation(r.City)
		if ruleCity != "" {
			if dest != "" && ruleCity == dest {
				return r.Price
			}
			continue
		}
		if !haveProvinceWide {
			haveProvinceWide = true
			provinceWide = r.Price
		}
	}
	if haveProvinceWide {
		return provinceWide
	}
	return 0
}
