package query

import (
	"strconv"
	"strings"

	"property-search-be/internal/entity"
	"property-search-be/pkg/transit"
)

// Parser extracts structured filters from free-text search queries.
// Extraction is bounded-grammar token walking, not NLP: absence of a
// recognizable token simply leaves that field unset.
type Parser struct {
	resolver PlaceResolver
}

func NewParser(resolver PlaceResolver) *Parser {
	return &Parser{resolver: resolver}
}

var bedroomTokens = map[string]bool{
	"bed": true, "beds": true, "bedroom": true, "bedrooms": true, "br": true,
}

var propertyTypeVocab = []struct {
	keywords []string
	value    string
}{
	{[]string{"condominium", "condominiums", "condo", "condos"}, entity.PropertyTypeCondominium},
	{[]string{"apartment", "apartments", "flat", "flats"}, entity.PropertyTypeApartment},
	{[]string{"studio", "studios"}, entity.PropertyTypeStudio},
	{[]string{"house", "houses", "terrace", "bungalow", "townhouse"}, entity.PropertyTypeHouse},
	{[]string{"shoplot", "shophouse", "shop"}, entity.PropertyTypeShopOffice},
	{[]string{"office", "offices"}, entity.PropertyTypeOffice},
	{[]string{"land"}, entity.PropertyTypeLand},
}

var rentKeywords = map[string]bool{
	"rent": true, "rents": true, "rental": true, "rented": true,
	"renting": true, "lease": true, "leasing": true,
}

var saleKeywords = map[string]bool{
	"sale": true, "sales": true, "sell": true, "buy": true,
	"buying": true, "purchase": true,
}

var transitTypeTokens = map[string]string{
	"mrt":      entity.TransitHeavyRail,
	"lrt":      entity.TransitLightRail,
	"ktm":      entity.TransitCommuterRail,
	"komuter":  entity.TransitCommuterRail,
	"commuter": entity.TransitCommuterRail,
	"monorail": entity.TransitMonorail,
	// generic transit words: any type
	"train":   "",
	"station": "",
	"transit": "",
}

// Parse converts a raw query string into a ParsedQuery. modeHint is the
// caller's search tab ("rent" | "sale" | ""); it wins when the text
// carries both rent and sale keywords.
func (p *Parser) Parse(text, modeHint string) ParsedQuery {
	parsed := ParsedQuery{RawText: text}

	raw := strings.Fields(text)
	norm := make([]string, len(raw))
	for i, tok := range raw {
		norm[i] = strings.Trim(strings.ToLower(tok), ",.?!;:()\"'")
	}
	consumed := make([]bool, len(raw))

	p.extractBedrooms(norm, consumed, &parsed)
	p.extractPrice(norm, consumed, &parsed)
	p.extractPropertyType(norm, consumed, &parsed)
	p.extractListingType(norm, consumed, modeHint, &parsed)
	p.extractProximity(raw, norm, consumed, &parsed)

	var leftover []string
	for i, tok := range raw {
		if !consumed[i] && norm[i] != "" {
			leftover = append(leftover, tok)
		}
	}
	parsed.FreeText = strings.Join(leftover, " ")

	return parsed
}

// extractBedrooms finds the first integer adjacent to a bedroom-synonym
// token, in either order, plus fused forms like "2br".
func (p *Parser) extractBedrooms(norm []string, consumed []bool, parsed *ParsedQuery) {
	for i, tok := range norm {
		if n, ok := parseInt(tok); ok {
			if i+1 < len(norm) && bedroomTokens[norm[i+1]] {
				parsed.Bedrooms = &n
				consumed[i], consumed[i+1] = true, true
				return
			}
			continue
		}
		if bedroomTokens[tok] && i+1 < len(norm) {
			if n, ok := parseInt(norm[i+1]); ok {
				parsed.Bedrooms = &n
				consumed[i], consumed[i+1] = true, true
				return
			}
		}
		// fused form: "2br", "3bed"
		for suffix := range bedroomTokens {
			if strings.HasSuffix(tok, suffix) {
				if n, ok := parseInt(strings.TrimSuffix(tok, suffix)); ok {
					parsed.Bedrooms = &n
					consumed[i] = true
					return
				}
			}
		}
	}
}

// extractPrice handles "under/below/less than X" (upper bound) and
// "above/over/more than X" (lower bound), with thousands suffixes.
func (p *Parser) extractPrice(norm []string, consumed []bool, parsed *ParsedQuery) {
	for i, tok := range norm {
		if consumed[i] {
			continue
		}

		upper := tok == "under" || tok == "below" ||
			(tok == "less" && i+1 < len(norm) && norm[i+1] == "than")
		lower := tok == "above" || tok == "over" ||
			(tok == "more" && i+1 < len(norm) && norm[i+1] == "than")
		if !upper && !lower {
			continue
		}

		j := i + 1
		if (tok == "less" || tok == "more") && j < len(norm) {
			consumed[j] = true // "than"
			j++
		}
		if j >= len(norm) || consumed[j] {
			continue
		}

		value, ok := parseAmount(norm[j])
		if !ok {
			continue
		}
		consumed[i], consumed[j] = true, true

		// standalone thousands suffix: "under 3 k"
		if j+1 < len(norm) && !consumed[j+1] && (norm[j+1] == "k" || norm[j+1] == "thousand") {
			value *= 1000
			consumed[j+1] = true
		}

		if upper && parsed.MaxPrice == nil {
			parsed.MaxPrice = &value
		} else if lower && parsed.MinPrice == nil {
			parsed.MinPrice = &value
		}
	}
}

func (p *Parser) extractPropertyType(norm []string, consumed []bool, parsed *ParsedQuery) {
	for i, tok := range norm {
		if consumed[i] {
			continue
		}
		for _, group := range propertyTypeVocab {
			for _, kw := range group.keywords {
				if tok == kw {
					parsed.PropertyType = group.value
					consumed[i] = true
					// "shop office" spans two tokens
					if group.value == entity.PropertyTypeShopOffice &&
						i+1 < len(norm) && norm[i+1] == "office" {
						consumed[i+1] = true
					}
					return
				}
			}
		}
	}
}

func (p *Parser) extractListingType(norm []string, consumed []bool, modeHint string, parsed *ParsedQuery) {
	rentSeen, saleSeen := false, false
	for i, tok := range norm {
		if consumed[i] {
			continue
		}
		if rentKeywords[tok] {
			rentSeen = true
			consumed[i] = true
		} else if saleKeywords[tok] {
			saleSeen = true
			consumed[i] = true
		}
	}

	switch {
	case rentSeen && saleSeen:
		// Both families present: the caller's search tab wins. Policy
		// choice, not an error.
		if modeHint == entity.ListingTypeRent || modeHint == entity.ListingTypeSale {
			parsed.ListingType = modeHint
		} else {
			parsed.ListingType = entity.ListingTypeRent
		}
	case rentSeen:
		parsed.ListingType = entity.ListingTypeRent
	case saleSeen:
		parsed.ListingType = entity.ListingTypeSale
	default:
		if modeHint == entity.ListingTypeRent || modeHint == entity.ListingTypeSale {
			parsed.ListingType = modeHint
		}
	}
}

// extractProximity recognizes "near X" / "close to X" / a bare transit
// token followed by an optional place-name span. An unresolvable named
// place degrades to the text fallback rather than failing the query.
func (p *Parser) extractProximity(raw, norm []string, consumed []bool, parsed *ParsedQuery) {
	trigger := -1
	spanStart := -1
	for i, tok := range norm {
		if consumed[i] {
			continue
		}
		if tok == "near" || tok == "nearby" || tok == "beside" {
			trigger = i
			spanStart = i + 1
			break
		}
		if (tok == "close" || tok == "next") && i+1 < len(norm) && norm[i+1] == "to" {
			trigger = i
			consumed[i+1] = true
			spanStart = i + 2
			break
		}
		if _, ok := transitTypeTokens[tok]; ok {
			// bare transit token acts as its own trigger
			trigger = i
			spanStart = i
			break
		}
	}
	if trigger < 0 {
		return
	}
	consumed[trigger] = true

	// Collect the contiguous unconsumed span after the trigger.
	var span []int
	for i := spanStart; i < len(norm); i++ {
		if i != trigger && consumed[i] {
			break
		}
		if norm[i] == "" {
			continue
		}
		span = append(span, i)
	}

	intent := &ProximityIntent{
		MaxWalkMinutes: transit.WalkingMinutes(transit.WalkingRadiusMeters),
	}

	// Pull transit-type tokens off the front of the span.
	typed := false
	for len(span) > 0 {
		t, ok := transitTypeTokens[norm[span[0]]]
		if !ok {
			break
		}
		if !typed || intent.TransitType == "" {
			intent.TransitType = t
		}
		typed = true
		consumed[span[0]] = true
		span = span[1:]
	}

	if len(span) == 0 {
		if !typed {
			// "near" with nothing after it: no scope, no intent
			return
		}
		intent.AnyTransit = true
		parsed.Proximity = intent
		return
	}

	// Remaining span is a place name.
	parts := make([]string, len(span))
	for i, idx := range span {
		parts[i] = raw[idx]
	}
	placeText := strings.Join(parts, " ")

	if place, ok := p.resolve(placeText); ok {
		intent.Place = place
		intent.PlaceText = placeText
		for _, idx := range span {
			consumed[idx] = true
		}
		parsed.Proximity = intent
		return
	}

	if typed {
		// Unresolvable place but an explicit transit scope: keep the
		// transit intent, leave the place words for the text search.
		intent.AnyTransit = true
		parsed.Proximity = intent
		return
	}
	// No scope at all resolves: degrade to text-only.
}

func (p *Parser) resolve(name string) (*entity.Station, bool) {
	if p.resolver == nil {
		return nil, false
	}
	return p.resolver.Resolve(name)
}

func parseInt(tok string) (int, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseAmount parses a price token: optional RM/MYR prefix, comma
// separators, optional trailing thousands suffix.
func parseAmount(tok string) (float64, bool) {
	tok = strings.TrimPrefix(tok, "rm")
	tok = strings.TrimPrefix(tok, "myr")
	tok = strings.ReplaceAll(tok, ",", "")
	if tok == "" {
		return 0, false
	}

	multiplier := 1.0
	if strings.HasSuffix(tok, "k") {
		multiplier = 1000
		tok = strings.TrimSuffix(tok, "k")
	}

	value, err := strconv.ParseFloat(tok, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value * multiplier, true
}
