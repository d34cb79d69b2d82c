package enrich

import (
	"fmt"
	"strings"
)

// PromptInput carries the product identity fields substituted into a prompt.
type PromptInput struct {
	MPN          string
	Manufacturer string
	CatSubcat    string
}

// promptVariant holds the category-specific fragments of the extraction
// prompt. All variants share one skeleton; only these fragments differ.
type promptVariant struct {
	subject       string // product noun in the opening line
	distributors  string // step 2 of the search strategy
	datasheets    string // step 3 of the search strategy
	forums        string // optional forum step; empty omits it
	focus         string // optional block between strategy and efficiency sections
	searchHint    string // suffix of the first suggested search string
	searchTerms   string // noun phrase for the industry-specific terms line
	materialCheck bool   // require definitive material identification
}

const electricalFocus = `MATERIAL IDENTIFICATION REQUIREMENTS:
1. CRITICAL: Determine definitive material composition (plastic, metal, copper, aluminum, etc.)
2. Find exact material specifications without using qualifiers like "likely" or "probably"
3. Look for specific material descriptions: "made of", "constructed from", "material:", "composition:"
4. Check material codes in specs: "AL" (aluminum), "Cu" (copper), "PVC", "ABS"
5. Examine product photos and technical diagrams for visual material identification
6. If material cannot be definitively determined, use empty string "" for Material field
`

const hvacFocus = `TECHNICAL SPECIFICATIONS FOCUS:
1. CRITICAL: Find exact capacity/BTU/tonnage ratings with proper units
2. Determine precise electrical requirements (voltage, phase, amperage)
3. Identify refrigerant type and compatibility (R-410A, R-32, etc.)
4. Find exact physical dimensions and installation requirements
5. Determine energy efficiency ratings (SEER, EER, HSPF) where applicable
`

const plumbingFocus = `MATERIAL AND COMPATIBILITY FOCUS:
1. CRITICAL: Determine exact material composition (brass, copper, PVC, PEX, etc.)
2. Find precise connection types and sizes (NPT, compression, sweat, etc.)
3. Identify pressure and temperature ratings with proper units
4. Determine compatibility with different plumbing systems
5. Find certification information (NSF, ANSI, UPC, etc.)
`

const refrigerationFocus = `TECHNICAL SPECIFICATIONS FOCUS:
1. CRITICAL: Find exact capacity ratings with proper units
2. Determine precise electrical requirements (voltage, phase, amperage)
3. Identify refrigerant type and compatibility (R-134a, R-404A, R-290, etc.)
4. Find exact physical dimensions and installation requirements
5. Determine temperature range and operating conditions
`

const responseContract = `RESPONSE FORMAT:
Return ONLY a single valid JSON object with these requirements:
1. Use double quotes for all keys and string values
2. No trailing commas
3. Ensure all special characters in strings are properly escaped
4. CRITICAL: For any unavailable information, use "" (empty string) without any explanatory text

CRITICAL REQUIREMENTS:
- Return ONLY the JSON object with no additional text before or after
- Never duplicate the JSON in the response
- NO NEWLINES at the beginning of your response
- For ANY attribute where information cannot be definitively determined, use "" (empty string)
- NEVER use phrases like "Information Not Available", "Unknown", or "Not Specified" - use "" instead
- Include complete specifications with proper units for available information
- If information conflicts between sources, use the most authoritative source
`

var genericVariant = promptVariant{
	subject:      "this product",
	distributors: "distributors and retailers for this product",
	datasheets:   "PDF technical datasheets and installation manuals for complete specifications",
	searchHint:   "specifications",
	searchTerms:  "this product category",
}

var promptVariants = map[string]promptVariant{
	"electrical": {
		subject:       "this electrical part",
		distributors:  "electrical distributors (Grainger, Home Depot, Lowe's, Eaton, Schneider Electric)",
		datasheets:    "PDF technical datasheets and installation manuals for complete specifications",
		forums:        "specialized electrical forums for professional insights",
		focus:         electricalFocus,
		searchHint:    "specifications material",
		searchTerms:   "electrical components",
		materialCheck: true,
	},
	"hvac": {
		subject:      "this HVAC component",
		distributors: "HVAC distributors (Grainger, Ferguson, Johnstone Supply, Carrier, Trane)",
		datasheets:   "PDF technical datasheets, installation manuals, and engineering specifications",
		forums:       "specialized HVAC forums and contractor resources",
		focus:        hvacFocus,
		searchHint:   "specifications technical data",
		searchTerms:  "HVAC components",
	},
	"plumbing": {
		subject:       "this plumbing component",
		distributors:  "plumbing distributors (Ferguson, Grainger, Home Depot, Lowe's, SupplyHouse)",
		datasheets:    "PDF technical datasheets, installation manuals, and specification sheets",
		forums:        "specialized plumbing forums and contractor resources",
		focus:         plumbingFocus,
		searchHint:    "specifications material",
		searchTerms:   "plumbing components",
		materialCheck: true,
	},
	"refrigeration": {
		subject:      "this refrigeration component",
		distributors: "refrigeration distributors (Grainger, Ferguson, Johnstone Supply, United Refrigeration)",
		datasheets:   "PDF technical datasheets, installation manuals, and engineering specifications",
		forums:       "specialized refrigeration forums and contractor resources",
		focus:        refrigerationFocus,
		searchHint:   "specifications technical data",
		searchTerms:  "refrigeration components",
	},
}

// categoryAliases maps the category spellings seen in source data to a
// prompt variant. "cooling" also describes refrigeration gear; it resolves
// to HVAC.
var categoryAliases = map[string]string{
	"electrical":       "electrical",
	"electric":         "electrical",
	"electronics":      "electrical",
	"hvac":             "hvac",
	"heating":          "hvac",
	"cooling":          "hvac",
	"air conditioning": "hvac",
	"plumbing":         "plumbing",
	"pipe":             "plumbing",
	"water":            "plumbing",
	"refrigeration":    "refrigeration",
	"refrigerant":      "refrigeration",
}

// CanonicalCategory maps a free-form category name to one of the known
// trade families: electrical, hvac, plumbing or refrigeration. Unknown
// names map to "".
func CanonicalCategory(category string) string {
	return categoryAliases[strings.ToLower(strings.TrimSpace(category))]
}

// variantFor resolves a free-form category name to its prompt variant.
// Unrecognized categories get the generic variant.
func variantFor(category string) promptVariant {
	if canonical := CanonicalCategory(category); canonical != "" {
		return promptVariants[canonical]
	}
	return genericVariant
}

// BuildPrompt renders the extraction prompt for one product. The category
// picks a variant tuned to that trade's distributors and spec sheets.
func BuildPrompt(category string, in PromptInput, attributes []string) string {
	v := variantFor(category)

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "Extract comprehensive information about %s by searching MULTIPLE SOURCES and websites:\n\n", v.subject)

	fmt.Fprintf(&b, "PRODUCT MPN: %s\n", in.MPN)
	fmt.Fprintf(&b, "MANUFACTURER: %s\n", in.Manufacturer)
	fmt.Fprintf(&b, "CATEGORY & SUBCATEGORY: %s\n", in.CatSubcat)
	fmt.Fprintf(&b, "ATTRIBUTES TO EXTRACT: %s\n\n", strings.Join(attributes, ", "))

	b.WriteString("MULTI-SOURCE SEARCH STRATEGY:\n")
	fmt.Fprintf(&b, "1. Search manufacturer's official website first (%s.com) for authoritative specifications\n", in.Manufacturer)
	fmt.Fprintf(&b, "2. Search at least 5 major %s\n", v.distributors)
	fmt.Fprintf(&b, "3. Locate %s\n", v.datasheets)
	step := 4
	if v.forums != "" {
		fmt.Fprintf(&b, "%d. Check %s\n", step, v.forums)
		step++
	}
	fmt.Fprintf(&b, "%d. Cross-reference information across all sources for accuracy\n\n", step)

	if v.focus != "" {
		b.WriteString(v.focus)
		b.WriteString("\n")
	}

	b.WriteString("SEARCH EFFICIENCY GUIDELINES:\n")
	fmt.Fprintf(&b, "1. Use specific search strings: \"[MPN] [manufacturer] %s\"\n", v.searchHint)
	b.WriteString("2. Search for datasheets using \"[MPN] datasheet pdf technical specifications\" \n")
	fmt.Fprintf(&b, "3. Use industry-specific search terms for %s\n\n", v.searchTerms)

	b.WriteString("VERIFICATION REQUIREMENTS:\n")
	b.WriteString("✓ Information comes from multiple independent sources\n")
	fmt.Fprintf(&b, "✓ Data specifically references the exact MPN %s\n", in.MPN)
	if v.materialCheck {
		b.WriteString("✓ Material type is definitively identified\n")
	}
	b.WriteString("✓ All technical specifications include proper units of measurement\n")
	b.WriteString("✓ No speculative information is included\n\n")

	b.WriteString(responseContract)
	return b.String()
}
