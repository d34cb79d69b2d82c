package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCategory(t *testing.T) {
	assert.Equal(t, "electrical", CanonicalCategory("Electrical"))
	assert.Equal(t, "electrical", CanonicalCategory("  electronics "))
	assert.Equal(t, "hvac", CanonicalCategory("HVAC"))
	assert.Equal(t, "hvac", CanonicalCategory("Heating"))
	assert.Equal(t, "hvac", CanonicalCategory("Cooling"))
	assert.Equal(t, "plumbing", CanonicalCategory("Pipe"))
	assert.Equal(t, "refrigeration", CanonicalCategory("Refrigerant"))
	assert.Equal(t, "", CanonicalCategory("Office Furniture"))
	assert.Equal(t, "", CanonicalCategory(""))
}

func TestBuildPrompt_ElectricalVariant(t *testing.T) {
	in := PromptInput{MPN: "QO120", Manufacturer: "Square D", CatSubcat: "Electrical,Circuit Breakers"}
	prompt := BuildPrompt("Electrical", in, []string{"Material", "Voltage Rating"})

	assert.True(t, strings.HasPrefix(prompt, "\n"))
	assert.Contains(t, prompt, "Extract comprehensive information about this electrical part")
	assert.Contains(t, prompt, "PRODUCT MPN: QO120")
	assert.Contains(t, prompt, "MANUFACTURER: Square D")
	assert.Contains(t, prompt, "CATEGORY & SUBCATEGORY: Electrical,Circuit Breakers")
	assert.Contains(t, prompt, "ATTRIBUTES TO EXTRACT: Material, Voltage Rating")
	assert.Contains(t, prompt, "(Grainger, Home Depot, Lowe's, Eaton, Schneider Electric)")
	assert.Contains(t, prompt, "MATERIAL IDENTIFICATION REQUIREMENTS:")
	assert.Contains(t, prompt, "4. Check specialized electrical forums for professional insights")
	assert.Contains(t, prompt, "5. Cross-reference information across all sources")
	assert.Contains(t, prompt, "✓ Material type is definitively identified")
	assert.Contains(t, prompt, "RESPONSE FORMAT:")
}

func TestBuildPrompt_HVACVariantHasNoMaterialCheck(t *testing.T) {
	in := PromptInput{MPN: "TX5N4", Manufacturer: "Carrier"}
	prompt := BuildPrompt("hvac", in, []string{"BTU Rating"})

	assert.Contains(t, prompt, "this HVAC component")
	assert.Contains(t, prompt, "TECHNICAL SPECIFICATIONS FOCUS:")
	assert.Contains(t, prompt, "(Grainger, Ferguson, Johnstone Supply, Carrier, Trane)")
	assert.NotContains(t, prompt, "✓ Material type is definitively identified")
}

func TestBuildPrompt_CoolingResolvesToHVAC(t *testing.T) {
	in := PromptInput{MPN: "X1", Manufacturer: "Acme"}
	prompt := BuildPrompt("Cooling", in, nil)

	assert.Contains(t, prompt, "this HVAC component")
	assert.NotContains(t, prompt, "refrigeration distributors")
}

func TestBuildPrompt_UnknownCategoryUsesGenericVariant(t *testing.T) {
	in := PromptInput{MPN: "X1", Manufacturer: "Acme"}
	prompt := BuildPrompt("Office Furniture", in, nil)

	assert.Contains(t, prompt, "Extract comprehensive information about this product")
	assert.Contains(t, prompt, "distributors and retailers for this product")
	// The generic variant has no forum step, so cross-referencing is step 4.
	assert.Contains(t, prompt, "4. Cross-reference information across all sources")
	assert.NotContains(t, prompt, "MATERIAL IDENTIFICATION REQUIREMENTS:")
}

func TestBuildPrompt_PlumbingAndRefrigerationVariants(t *testing.T) {
	in := PromptInput{MPN: "P-100", Manufacturer: "Acme"}

	plumbing := BuildPrompt("Plumbing", in, nil)
	assert.Contains(t, plumbing, "this plumbing component")
	assert.Contains(t, plumbing, "MATERIAL AND COMPATIBILITY FOCUS:")
	assert.Contains(t, plumbing, "✓ Material type is definitively identified")

	refrigeration := BuildPrompt("Refrigeration", in, nil)
	assert.Contains(t, refrigeration, "this refrigeration component")
	assert.Contains(t, refrigeration, "(Grainger, Ferguson, Johnstone Supply, United Refrigeration)")
	assert.Contains(t, refrigeration, "R-134a, R-404A, R-290")
}

func TestBuildPrompt_SharedSkeleton(t *testing.T) {
	in := PromptInput{MPN: "X1", Manufacturer: "Acme", CatSubcat: ""}
	prompt := BuildPrompt("", in, nil)

	assert.Contains(t, prompt, "MULTI-SOURCE SEARCH STRATEGY:")
	assert.Contains(t, prompt, "1. Search manufacturer's official website first (Acme.com)")
	assert.Contains(t, prompt, "SEARCH EFFICIENCY GUIDELINES:")
	assert.Contains(t, prompt, "VERIFICATION REQUIREMENTS:")
	assert.Contains(t, prompt, "✓ Data specifically references the exact MPN X1")
	assert.Contains(t, prompt, `NEVER use phrases like "Information Not Available"`)
}
